package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"reclip-backend/internal/storage"
)

// ReferenceDocument is a user-supplied brand/style document saved locally and
// destined for upload alongside the media.
type ReferenceDocument struct {
	Path     string
	MimeType string
	Name     string
}

// DocumentService saves uploaded reference documents into the request
// directory and rejects files that would waste an upload.
type DocumentService struct{}

func NewDocumentService() *DocumentService {
	return &DocumentService{}
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SaveAll writes multipart files into the request directory with sanitized,
// collision-free names and resolves each MIME type. Browsers sometimes omit
// the content type, so the extension lookup is the fallback.
func (s *DocumentService) SaveAll(dir *storage.RequestDir, files []*multipart.FileHeader) ([]ReferenceDocument, error) {
	var docs []ReferenceDocument

	for _, fh := range files {
		safeName := unsafeNameChars.ReplaceAllString(fh.Filename, "_")
		path := filepath.Join(dir.Path, fmt.Sprintf("doc_%d_%s", time.Now().UnixMilli(), safeName))

		if err := saveMultipartFile(fh, path); err != nil {
			return nil, &ValidationError{Fields: map[string]string{"files": fmt.Sprintf("failed to save %s: %v", fh.Filename, err)}}
		}

		mimeType := fh.Header.Get("Content-Type")
		if mimeType == "" || mimeType == "application/octet-stream" {
			mimeType = DocumentMimeType(path)
		}

		if err := s.validate(path, mimeType); err != nil {
			return nil, &ValidationError{Fields: map[string]string{"files": fmt.Sprintf("%s: %v", fh.Filename, err)}}
		}

		log.Printf("Saved uploaded doc: %s (%s)", path, mimeType)
		docs = append(docs, ReferenceDocument{Path: path, MimeType: mimeType, Name: fh.Filename})
	}

	return docs, nil
}

// validate rejects obviously broken documents before they cost an upload and
// an activation poll. Only PDFs can be checked cheaply; other types pass.
func (s *DocumentService) validate(path, mimeType string) error {
	if mimeType != "application/pdf" && !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("not a readable PDF: %w", err)
	}
	defer f.Close()

	if reader.NumPage() == 0 {
		return fmt.Errorf("PDF has no pages")
	}
	return nil
}

func saveMultipartFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

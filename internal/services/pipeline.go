package services

import (
	"context"
	"encoding/json"
	"log"
	"mime/multipart"

	"github.com/google/generative-ai-go/genai"

	"reclip-backend/internal/models"
	"reclip-backend/internal/repository"
	"reclip-backend/internal/storage"
)

// PipelineService runs one full repurposing request: resolve → extract →
// normalize → upload → generate → decode. One sequential pipeline per
// submission; the only cross-request state is the storage arena, which is
// already keyed per request.
type PipelineService struct {
	extractor *ExtractorService
	documents *DocumentService
	gemini    *GeminiService
	arena     *storage.Arena
	progress  *ProgressPublisher
	repo      *repository.GenerationRepo
}

func NewPipelineService(
	extractor *ExtractorService,
	documents *DocumentService,
	gemini *GeminiService,
	arena *storage.Arena,
	progress *ProgressPublisher,
	repo *repository.GenerationRepo,
) *PipelineService {
	return &PipelineService{
		extractor: extractor,
		documents: documents,
		gemini:    gemini,
		arena:     arena,
		progress:  progress,
		repo:      repo,
	}
}

func (s *PipelineService) Process(ctx context.Context, url string, opts models.GenerationOptions, files []*multipart.FileHeader) (*models.RepurposeResponse, error) {
	dir, err := s.arena.Acquire()
	if err != nil {
		return nil, err
	}

	gen := &models.Generation{ID: dir.ID, SourceURL: url, Status: "processing"}
	if err := s.repo.Create(ctx, gen); err != nil {
		s.arena.Release(dir)
		return nil, err
	}

	// 1. Extract metadata + media
	s.progress.Stage(ctx, dir.ID, "extracting", 1, "Fetching source content")
	meta, err := s.extractor.Extract(ctx, url, dir)
	if err != nil {
		return nil, s.fail(ctx, dir, err)
	}
	log.Printf("Extracted %s content: %s", meta.Platform, meta.ID)

	// 2. Save reference documents into the request dir
	docs, err := s.documents.SaveAll(dir, files)
	if err != nil {
		return nil, s.fail(ctx, dir, err)
	}
	opts.HasDocuments = len(docs) > 0

	// 3. Upload media and wait until usable, before any documents
	var mediaAsset *models.UploadedAsset
	if meta.HasMedia() {
		s.progress.Stage(ctx, dir.ID, "uploading", 2, "Uploading media to AI backend")
		mediaAsset, err = s.uploadAndAwait(ctx, meta.LocalMediaPath, MediaMimeType(meta.LocalMediaPath))
		if err != nil {
			return nil, s.fail(ctx, dir, err)
		}
	}

	// 4. Upload documents sequentially, each fully active before the next
	var docAssets []*models.UploadedAsset
	for _, doc := range docs {
		s.progress.Stage(ctx, dir.ID, "uploading", 2, "Uploading document "+doc.Name)
		asset, err := s.uploadAndAwait(ctx, doc.Path, doc.MimeType)
		if err != nil {
			return nil, s.fail(ctx, dir, err)
		}
		docAssets = append(docAssets, asset)
	}

	// 5. Build prompt and generate
	s.progress.Stage(ctx, dir.ID, "generating", 3, "Generating repurposed script")
	prompt := BuildRepurposePrompt(meta, opts)

	parts := make([]genai.Part, 0, len(docAssets)+2)
	if mediaAsset != nil {
		parts = append(parts, FilePart(mediaAsset))
	}
	parts = append(parts, genai.Text(prompt))
	for _, asset := range docAssets {
		parts = append(parts, FilePart(asset))
	}

	rawText, err := s.gemini.Generate(ctx, parts)
	if err != nil {
		return nil, s.fail(ctx, dir, err)
	}

	// 6. Decode (soft: raw text fallback, never an error)
	s.progress.Stage(ctx, dir.ID, "decoding", 4, "Parsing model response")
	content := DecodeGenerated(rawText)

	metaJSON, _ := json.Marshal(meta)
	resultJSON, _ := json.Marshal(content)
	if err := s.repo.MarkCompleted(ctx, dir.ID, meta.Platform, metaJSON, resultJSON); err != nil {
		log.Printf("Failed to persist generation %s: %v", dir.ID, err)
	}
	s.progress.Completed(ctx, dir.ID)

	// Media stays on disk for playback; the arena sweeper reclaims it later.
	return &models.RepurposeResponse{
		RequestID: dir.ID,
		Metadata:  meta,
		MediaPath: storage.MediaURLPath(dir, meta.LocalMediaPath),
		Content:   content,
	}, nil
}

func (s *PipelineService) uploadAndAwait(ctx context.Context, path, mimeType string) (*models.UploadedAsset, error) {
	asset, err := s.gemini.UploadAsset(ctx, path, mimeType)
	if err != nil {
		return nil, err
	}
	return s.gemini.AwaitActive(ctx, asset)
}

func (s *PipelineService) fail(ctx context.Context, dir *storage.RequestDir, err error) error {
	code := ErrorCode(err)
	if markErr := s.repo.MarkFailed(ctx, dir.ID, err.Error()); markErr != nil {
		log.Printf("Failed to mark generation %s failed: %v", dir.ID, markErr)
	}
	s.progress.Failed(ctx, dir.ID, code, err.Error())
	s.arena.Release(dir)
	return err
}

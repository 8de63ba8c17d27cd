package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"reclip-backend/internal/models"
)

const pollInterval = 2 * time.Second

// GeminiService wraps the AI backend: file upload, activation polling, and
// the generation call.
type GeminiService struct {
	client       *genai.Client
	model        *genai.GenerativeModel
	pollMaxTries int
	rateChan     chan struct{} // Token bucket
}

func NewGeminiService(apiKey, modelName string, concurrentReqs, pollMaxTries int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)

	// Token bucket capping in-flight generation calls
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:       client,
		model:        model,
		pollMaxTries: pollMaxTries,
		rateChan:     rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// UploadAsset submits a local file to the backend's file store. The returned
// asset starts PROCESSING and must be awaited before use.
func (s *GeminiService) UploadAsset(ctx context.Context, path, mimeType string) (*models.UploadedAsset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("failed to open %s: %v", path, err)}
	}
	defer f.Close()

	displayName := filepath.Base(path)
	file, err := s.client.UploadFile(ctx, "", f, &genai.UploadFileOptions{
		DisplayName: displayName,
		MIMEType:    mimeType,
	})
	if err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("failed to upload %s: %v", displayName, err)}
	}

	log.Printf("Uploaded file %s as: %s", displayName, file.Name)

	return &models.UploadedAsset{
		LocalPath:   path,
		MimeType:    mimeType,
		RemoteName:  file.Name,
		RemoteURI:   file.URI,
		DisplayName: displayName,
		State:       assetState(file.State),
	}, nil
}

// AwaitActive polls the remote file state until it becomes ACTIVE. A terminal
// non-active state is a *ProcessingError; exhausting the poll bound is a
// *TimeoutError.
func (s *GeminiService) AwaitActive(ctx context.Context, asset *models.UploadedAsset) (*models.UploadedAsset, error) {
	for i := 0; i < s.pollMaxTries; i++ {
		file, err := s.client.GetFile(ctx, asset.RemoteName)
		if err != nil {
			return nil, &UploadError{Message: fmt.Sprintf("failed to query file status: %v", err)}
		}

		switch file.State {
		case genai.FileStateActive:
			asset.State = models.AssetActive
			asset.RemoteURI = file.URI
			return asset, nil
		case genai.FileStateProcessing:
			// keep polling
		default:
			asset.State = models.AssetFailed
			return nil, &ProcessingError{Message: fmt.Sprintf("file processing failed: %s", assetState(file.State))}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}

	return nil, &TimeoutError{Message: fmt.Sprintf("file %s did not become active within %d attempts", asset.DisplayName, s.pollMaxTries)}
}

// Generate runs the model over an ordered part sequence (primary media first,
// then the prompt, then reference documents) and returns the raw text reply.
func (s *GeminiService) Generate(ctx context.Context, parts []genai.Part) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", &UpstreamError{Message: err.Error()}
	}
	defer s.releaseRate()

	resp, err := s.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", &UpstreamError{Message: fmt.Sprintf("Gemini API error: %v", err)}
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			log.Printf("Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	text := extractText(resp)
	if text == "" {
		return "", &UpstreamError{Message: "Gemini returned empty response"}
	}
	return text, nil
}

// FilePart builds the generation-request reference for an activated asset.
func FilePart(asset *models.UploadedAsset) genai.Part {
	return genai.FileData{MIMEType: asset.MimeType, URI: asset.RemoteURI}
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func assetState(state genai.FileState) string {
	switch state {
	case genai.FileStateActive:
		return models.AssetActive
	case genai.FileStateProcessing:
		return models.AssetProcessing
	default:
		return models.AssetFailed
	}
}

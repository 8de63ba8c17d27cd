package models

import "github.com/google/uuid"

// RepurposeResponse is returned by POST /api/v1/repurpose on success.
// MediaPath points at the locally retained file for playback and is empty
// for text-only posts.
type RepurposeResponse struct {
	RequestID uuid.UUID          `json:"request_id"`
	Metadata  *CanonicalMetadata `json:"metadata"`
	MediaPath string             `json:"media_path,omitempty"`
	Content   *GeneratedContent  `json:"content"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

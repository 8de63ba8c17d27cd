package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GenerationOptions is the user-chosen repurposing strategy. Immutable once
// built; zero values fall back to defaults inside the prompt builder.
type GenerationOptions struct {
	TargetAudience  string `json:"target_audience"`
	Tone            string `json:"tone"`
	Goal            string `json:"goal"`
	OutputLanguage  string `json:"output_language"`
	ScriptStructure string `json:"script_structure,omitempty"`
	HasDocuments    bool   `json:"has_documents"`
}

// GeneratedContent is the decoded model answer. When the model response could
// not be parsed as JSON, RawOutput carries the full reply and every other
// field is empty.
type GeneratedContent struct {
	DetectedLanguage string      `json:"detectedLanguage,omitempty"`
	Transcription    string      `json:"transcription,omitempty"`
	Analysis         string      `json:"analysis,omitempty"`
	NewContent       *NewContent `json:"newContent,omitempty"`
	RawOutput        string      `json:"rawOutput,omitempty"`
}

type NewContent struct {
	Concept          string           `json:"concept"`
	Hook             Hook             `json:"hook"`
	VisualStoryboard []StoryboardItem `json:"visualStoryboard"`
	Script           []ScriptLine     `json:"script"`
	CTA              string           `json:"cta"`
}

type Hook struct {
	Visual string `json:"visual"`
	Audio  string `json:"audio"`
}

type StoryboardItem struct {
	Scene       int    `json:"scene"`
	Section     string `json:"section,omitempty"`
	Description string `json:"description"`
}

type ScriptLine struct {
	Line    int    `json:"line"`
	Section string `json:"section,omitempty"`
	Text    string `json:"text"`
}

// Generation is a persisted record of one pipeline run.
type Generation struct {
	ID           uuid.UUID       `json:"id"`
	SourceURL    string          `json:"source_url"`
	Platform     string          `json:"platform"`
	Status       string          `json:"status"` // "processing" | "completed" | "failed"
	MetadataJSON json.RawMessage `json:"metadata,omitempty"`
	ResultJSON   json.RawMessage `json:"result,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at"`
}

// WebSocket progress events published per request.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type StageUpdate struct {
	RequestID uuid.UUID `json:"request_id"`
	Stage     string    `json:"stage"` // "resolving" | "extracting" | "uploading" | "generating" | "decoding"
	Step      int       `json:"step"`
	Detail    string    `json:"detail,omitempty"`
}

type CompletedEvent struct {
	RequestID uuid.UUID `json:"request_id"`
}

type ErrorEvent struct {
	RequestID    uuid.UUID `json:"request_id"`
	ErrorCode    string    `json:"error_code"`
	ErrorMessage string    `json:"error_message"`
}

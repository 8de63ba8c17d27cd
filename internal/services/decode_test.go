package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"reclip-backend/internal/models"
)

func sampleContent() *models.GeneratedContent {
	return &models.GeneratedContent{
		DetectedLanguage: "English",
		Transcription:    "original words",
		Analysis:         "it works because it is short",
		NewContent: &models.NewContent{
			Concept: "a fast-paced reaction",
			Hook:    models.Hook{Visual: "close-up", Audio: "you won't believe this"},
			VisualStoryboard: []models.StoryboardItem{
				{Scene: 1, Description: "opening shot"},
			},
			Script: []models.ScriptLine{
				{Line: 1, Text: "Hola 👋"},
			},
			CTA: "follow for more",
		},
	}
}

func TestDecodeGenerated_JSONFenceRoundTrip(t *testing.T) {
	want := sampleContent()
	payload, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	raw := "Here is your script:\n```json\n" + string(payload) + "\n```\nEnjoy!"
	got := DecodeGenerated(raw)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
	if got.RawOutput != "" {
		t.Errorf("expected no raw fallback on successful decode, got %q", got.RawOutput)
	}
}

func TestDecodeGenerated_UnlabeledFence(t *testing.T) {
	raw := "```\n{\"detectedLanguage\": \"Spanish\"}\n```"
	got := DecodeGenerated(raw)

	if got.DetectedLanguage != "Spanish" {
		t.Errorf("Expected Spanish, got %q", got.DetectedLanguage)
	}
}

func TestDecodeGenerated_BareJSON(t *testing.T) {
	raw := `{"transcription": "plain payload"}`
	got := DecodeGenerated(raw)

	if got.Transcription != "plain payload" {
		t.Errorf("Expected bare JSON to parse, got %+v", got)
	}
}

func TestDecodeGenerated_FreeTextFallsBackToRaw(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "I'm sorry, I cannot produce JSON today."},
		{"broken fence", "```json\n{\"analysis\": \n```"},
		{"empty input", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeGenerated(tc.raw)

			if got.RawOutput != tc.raw {
				t.Errorf("Expected raw output %q, got %q", tc.raw, got.RawOutput)
			}
			if got.DetectedLanguage != "" || got.Transcription != "" || got.Analysis != "" || got.NewContent != nil {
				t.Errorf("expected only the fallback field populated, got %+v", got)
			}
		})
	}
}

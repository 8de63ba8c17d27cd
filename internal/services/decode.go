package services

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"reclip-backend/internal/models"
)

var (
	jsonFencePattern = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n```")
	bareFencePattern = regexp.MustCompile("(?s)```\\s*\\n(.*?)\\n```")
)

// DecodeGenerated extracts the structured answer from a free-form model
// reply. Tries a ```json fenced block, then an unlabeled fence, then the
// whole text. Never fails: an unparseable reply comes back with only
// RawOutput set so the caller can still show something.
func DecodeGenerated(rawText string) *models.GeneratedContent {
	payload := rawText
	if m := jsonFencePattern.FindStringSubmatch(rawText); m != nil {
		payload = m[1]
	} else if m := bareFencePattern.FindStringSubmatch(rawText); m != nil {
		payload = m[1]
	}

	var content models.GeneratedContent
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &content); err != nil {
		log.Printf("Failed to parse generated content as JSON, returning raw text: %v", err)
		return &models.GeneratedContent{RawOutput: rawText}
	}
	return &content
}

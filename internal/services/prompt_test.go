package services

import (
	"strings"
	"testing"

	"reclip-backend/internal/models"
)

func videoMeta() *models.CanonicalMetadata {
	return &models.CanonicalMetadata{
		ID:             "abc",
		Title:          "How to cook rice",
		Description:    "quick tutorial",
		Uploader:       "chef",
		ViewCount:      models.Int64Ptr(1000),
		Platform:       models.PlatformTikTok,
		OriginalURL:    "https://www.tiktok.com/@chef/video/1",
		LocalMediaPath: "/tmp/video_1.mp4",
	}
}

func textMeta() *models.CanonicalMetadata {
	return &models.CanonicalMetadata{
		ID:          "123",
		Title:       "Chef (@chef)",
		Uploader:    "Chef",
		Platform:    models.PlatformTwitter,
		OriginalURL: "https://x.com/chef/status/123",
		TextContent: "rice is underrated",
		ImageURL:    "https://cdn.example.com/rice.jpg",
	}
}

func TestBuildRepurposePrompt_Deterministic(t *testing.T) {
	opts := models.GenerationOptions{TargetAudience: "foodies", Tone: "playful"}

	a := BuildRepurposePrompt(videoMeta(), opts)
	b := BuildRepurposePrompt(videoMeta(), opts)

	if a != b {
		t.Error("expected byte-identical output for identical inputs")
	}
}

func TestBuildRepurposePrompt_BranchesOnContentType(t *testing.T) {
	video := BuildRepurposePrompt(videoMeta(), models.GenerationOptions{})
	if !strings.Contains(video, "- Type: Video") {
		t.Error("expected video framing")
	}
	if !strings.Contains(video, "**Transcribe**") {
		t.Error("video task must request a verbatim transcription")
	}
	if !strings.Contains(video, "Do NOT merely describe the original video") {
		t.Error("video task must forbid describing the source")
	}

	text := BuildRepurposePrompt(textMeta(), models.GenerationOptions{})
	if !strings.Contains(text, "- Type: Text Post") {
		t.Error("expected text-post framing")
	}
	if !strings.Contains(text, `"rice is underrated"`) {
		t.Error("text post body must be embedded")
	}
	if strings.Contains(text, "**Transcribe**") {
		t.Error("text-post task must not request a transcription step")
	}
	if !strings.Contains(text, "- Image: Attached") {
		t.Error("attached image must be flagged")
	}
}

func TestBuildRepurposePrompt_ScriptStructureToggle(t *testing.T) {
	structure := "1. Hook\n2. Problem\n3. Solution\n4. CTA"

	with := BuildRepurposePrompt(videoMeta(), models.GenerationOptions{ScriptStructure: structure})
	if !strings.Contains(with, structure) {
		t.Error("script structure must be embedded verbatim")
	}
	if !strings.Contains(with, `"section"`) {
		t.Error("schema must request per-line section labels when a structure is given")
	}

	without := BuildRepurposePrompt(videoMeta(), models.GenerationOptions{})
	if strings.Contains(without, `"section"`) {
		t.Error("schema must omit section labels when no structure is given")
	}
}

func TestBuildRepurposePrompt_LanguageSubstitution(t *testing.T) {
	prompt := BuildRepurposePrompt(videoMeta(), models.GenerationOptions{OutputLanguage: "Portuguese"})

	if !strings.Contains(prompt, "- Output Language: Portuguese") {
		t.Error("strategy block must carry the chosen language")
	}
	if n := strings.Count(prompt, "(in Portuguese)"); n < 6 {
		t.Errorf("every natural-language schema field must steer the language, found %d markers", n)
	}

	defaulted := BuildRepurposePrompt(videoMeta(), models.GenerationOptions{})
	if !strings.Contains(defaulted, "- Output Language: Spanish") {
		t.Error("expected Spanish default when no language chosen")
	}
}

func TestBuildRepurposePrompt_UnknownMetrics(t *testing.T) {
	meta := videoMeta()
	meta.LikeCount = nil

	prompt := BuildRepurposePrompt(meta, models.GenerationOptions{})

	if !strings.Contains(prompt, "- Views: 1000") {
		t.Error("known metric must render its value")
	}
	if !strings.Contains(prompt, "- Likes: unknown") {
		t.Error("absent metric must render as unknown, not zero")
	}
}

func TestBuildRepurposePrompt_DocumentsBlock(t *testing.T) {
	with := BuildRepurposePrompt(videoMeta(), models.GenerationOptions{HasDocuments: true})
	if !strings.Contains(with, "**Reference Documents:**") {
		t.Error("expected reference-documents block")
	}

	without := BuildRepurposePrompt(videoMeta(), models.GenerationOptions{})
	if strings.Contains(without, "**Reference Documents:**") {
		t.Error("expected no reference-documents block")
	}
}

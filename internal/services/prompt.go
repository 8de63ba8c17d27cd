package services

import (
	"fmt"
	"strings"

	"reclip-backend/internal/models"
)

const DefaultOutputLanguage = "Spanish"

// BuildRepurposePrompt composes the generation request from normalized
// metadata and the user's strategy. Pure string composition: identical inputs
// produce byte-identical output.
func BuildRepurposePrompt(meta *models.CanonicalMetadata, opts models.GenerationOptions) string {
	lang := opts.OutputLanguage
	if lang == "" {
		lang = DefaultOutputLanguage
	}

	var b strings.Builder

	// Layer 1 — Role
	b.WriteString("You are an expert social media content strategist and scriptwriter.\n")
	b.WriteString("Your goal is to repurpose existing content into high-performing short-form video scripts (TikTok, Instagram Reels, YouTube Shorts).\n\n")

	// Layer 2 — Input content
	b.WriteString("**Input Content:**\n")
	if meta.IsTextPost() {
		b.WriteString("- Type: Text Post (Twitter/LinkedIn)\n")
		b.WriteString(fmt.Sprintf("- Text: %q\n", meta.TextContent))
		b.WriteString(fmt.Sprintf("- Author: %s\n", meta.Uploader))
		if meta.ImageURL != "" {
			b.WriteString("- Image: Attached\n")
		} else {
			b.WriteString("- Image: None\n")
		}
	} else {
		b.WriteString("- Type: Video\n")
		b.WriteString(fmt.Sprintf("- Title: %s\n", meta.Title))
		b.WriteString(fmt.Sprintf("- Description: %s\n", meta.Description))
		b.WriteString(fmt.Sprintf("- Views: %s\n", metricLabel(meta.ViewCount)))
		b.WriteString(fmt.Sprintf("- Likes: %s\n", metricLabel(meta.LikeCount)))
	}
	b.WriteString("\n")

	// Layer 3 — Reference documents
	if opts.HasDocuments {
		b.WriteString("**Reference Documents:**\n")
		b.WriteString("I have attached reference documents. Use them to strictly follow the brand voice, style guidelines, or specific instructions provided in them.\n\n")
	}

	// Layer 4 — Strategy
	b.WriteString("**Strategy:**\n")
	b.WriteString(fmt.Sprintf("- Target Audience: %s\n", orDefault(opts.TargetAudience, "General Audience")))
	b.WriteString(fmt.Sprintf("- Tone: %s\n", orDefault(opts.Tone, "Engaging and Viral")))
	b.WriteString(fmt.Sprintf("- Goal: %s\n", orDefault(opts.Goal, "Maximize Engagement and Reach")))
	b.WriteString(fmt.Sprintf("- Output Language: %s\n\n", lang))

	// Layer 5 — Task
	b.WriteString("**Task:**\n")
	if meta.IsTextPost() {
		b.WriteString("1. **Analyze**: Understand the core message and sentiment of the post.\n")
		b.WriteString("2. **Repurpose**: Create a dynamic short-form video script that visualizes this text.\n")
		b.WriteString("   - *Idea*: How can this text be turned into a skit, a visual story, or a direct-to-camera explanation?\n")
		b.WriteString("   - *Hook*: Create a visual or audio hook that stops the scroll immediately.\n")
	} else {
		b.WriteString("1. **Analyze**: Detect the spoken language and understand the video's success factors.\n")
		b.WriteString("2. **Transcribe**: Provide a verbatim transcription of the original audio (in its original language).\n")
		b.WriteString("3. **Repurpose**: Create a NEW, optimized script on a similar topic tailored for the new goal/audience. Do NOT merely describe the original video.\n")
	}
	b.WriteString("\n")

	// Layer 6 — Script structure
	if opts.ScriptStructure != "" {
		b.WriteString("**Required Script Structure:**\n")
		b.WriteString("The script MUST strictly follow this structure, section by section, in order:\n")
		b.WriteString(opts.ScriptStructure)
		b.WriteString("\n\nLabel every storyboard scene and script line with the section it belongs to.\n\n")
	}

	// Layer 7 — Output format
	b.WriteString(outputFormat(lang, opts.ScriptStructure != ""))

	return b.String()
}

func outputFormat(lang string, withSections bool) string {
	section := ""
	if withSections {
		section = ` "section": "Section name from the required structure",`
	}

	var b strings.Builder
	b.WriteString("**Output Format (Strict JSON):**\n")
	b.WriteString("```json\n{\n")
	b.WriteString("  \"detectedLanguage\": \"Language of the input content\",\n")
	b.WriteString("  \"transcription\": \"Verbatim transcription (if video) or the original text (if post)\",\n")
	b.WriteString(fmt.Sprintf("  \"analysis\": \"Brief strategic analysis of why this content is valuable (in %s)\",\n", lang))
	b.WriteString("  \"newContent\": {\n")
	b.WriteString(fmt.Sprintf("    \"concept\": \"One-line creative concept for the new video (in %s)\",\n", lang))
	b.WriteString("    \"hook\": {\n")
	b.WriteString(fmt.Sprintf("      \"visual\": \"What is on screen in the first 3 seconds (in %s)\",\n", lang))
	b.WriteString(fmt.Sprintf("      \"audio\": \"The first spoken line - make it punchy! (in %s)\"\n", lang))
	b.WriteString("    },\n")
	b.WriteString(fmt.Sprintf("    \"visualStoryboard\": [{ \"scene\": 1,%s \"description\": \"Shot description (in %s)\" }],\n", section, lang))
	b.WriteString(fmt.Sprintf("    \"script\": [{ \"line\": 1,%s \"text\": \"Spoken line with [Visual Cue] markers. Use emojis. (in %s)\" }],\n", section, lang))
	b.WriteString(fmt.Sprintf("    \"cta\": \"Strong Call to Action (in %s)\"\n", lang))
	b.WriteString("  }\n}\n```\n")
	return b.String()
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func metricLabel(v *int64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *v)
}

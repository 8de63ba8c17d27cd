package services

import (
	"testing"

	"reclip-backend/internal/models"
)

func TestNormalizeMetadata_MetricAliasing(t *testing.T) {
	tests := []struct {
		name     string
		rawJSON  string
		getField func(m *models.CanonicalMetadata) *int64
		expected int64
	}{
		{
			"view_count preferred over play_count",
			`{"view_count": 500, "play_count": 900}`,
			func(m *models.CanonicalMetadata) *int64 { return m.ViewCount },
			500,
		},
		{
			"play_count fallback when view_count absent",
			`{"play_count": 900}`,
			func(m *models.CanonicalMetadata) *int64 { return m.ViewCount },
			900,
		},
		{
			"repost_count fallback for share_count",
			`{"repost_count": 42}`,
			func(m *models.CanonicalMetadata) *int64 { return m.ShareCount },
			42,
		},
		{
			"share_count preferred over repost_count",
			`{"share_count": 7, "repost_count": 42}`,
			func(m *models.CanonicalMetadata) *int64 { return m.ShareCount },
			7,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NormalizeMetadata(tc.rawJSON, "https://example.com/v", "/tmp/video_1.mp4")
			got := tc.getField(m)
			if got == nil {
				t.Fatal("expected metric to be set")
			}
			if *got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, *got)
			}
		})
	}
}

func TestNormalizeMetadata_AbsentMetricDistinctFromZero(t *testing.T) {
	m := NormalizeMetadata(`{"view_count": 1000}`, "https://example.com/v", "/tmp/video_1.mp4")

	if m.ViewCount == nil || *m.ViewCount != 1000 {
		t.Errorf("Expected view_count 1000, got %v", m.ViewCount)
	}
	if m.LikeCount != nil {
		t.Errorf("Expected absent like_count to stay unknown, got %d", *m.LikeCount)
	}

	m2 := NormalizeMetadata(`{"like_count": 0}`, "https://example.com/v", "/tmp/video_1.mp4")
	if m2.LikeCount == nil || *m2.LikeCount != 0 {
		t.Error("expected explicit zero to be preserved, not treated as unknown")
	}
}

func TestNormalizeMetadata_PlatformInference(t *testing.T) {
	tests := []struct {
		name     string
		rawJSON  string
		url      string
		expected string
	}{
		{"extractor key wins", `{"extractor_key": "TikTok"}`, "https://example.com/v", "TikTok"},
		{"tiktok from url", `{}`, "https://www.tiktok.com/@user/video/1", models.PlatformTikTok},
		{"instagram from url", `{}`, "https://www.instagram.com/reel/abc/", models.PlatformInstagram},
		{"youtube from url", `{}`, "https://www.youtube.com/watch?v=abc", models.PlatformYouTube},
		{"youtu.be from url", `{}`, "https://youtu.be/abc", models.PlatformYouTube},
		{"generic fallback", `{}`, "https://example.com/v", models.PlatformGeneric},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NormalizeMetadata(tc.rawJSON, tc.url, "/tmp/video_1.mp4")
			if m.Platform != tc.expected {
				t.Errorf("Expected platform %q, got %q", tc.expected, m.Platform)
			}
		})
	}
}

func TestNormalizeMetadata_MediaTextExclusivity(t *testing.T) {
	raw := `{"description": "watch this", "thumbnail": "https://cdn.example.com/t.jpg"}`

	withMedia := NormalizeMetadata(raw, "https://www.tiktok.com/@u/video/1", "/tmp/video_1.mp4")
	if withMedia.TextContent != "" {
		t.Errorf("media post must not carry text_content, got %q", withMedia.TextContent)
	}
	if withMedia.ImageURL != "" {
		t.Errorf("media post must not carry image_url, got %q", withMedia.ImageURL)
	}
	if !withMedia.HasMedia() || withMedia.IsTextPost() {
		t.Error("expected media post classification")
	}

	textOnly := NormalizeMetadata(raw, "https://x.com/u/status/1", "")
	if textOnly.TextContent != "watch this" {
		t.Errorf("text post should alias description, got %q", textOnly.TextContent)
	}
	if textOnly.ImageURL != "https://cdn.example.com/t.jpg" {
		t.Errorf("text post should alias thumbnail, got %q", textOnly.ImageURL)
	}
	if textOnly.HasMedia() || !textOnly.IsTextPost() {
		t.Error("expected text post classification")
	}
}

package models

// Platform labels reported to the client. The extractor key from the tool wins;
// URL inference fills in when the tool does not report one.
const (
	PlatformTikTok    = "TikTok"
	PlatformInstagram = "Instagram"
	PlatformYouTube   = "YouTube"
	PlatformTwitter   = "Twitter"
	PlatformGeneric   = "Video"
)

// CanonicalMetadata is the normalized, platform-agnostic description of a
// source post. Engagement metrics are pointers: nil means the platform did
// not expose the metric, which is distinct from an explicit zero.
//
// Invariant: for a successfully processed item exactly one of LocalMediaPath
// and TextContent is non-empty. A post is either playable media or a
// text/image post, never neither.
type CanonicalMetadata struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Uploader     string `json:"uploader"`
	ViewCount    *int64 `json:"view_count"`
	LikeCount    *int64 `json:"like_count"`
	CommentCount *int64 `json:"comment_count"`
	ShareCount   *int64 `json:"share_count"`
	Duration     *int64 `json:"duration"`
	Width        *int64 `json:"width"`
	Height       *int64 `json:"height"`
	UploadDate   string `json:"upload_date"`
	Platform     string `json:"platform"`
	OriginalURL  string `json:"original_url"`

	// LocalMediaPath is empty for text-only posts.
	LocalMediaPath string `json:"local_media_path"`

	// TextContent and ImageURL are set for text posts (Twitter/X).
	TextContent string `json:"text_content,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// HasMedia reports whether a playable media file was retained locally.
func (m *CanonicalMetadata) HasMedia() bool {
	return m.LocalMediaPath != ""
}

// IsTextPost reports whether the source is a text/image post rather than
// playable media. Prompt construction branches on this.
func (m *CanonicalMetadata) IsTextPost() bool {
	return m.TextContent != ""
}

// Int64Ptr is a convenience for building metadata literals in tests and for
// the scraper's explicit zero metrics.
func Int64Ptr(v int64) *int64 {
	return &v
}

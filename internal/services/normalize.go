package services

import (
	"github.com/tidwall/gjson"

	"reclip-backend/internal/models"
)

// NormalizeMetadata maps raw extraction-tool JSON into the canonical record.
// Pure: no I/O, no clock. mediaPath is the locally downloaded file located by
// the extractor, empty when the tool produced none.
//
// Metric aliasing: some platforms report views as play_count and shares as
// repost_count; the canonical fields absorb both names. A metric the tool
// never reported stays nil so callers can tell "unknown" from zero.
func NormalizeMetadata(rawJSON, finalURL, mediaPath string) *models.CanonicalMetadata {
	platform := gjson.Get(rawJSON, "extractor_key").String()
	if platform == "" {
		platform = inferPlatformLabel(finalURL)
	}

	meta := &models.CanonicalMetadata{
		ID:             gjson.Get(rawJSON, "id").String(),
		Title:          gjson.Get(rawJSON, "title").String(),
		Description:    gjson.Get(rawJSON, "description").String(),
		Uploader:       gjson.Get(rawJSON, "uploader").String(),
		ViewCount:      metricWithAlias(rawJSON, "view_count", "play_count"),
		LikeCount:      metric(rawJSON, "like_count"),
		CommentCount:   metric(rawJSON, "comment_count"),
		ShareCount:     metricWithAlias(rawJSON, "share_count", "repost_count"),
		Duration:       metric(rawJSON, "duration"),
		Width:          metric(rawJSON, "width"),
		Height:         metric(rawJSON, "height"),
		UploadDate:     gjson.Get(rawJSON, "upload_date").String(),
		Platform:       platform,
		OriginalURL:    finalURL,
		LocalMediaPath: mediaPath,
	}

	// Text posts carry their body in the description and their image in the
	// thumbnail. Only alias when no playable media exists, preserving the
	// media/text exclusivity invariant.
	if mediaPath == "" {
		meta.TextContent = meta.Description
		meta.ImageURL = gjson.Get(rawJSON, "thumbnail").String()
	}

	return meta
}

func metric(rawJSON, field string) *int64 {
	if v := gjson.Get(rawJSON, field); v.Exists() && v.Type != gjson.Null {
		n := v.Int()
		return &n
	}
	return nil
}

func metricWithAlias(rawJSON, field, alias string) *int64 {
	if v := metric(rawJSON, field); v != nil {
		return v
	}
	return metric(rawJSON, alias)
}

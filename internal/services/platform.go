package services

import (
	"path/filepath"
	"strings"

	"reclip-backend/internal/models"
)

// PlatformFamily drives per-platform extraction behavior (tool arguments,
// fallback eligibility). The user-facing label in CanonicalMetadata is
// resolved separately by the normalizer.
type PlatformFamily string

const (
	FamilyTikTok    PlatformFamily = "tiktok"
	FamilyInstagram PlatformFamily = "instagram"
	FamilyYouTube   PlatformFamily = "youtube"
	FamilyTwitter   PlatformFamily = "twitter"
	FamilyUnknown   PlatformFamily = "unknown"
)

// platformPatterns maps URL substrings to platform families. New platforms
// are added here, not as new branches.
var platformPatterns = []struct {
	substr string
	family PlatformFamily
}{
	{"tiktok.com", FamilyTikTok},
	{"instagram.com", FamilyInstagram},
	{"youtube.com", FamilyYouTube},
	{"youtu.be", FamilyYouTube},
	{"twitter.com", FamilyTwitter},
	{"x.com", FamilyTwitter},
}

func DetectPlatformFamily(url string) PlatformFamily {
	for _, p := range platformPatterns {
		if strings.Contains(url, p.substr) {
			return p.family
		}
	}
	return FamilyUnknown
}

// labelPatterns back the normalizer's URL inference when the tool reports no
// extractor key.
var labelPatterns = []struct {
	substr string
	label  string
}{
	{"tiktok", models.PlatformTikTok},
	{"instagram", models.PlatformInstagram},
	{"youtube", models.PlatformYouTube},
	{"youtu.be", models.PlatformYouTube},
}

func inferPlatformLabel(url string) string {
	for _, p := range labelPatterns {
		if strings.Contains(url, p.substr) {
			return p.label
		}
	}
	return models.PlatformGeneric
}

// Extension→MIME lookup. The extraction tool and browsers may omit MIME
// types, so media defaults to video/mp4 and unknown documents to
// application/octet-stream.
var mediaMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".mp4":  "video/mp4",
}

var documentMimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

func MediaMimeType(path string) string {
	if mt, ok := mediaMimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return "video/mp4"
}

func DocumentMimeType(path string) string {
	if mt, ok := documentMimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return "application/octet-stream"
}

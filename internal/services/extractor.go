package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"reclip-backend/internal/models"
	"reclip-backend/internal/storage"
)

// ErrNoJSONCandidate means the tool ran but its stdout contained no complete
// JSON object line.
var ErrNoJSONCandidate = errors.New("no JSON metadata found in tool output")

// ExtractorService wraps the external extraction tool (yt-dlp). It obtains
// structured metadata plus a downloaded media file, falling back to the tweet
// scraper when the tool fails on Twitter/X (usually a text-only post).
type ExtractorService struct {
	resolver   *URLResolver
	scraper    *TweetScraper
	ytdlpPath  string
	ffmpegPath string
}

func NewExtractorService(resolver *URLResolver, scraper *TweetScraper, ytdlpPath, ffmpegPath string) *ExtractorService {
	return &ExtractorService{
		resolver:   resolver,
		scraper:    scraper,
		ytdlpPath:  ytdlpPath,
		ffmpegPath: ffmpegPath,
	}
}

// Extract resolves the URL, runs the tool into the request directory, and
// returns normalized metadata. Returns *ExtractionError when nothing usable
// could be produced.
func (s *ExtractorService) Extract(ctx context.Context, url string, dir *storage.RequestDir) (*models.CanonicalMetadata, error) {
	res := s.resolver.Resolve(ctx, url)
	if res.Outcome != ResolveSkipped {
		log.Printf("Processing URL: %s -> %s (%s)", url, res.URL, res.Outcome)
	}

	family := DetectPlatformFamily(res.URL)

	meta, err := s.runTool(ctx, res.URL, family, dir)
	if err != nil && family == FamilyTwitter {
		log.Printf("Extraction tool failed for tweet, attempting scraper fallback: %v", err)
		meta, err = s.scrapeFallback(ctx, res.URL)
	}
	if err != nil {
		return nil, &ExtractionError{Message: fmt.Sprintf("extraction failed: %v", err)}
	}

	// A processed item is either playable media or a text post, never
	// neither. An image-only scrape without text does not count as success.
	if !meta.HasMedia() && !meta.IsTextPost() {
		if family == FamilyTwitter {
			if fb, fbErr := s.scrapeFallback(ctx, res.URL); fbErr == nil {
				return fb, nil
			}
		}
		return nil, &ExtractionError{Message: "extraction produced neither media nor text content"}
	}

	return meta, nil
}

func (s *ExtractorService) runTool(ctx context.Context, finalURL string, family PlatformFamily, dir *storage.RequestDir) (*models.CanonicalMetadata, error) {
	prefix := fmt.Sprintf("video_%d", time.Now().UnixMilli())
	outputTemplate := filepath.Join(dir.Path, prefix+".%(ext)s")

	args := []string{
		"--print-json",
		"--no-playlist",
		"--ignore-errors",
		"--ffmpeg-location", s.ffmpegPath,
	}
	// YouTube's web client demands JS execution; the android client does
	// not. Other platforms break with non-default clients.
	if family == FamilyYouTube {
		args = append(args, "--extractor-args", "youtube:player_client=android")
	}
	args = append(args, "-o", outputTemplate, finalURL)

	cmd := exec.CommandContext(ctx, s.ytdlpPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	stdout, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("tool invocation failed: %v (%s)", err, strings.TrimSpace(stderr.String()))
	}

	jsonLine, err := FindJSONObjectLine(string(stdout))
	if err != nil {
		return nil, err
	}

	mediaPath, err := locateDownload(dir.Path, prefix)
	if err != nil {
		return nil, err
	}
	if mediaPath == "" && family != FamilyTwitter {
		return nil, errors.New("downloaded file not found")
	}

	return NormalizeMetadata(jsonLine, finalURL, mediaPath), nil
}

func (s *ExtractorService) scrapeFallback(ctx context.Context, finalURL string) (*models.CanonicalMetadata, error) {
	meta, err := s.scraper.ScrapeTweet(ctx, finalURL)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, errors.New("tweet scraper found nothing usable")
	}
	if !meta.IsTextPost() {
		return nil, errors.New("tweet scraper found no text content")
	}
	log.Println("Tweet scraper fallback successful")
	return meta, nil
}

// FindJSONObjectLine scans mixed tool stdout for the first line that is a
// complete JSON object. The tool interleaves progress output with the
// metadata dump, so position cannot be relied on.
func FindJSONObjectLine(stdout string) (string, error) {
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			continue
		}
		if json.Valid([]byte(line)) {
			return line, nil
		}
	}
	return "", ErrNoJSONCandidate
}

// locateDownload finds the tool's output by filename prefix; the extension is
// tool-determined and not known in advance. Empty when nothing was written,
// which is expected for text-only tweets.
func locateDownload(dirPath, prefix string) (string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			return filepath.Join(dirPath, entry.Name()), nil
		}
	}
	return "", nil
}

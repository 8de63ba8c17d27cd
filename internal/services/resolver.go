package services

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// ResolveOutcome tags how a URL was resolved so fallbacks are observable
// instead of indistinguishable success.
type ResolveOutcome string

const (
	// ResolveSkipped: the URL already matched a known platform; following
	// redirects would waste time or trip anti-bot defenses.
	ResolveSkipped ResolveOutcome = "skipped"
	// ResolveFollowed: redirects were followed to the final location.
	ResolveFollowed ResolveOutcome = "followed"
	// ResolveFallback: the HEAD request failed; the original URL is used.
	ResolveFallback ResolveOutcome = "fallback"
)

type Resolution struct {
	URL     string
	Outcome ResolveOutcome
}

type URLResolver struct {
	httpClient *http.Client
}

func NewURLResolver() *URLResolver {
	return &URLResolver{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// knownPlatformSegments are canonical path patterns that never hide behind
// a shortener.
var knownPlatformSegments = []string{
	"tiktok.com/@",
	"instagram.com/",
	"youtube.com/",
	"youtu.be/",
}

// Resolve unshortens a URL by following redirects. Resolution is best-effort:
// any network failure falls back to the original URL.
func (r *URLResolver) Resolve(ctx context.Context, url string) Resolution {
	for _, segment := range knownPlatformSegments {
		if strings.Contains(url, segment) {
			return Resolution{URL: url, Outcome: ResolveSkipped}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		log.Printf("URL resolution failed for %s, using original: %v", url, err)
		return Resolution{URL: url, Outcome: ResolveFallback}
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Printf("URL resolution failed for %s, using original: %v", url, err)
		return Resolution{URL: url, Outcome: ResolveFallback}
	}
	defer resp.Body.Close()

	return Resolution{URL: resp.Request.URL.String(), Outcome: ResolveFollowed}
}

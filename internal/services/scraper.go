package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"reclip-backend/internal/models"
)

const crawlerUserAgent = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"

// TweetScraper is the Twitter/X fallback for when the extraction tool fails,
// which usually means a text-only tweet with nothing to download. It fetches
// the post through a metadata mirror that serves plain Open Graph tags.
type TweetScraper struct {
	httpClient *http.Client
	mirrorHost string
}

func NewTweetScraper() *TweetScraper {
	return &TweetScraper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		mirrorHost: "fixupx.com",
	}
}

// ScrapeTweet fetches OG metadata for a tweet. Returns (nil, nil) when
// neither a description nor an image could be found: nothing usable, but not
// a transport error.
func (s *TweetScraper) ScrapeTweet(ctx context.Context, url string) (*models.CanonicalMetadata, error) {
	mirrorURL := s.mirrorURL(url)
	log.Printf("Fetching tweet metadata from: %s", mirrorURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mirrorURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", crawlerUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("tweet mirror returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	title := ogContent(doc, "og:title")
	description := ogContent(doc, "og:description")
	imageURL := ogContent(doc, "og:image")

	if description == "" && imageURL == "" {
		return nil, nil
	}

	if title == "" {
		title = "Unknown"
	}
	// Titles come as "Name (@handle)"
	uploader := strings.TrimSpace(strings.SplitN(title, "(", 2)[0])

	zero := func() *int64 { v := int64(0); return &v }

	return &models.CanonicalMetadata{
		ID:           tweetID(url),
		Title:        title,
		Description:  description,
		Uploader:     uploader,
		ViewCount:    zero(),
		LikeCount:    zero(),
		CommentCount: zero(),
		ShareCount:   zero(),
		Duration:     zero(),
		Width:        zero(),
		Height:       zero(),
		UploadDate:   time.Now().UTC().Format(time.RFC3339),
		Platform:     models.PlatformTwitter,
		OriginalURL:  url,
		TextContent:  description,
		ImageURL:     imageURL,
	}, nil
}

func (s *TweetScraper) mirrorURL(url string) string {
	clean := strings.SplitN(url, "?", 2)[0]
	clean = strings.Replace(clean, "x.com", s.mirrorHost, 1)
	clean = strings.Replace(clean, "twitter.com", s.mirrorHost, 1)
	return clean
}

func ogContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).Attr("content")
	return content
}

func tweetID(url string) string {
	clean := strings.SplitN(url, "?", 2)[0]
	parts := strings.Split(strings.TrimSuffix(clean, "/"), "/")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return "unknown"
	}
	return parts[len(parts)-1]
}

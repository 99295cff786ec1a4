package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/markusmobius/go-trafilatura"
)

// ErrTooShort is returned when the extracted text is shorter than the configured minimum
var ErrTooShort = errors.New("extracted text too short")

// Params defines extractor settings
type Params struct {
	Timeout       time.Duration
	UserAgent     string
	MinTextLength int
}

// HTTPExtractor extracts article text from article pages using trafilatura
type HTTPExtractor struct {
	client        *http.Client
	userAgent     string
	minTextLength int
}

// NewHTTPExtractor creates a new content extractor
func NewHTTPExtractor(p Params) *HTTPExtractor {
	if p.Timeout <= 0 {
		p.Timeout = 30 * time.Second
	}
	if p.UserAgent == "" {
		p.UserAgent = "Mozilla/5.0 (compatible; NewsFeed/1.0)"
	}
	return &HTTPExtractor{
		client:        &http.Client{Timeout: p.Timeout},
		userAgent:     p.UserAgent,
		minTextLength: p.MinTextLength,
	}
}

// Extract retrieves the page at link and returns its main text
func (e *HTTPExtractor) Extract(ctx context.Context, link string) (string, error) {
	parsedURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %q", link)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, link)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}

	result, err := trafilatura.Extract(resp.Body, opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", link, err)
	}
	if result == nil {
		return "", fmt.Errorf("no content extracted from %s", link)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return "", fmt.Errorf("no text content extracted from %s", link)
	}
	if utf8.RuneCountInString(text) < e.minTextLength {
		return "", fmt.Errorf("%s: %w", link, ErrTooShort)
	}
	return text, nil
}

package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/newsfeed/pkg/domain"
)

// Parser fetches and parses RSS/Atom feeds
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	if userAgent == "" {
		userAgent = "NewsFeed/1.0"
	}
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Parse fetches and parses a feed from the given URL
func (p *Parser) Parse(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	result := &domain.ParsedFeed{
		Title: feed.Title,
		Link:  feed.Link,
		Items: make([]domain.ParsedItem, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		parsed := domain.ParsedItem{
			GUID:        item.GUID,
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Content:     item.Content,
		}
		if parsed.GUID == "" {
			parsed.GUID = item.Link
		}
		if item.Author != nil {
			parsed.Author = item.Author.Name
		}

		switch {
		case item.PublishedParsed != nil:
			parsed.Published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			parsed.Published = *item.UpdatedParsed
		}

		result.Items = append(result.Items, parsed)
	}

	return result, nil
}

// fetch retrieves content from a URL
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setFeedHeaders(req, p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

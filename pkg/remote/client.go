// Package remote is a record store client for a hosted PostgREST-compatible database service.
// Articles live in a single table addressed by id; every call is one HTTP round trip.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/newsfeed/pkg/domain"
)

// ErrNotFound returned when no article matches the requested id
var ErrNotFound = domain.ErrNotFound

// Params configures the client
type Params struct {
	URL     string // service base url, e.g. https://xyz.supabase.co
	APIKey  string
	Table   string
	Timeout time.Duration
}

// Client talks to the hosted record store over its REST interface
type Client struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

// StoreError is a non-2xx response from the record store
type StoreError struct {
	Status  int
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("record store status %d: %s", e.Status, e.Message)
}

// New makes a remote store client
func New(p Params) *Client {
	if p.Table == "" {
		p.Table = "article"
	}
	if p.Timeout == 0 {
		p.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(p.URL, "/"),
		apiKey:  p.APIKey,
		table:   p.Table,
		client: &http.Client{
			Timeout: p.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// UpdateFields patches the set fields of the article with the given id
func (c *Client) UpdateFields(ctx context.Context, id int64, fields domain.ArticleFields) error {
	if fields.IsEmpty() {
		return nil
	}

	q := url.Values{}
	q.Set("id", "eq."+strconv.FormatInt(id, 10))

	var updated []json.RawMessage
	if err := c.do(ctx, http.MethodPatch, q, fields, &updated); err != nil {
		return fmt.Errorf("update article %d: %w", id, err)
	}
	if len(updated) == 0 {
		return fmt.Errorf("update article %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetArticle retrieves an article by id
func (c *Client) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+strconv.FormatInt(id, 10))

	var res []domain.Article
	if err := c.do(ctx, http.MethodGet, q, nil, &res); err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	if len(res) == 0 {
		return nil, ErrNotFound
	}
	return &res[0], nil
}

// ListArticles returns the most recent non-archived articles
func (c *Client) ListArticles(ctx context.Context, limit int) ([]domain.Article, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("archived", "is.false")
	q.Set("order", "published_at.desc,id.desc")
	q.Set("limit", strconv.Itoa(limit))

	res := []domain.Article{}
	if err := c.do(ctx, http.MethodGet, q, nil, &res); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return res, nil
}

// ArticleExists checks if an article with the given link is already stored
func (c *Client) ArticleExists(ctx context.Context, link string) (bool, error) {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("link", "eq."+link)
	q.Set("limit", "1")

	var res []struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodGet, q, nil, &res); err != nil {
		return false, fmt.Errorf("check article exists: %w", err)
	}
	return len(res) > 0, nil
}

// articleInsert is the article payload without the store-assigned id
type articleInsert struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Publication string    `json:"publication"`
	Summary     *string   `json:"summary"`
	PublishedAt time.Time `json:"published_at"`
	Score       int       `json:"score"`
	Agent       string    `json:"agent"`
	AIScore2    float64   `json:"ai_score2"`
	Read        bool      `json:"read"`
	Saved       bool      `json:"saved"`
	Archived    bool      `json:"archived"`
	TagsScope   []string  `json:"tags_scope"`
	TagsMood    []string  `json:"tags_mood"`
	TagsTopic   []string  `json:"tags_topic"`
}

// CreateArticle inserts a new article and sets its id from the store response
func (c *Client) CreateArticle(ctx context.Context, article *domain.Article) error {
	payload := articleInsert{
		Title:       article.Title,
		Link:        article.Link,
		Publication: article.Publication,
		Summary:     article.Summary,
		PublishedAt: article.PublishedAt,
		Score:       article.Score,
		Agent:       article.Agent,
		AIScore2:    article.AIScore2,
		Read:        article.Read,
		Saved:       article.Saved,
		Archived:    article.Archived,
		TagsScope:   article.TagsScope,
		TagsMood:    article.TagsMood,
		TagsTopic:   article.TagsTopic,
	}

	var created []struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, url.Values{"select": {"id"}}, payload, &created); err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	if len(created) == 0 {
		return fmt.Errorf("create article: empty response")
	}
	article.ID = created[0].ID
	return nil
}

// do sends one request to the table endpoint and decodes the JSON response into out
func (c *Client) do(ctx context.Context, method string, q url.Values, body, out any) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, url.PathEscape(c.table), q.Encode())

	var reqBody io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StoreError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls the message from a PostgREST error body, falling back to the raw text
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil {
		return err.Error()
	}
	var pgErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &pgErr) == nil && pgErr.Message != "" {
		return pgErr.Message
	}
	return strings.TrimSpace(string(data))
}

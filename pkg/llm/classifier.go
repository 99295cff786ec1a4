package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/newsfeed/pkg/config"
	"github.com/umputun/newsfeed/pkg/domain"
)

// errBadJSON marks responses worth asking for again
var errBadJSON = errors.New("bad json in llm response")

const maxAttempts = 3

// Classifier uses an LLM to score and tag articles
type Classifier struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewClassifier creates a new LLM classifier
func NewClassifier(cfg config.LLMConfig) *Classifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Classifier{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

const defaultSystemPrompt = `You are a news editor rating articles for a personal reading list.
Rate each article with a score from -10 to 10 where:
- -10 to -5: the reader would not want to see it
- -4 to 3: neutral
- 4 to 10: the reader should not miss it

Each classification must contain:
- link: the article link exactly as given
- score: number from -10 to 10
- scope: 1-2 keywords for the geographic or organisational scope (e.g. "world", "uk", "eu", "local")
- mood: exactly one word describing the tone, "upbeat" or "heavy" when one of them fits
- topics: 1-3 topic keywords

Respond with a JSON array of classification objects and nothing else.`

// classification is the wire shape of one LLM verdict
type classification struct {
	Link   string   `json:"link"`
	Score  float64  `json:"score"`
	Scope  []string `json:"scope"`
	Mood   string   `json:"mood"`
	Topics []string `json:"topics"`
}

// Classify scores the given articles. Verdicts for links not in the request are dropped.
func (c *Classifier) Classify(ctx context.Context, articles []domain.Article) ([]domain.Classification, error) {
	if len(articles) == 0 {
		return []domain.Classification{}, nil
	}

	prompt := c.buildPrompt(articles)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       c.config.Model,
			Temperature: float32(c.config.Temperature),
			MaxTokens:   c.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: c.systemMsg},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}

		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("no response from llm")
		}

		result, err := c.parseResponse(resp.Choices[0].Message.Content, articles)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !errors.Is(err, errBadJSON) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

// buildPrompt lists the articles to classify
func (c *Classifier) buildPrompt(articles []domain.Article) string {
	var sb strings.Builder
	sb.WriteString("Classify these articles:\n\n")
	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("%d. Link: %s\n", i+1, a.Link))
		sb.WriteString(fmt.Sprintf("   Title: %s\n", a.Title))
		if a.Publication != "" {
			sb.WriteString(fmt.Sprintf("   Publication: %s\n", a.Publication))
		}
		if summary := a.SummaryText(); summary != "" {
			if utf8.RuneCountInString(summary) > 500 {
				summary = string([]rune(summary)[:500]) + "..."
			}
			sb.WriteString(fmt.Sprintf("   Summary: %s\n", summary))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Respond with a JSON array of classification objects.")
	return sb.String()
}

// parseResponse extracts the JSON array from the LLM answer and keeps known links only
func (c *Classifier) parseResponse(content string, articles []domain.Article) ([]domain.Classification, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no json array found: %w", errBadJSON)
	}

	var parsed []classification
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("parse json array: %w: %w", errBadJSON, err)
	}

	known := make(map[string]bool, len(articles))
	for _, a := range articles {
		known[a.Link] = true
	}

	res := make([]domain.Classification, 0, len(parsed))
	for _, p := range parsed {
		if !known[p.Link] {
			continue
		}
		score := min(max(p.Score, -10), 10)
		cl := domain.Classification{
			Link:      p.Link,
			Score:     score,
			TagsScope: cleanTags(p.Scope),
			TagsTopic: cleanTags(p.Topics),
		}
		if mood := strings.TrimSpace(strings.ToLower(p.Mood)); mood != "" {
			cl.TagsMood = []string{mood}
		}
		res = append(res, cl)
	}
	return res, nil
}

// cleanTags lowercases and trims tags, dropping empty ones and duplicates
func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		res = append(res, t)
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

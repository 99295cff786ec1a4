package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsfeed/pkg/config"
	"github.com/umputun/newsfeed/pkg/domain"
)

func chatServer(t *testing.T, answers ...string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		if assert.Len(t, req.Messages, 2) {
			assert.Contains(t, req.Messages[1].Content, "https://example.com/go")
		}

		n := atomic.AddInt32(&calls, 1)
		answer := answers[min(int(n)-1, len(answers)-1)]
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: answer}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	return server, &calls
}

func testArticles() []domain.Article {
	return []domain.Article{
		{Link: "https://example.com/go", Title: "Go 1.24 released", Summary: domain.StringPtr("New features")},
		{Link: "https://example.com/storm", Title: "Storm hits the coast", Publication: "Daily"},
	}
}

func TestClassifier_Classify(t *testing.T) {
	server, calls := chatServer(t, `Here are the classifications:
[
  {"link": "https://example.com/go", "score": 8.5, "scope": ["World", " world "], "mood": "Upbeat", "topics": ["golang", "programming"]},
  {"link": "https://example.com/storm", "score": -14, "scope": ["uk"], "mood": "heavy", "topics": ["weather"]},
  {"link": "https://example.com/unknown", "score": 3, "mood": "calm"}
]`)
	defer server.Close()

	classifier := NewClassifier(config.LLMConfig{
		Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "gpt-4o-mini", Temperature: 0.3, MaxTokens: 500,
	})

	res, err := classifier.Classify(context.Background(), testArticles())
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	assert.Equal(t, domain.Classification{
		Link: "https://example.com/go", Score: 8.5,
		TagsScope: []string{"world"}, TagsMood: []string{"upbeat"}, TagsTopic: []string{"golang", "programming"},
	}, res[0])
	assert.InDelta(t, -10.0, res[1].Score, 0.0001)
	assert.Equal(t, []string{"heavy"}, res[1].TagsMood)
}

func TestClassifier_Classify_RetriesBadJSON(t *testing.T) {
	server, calls := chatServer(t, "sorry, no json here", `[{"link": "https://example.com/go", "score": 2}]`)
	defer server.Close()

	classifier := NewClassifier(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "gpt-4o-mini"})
	res, err := classifier.Classify(context.Background(), testArticles())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.InDelta(t, 2.0, res[0].Score, 0.0001)
	assert.Nil(t, res[0].TagsMood)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestClassifier_Classify_GivesUp(t *testing.T) {
	server, calls := chatServer(t, "[not json]")
	defer server.Close()

	classifier := NewClassifier(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "gpt-4o-mini"})
	_, err := classifier.Classify(context.Background(), testArticles())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestClassifier_Classify_Empty(t *testing.T) {
	classifier := NewClassifier(config.LLMConfig{Model: "gpt-4o-mini"})
	res, err := classifier.Classify(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestClassifier_Classify_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "boom"}}`))
	}))
	defer server.Close()

	classifier := NewClassifier(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "gpt-4o-mini"})
	_, err := classifier.Classify(context.Background(), testArticles())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm request failed")
}

func TestClassifier_BuildPrompt(t *testing.T) {
	classifier := NewClassifier(config.LLMConfig{Model: "gpt-4o-mini"})
	long := strings.Repeat("ж", 600)
	prompt := classifier.buildPrompt([]domain.Article{{Link: "https://a.example", Title: "A", Summary: &long}})
	assert.Contains(t, prompt, "1. Link: https://a.example")
	assert.Contains(t, prompt, "Title: A")
	assert.Contains(t, prompt, strings.Repeat("ж", 500)+"...")
	assert.NotContains(t, prompt, strings.Repeat("ж", 501))
	assert.NotContains(t, prompt, "Publication:")
}

func TestCleanTags(t *testing.T) {
	assert.Nil(t, cleanTags(nil))
	assert.Nil(t, cleanTags([]string{" ", ""}))
	assert.Equal(t, []string{"eu", "uk"}, cleanTags([]string{"EU", "uk", "eu "}))
}

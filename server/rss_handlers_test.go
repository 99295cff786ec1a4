package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsfeed/pkg/config"
	"github.com/umputun/newsfeed/pkg/domain"
	"github.com/umputun/newsfeed/server/mocks"
)

func TestServer_rssHandler(t *testing.T) {
	published := time.Date(2025, 1, 6, 9, 5, 0, 0, time.UTC)
	db := memoryDatabase(
		domain.Article{ID: 1, Title: "Good news", Link: "https://example.com/1", PublishedAt: published, Score: 7, Saved: true},
		domain.Article{ID: 2, Title: "Bad news", Link: "https://example.com/2", PublishedAt: published, Score: -7},
		domain.Article{ID: 3, Title: "Plain news", Link: "https://example.com/3", PublishedAt: published, Score: 0},
	)
	cfg := testConfig()
	cfg.GetAppConfigFunc = func() config.AppConfig { return config.AppConfig{Name: "My News"} }
	srv := New(cfg, db, "test", false)

	t.Run("all", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rss", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
		body := w.Body.String()
		assert.Contains(t, body, "<title>My News</title>")
		assert.Contains(t, body, `<atom:link href="http://example.com/rss"`)
		assert.Contains(t, body, "[+7] Good news")
		assert.Contains(t, body, "[-7] Bad news")
		assert.Contains(t, body, "[0] Plain news")
	})

	t.Run("min score", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rss?min_score=0", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Good news")
		assert.Contains(t, body, "Plain news")
		assert.NotContains(t, body, "Bad news")
	})

	t.Run("saved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/rss/saved", http.NoBody)
		req.Header.Set("X-Forwarded-Proto", "https")
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<title>My News - saved</title>")
		assert.Contains(t, body, `<atom:link href="https://example.com/rss/saved"`)
		assert.Contains(t, body, "Good news")
		assert.NotContains(t, body, "Plain news")
	})

	t.Run("bad min score", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rss?min_score=high", http.NoBody))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid min_score")
	})

	t.Run("store failure", func(t *testing.T) {
		failing := &mocks.DatabaseMock{
			ListArticlesFunc: func(ctx context.Context, limit int) ([]domain.Article, error) {
				return nil, errors.New("disk full")
			},
		}
		w := httptest.NewRecorder()
		New(testConfig(), failing, "test", false).router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rss", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

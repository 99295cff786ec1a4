package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsfeed/pkg/config"
	"github.com/umputun/newsfeed/pkg/domain"
	"github.com/umputun/newsfeed/pkg/manifest"
	"github.com/umputun/newsfeed/server/mocks"
)

func TestServer_getArticleHandler(t *testing.T) {
	published := time.Date(2025, 1, 6, 9, 5, 0, 0, time.UTC)
	db := memoryDatabase(domain.Article{ID: 7, Title: "Seven", Link: "https://example.com/7", PublishedAt: published, Score: 4, Agent: domain.AgentUser})
	srv := New(testConfig(), db, "test", false)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/articles/7", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)

		var a domain.Article
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
		assert.Equal(t, int64(7), a.ID)
		assert.Equal(t, "Seven", a.Title)
		assert.Equal(t, 4, a.Score)
		assert.True(t, published.Equal(a.PublishedAt))
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/articles/8", http.NoBody))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"article not found"}`, w.Body.String())
	})

	t.Run("bad id", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/articles/abc", http.NoBody))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid article id"}`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		failing := &mocks.DatabaseMock{
			GetArticleFunc: func(ctx context.Context, id int64) (*domain.Article, error) {
				return nil, errors.New("connection refused")
			},
		}
		s := New(testConfig(), failing, "test", false)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/articles/1", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestServer_manifestHandler(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		srv := New(testConfig(), &mocks.DatabaseMock{}, "test", false)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manifest.webmanifest", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/manifest+json", w.Header().Get("Content-Type"))

		var m manifest.Manifest
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
		assert.Equal(t, "News Feed", m.Name)
		assert.Equal(t, "NewsFeed", m.ShortName)
		assert.Equal(t, "#fff", m.BackgroundColor)
		assert.Equal(t, "standalone", m.Display)
		assert.Equal(t, "portrait", m.Orientation)
		assert.Equal(t, "/", m.Scope)
		assert.Equal(t, "/", m.StartURL)
		require.Len(t, m.Icons, 4)
		assert.Equal(t, manifest.Icon{Src: "/icons/icon-512x512.png", Sizes: "512x512", Type: "image/png"}, m.Icons[3])
	})

	t.Run("configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.GetAppConfigFunc = func() config.AppConfig {
			return config.AppConfig{Name: "Morning Paper", ShortName: "Paper", BackgroundColor: "#000"}
		}
		srv := New(cfg, &mocks.DatabaseMock{}, "test", false)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manifest.webmanifest", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)

		var m manifest.Manifest
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
		assert.Equal(t, "Morning Paper", m.Name)
		assert.Equal(t, "Paper", m.ShortName)
		assert.Equal(t, "#000", m.BackgroundColor)
	})
}

package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsfeed/pkg/config"
	"github.com/umputun/newsfeed/pkg/remote"
	"github.com/umputun/newsfeed/pkg/repository"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	t.Setenv("DB_PATH", t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: "testdata/test_config.yml"}) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18765/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 5*time.Second, 50*time.Millisecond)

	resp, err := http.Get("http://127.0.0.1:18765/manifest.webmanifest")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get("http://127.0.0.1:18765/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "No articles yet.")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server shutdown timeout")
	}
}

func TestMakeStore(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Store.Type = config.StoreSQLite
		cfg.Database.DSN = ":memory:"
		cfg.Database.MaxOpenConns = 1
		cfg.Database.MaxIdleConns = 1

		store, closeFn, err := makeStore(context.Background(), cfg)
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &repository.ArticleRepository{}, store)
	})

	t.Run("remote", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Store.Type = config.StoreRemote
		cfg.Remote.URL = "https://records.example.com"

		store, closeFn, err := makeStore(context.Background(), cfg)
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &remote.Client{}, store)
	})
}

func TestMakeScheduler(t *testing.T) {
	cfg := &config.Config{Feeds: []config.FeedConfig{{URL: "https://example.com/rss", Publication: "Example"}}}
	cfg.Server.Timeout = 5 * time.Second
	cfg.Extraction.Enabled = true
	cfg.LLM.Model = "gpt-4o-mini"

	sched := makeScheduler(cfg, nil)
	assert.NotNil(t, sched)
}

func TestNewFeedParser_FetchTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
				return
			}
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = io.WriteString(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>Fast</title>`+
			`<item><title>One</title><link>https://example.com/1</link></item></channel></rss>`)
	}))
	defer ts.Close()

	cfg := &config.Config{}
	cfg.Server.Timeout = time.Minute
	cfg.Schedule.FetchTimeout = 200 * time.Millisecond
	parser := newFeedParser(cfg)

	parsed, err := parser.Parse(context.Background(), ts.URL+"/fast")
	require.NoError(t, err)
	assert.Equal(t, "Fast", parsed.Title)

	st := time.Now()
	_, err = parser.Parse(context.Background(), ts.URL+"/slow")
	require.Error(t, err)
	assert.Less(t, time.Since(st), time.Second, "fetch bound by schedule.fetch_timeout, not server timeout")
}

func TestSecrets(t *testing.T) {
	cfg := &config.Config{}
	assert.Empty(t, secrets(cfg))

	cfg.Remote.APIKey = "remote-key"
	cfg.LLM.APIKey = "llm-key"
	assert.Equal(t, []string{"remote-key", "llm-key"}, secrets(cfg))
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode", func(t *testing.T) {
		setupLog(true, false)
	})
	t.Run("no color", func(t *testing.T) {
		setupLog(false, true)
	})
	t.Run("with secrets", func(t *testing.T) {
		setupLog(true, false, "secret1", "secret2")
	})
}

package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/umputun/newsfeed/pkg/domain"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// getArticleHandler returns a single article as JSON
func (s *Server) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, ok := s.loadArticle(w, r)
	if !ok {
		return
	}
	RenderJSON(w, r, http.StatusOK, article)
}

// manifestHandler serves the web app manifest
func (s *Server) manifestHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Type", "application/manifest+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(manifestFor(s.config.GetAppConfig())); err != nil {
		log.Printf("[ERROR] can't encode manifest: %v", err)
	}
}

// loadArticle reads the id path value and fetches the article, writing the error response on failure
func (s *Server) loadArticle(w http.ResponseWriter, r *http.Request) (*domain.Article, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		RenderError(w, r, errors.New("invalid article id"), http.StatusBadRequest)
		return nil, false
	}

	article, err := s.db.GetArticle(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			RenderError(w, r, err, http.StatusNotFound)
			return nil, false
		}
		log.Printf("[ERROR] failed to get article %d: %v", id, err)
		RenderError(w, r, errors.New("failed to get article"), http.StatusInternalServerError)
		return nil, false
	}
	return article, true
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}

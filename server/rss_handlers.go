package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/umputun/newsfeed/pkg/domain"
	"github.com/umputun/newsfeed/pkg/feed"
)

// rssHandler serves recent articles as RSS. /rss/saved keeps only saved articles,
// min_score query parameter drops articles scored below it.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	minScore := -10
	if v := r.URL.Query().Get("min_score"); v != "" {
		score, err := strconv.Atoi(v)
		if err != nil {
			RenderError(w, r, fmt.Errorf("invalid min_score: %w", err), http.StatusBadRequest)
			return
		}
		minScore = score
	}
	savedOnly := r.URL.Path == "/rss/saved"

	articles, err := s.db.ListArticles(r.Context(), s.config.GetPageSize())
	if err != nil {
		log.Printf("[ERROR] failed to list articles for rss: %v", err)
		RenderError(w, r, errors.New("failed to list articles"), http.StatusInternalServerError)
		return
	}

	filtered := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if a.Score < minScore || (savedOnly && !a.Saved) {
			continue
		}
		filtered = append(filtered, a)
	}

	title := manifestFor(s.config.GetAppConfig()).Name
	if savedOnly {
		title += " - saved"
	}

	out, err := feed.NewGenerator(baseURL(r)).GenerateRSS(filtered, title, r.URL.Path)
	if err != nil {
		log.Printf("[ERROR] failed to generate rss: %v", err)
		RenderError(w, r, errors.New("failed to generate rss"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(out)); err != nil {
		log.Printf("[WARN] failed to write rss response: %v", err)
	}
}

// baseURL reconstructs the external base url of the request
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/umputun/newsfeed/pkg/domain"
	"github.com/umputun/newsfeed/pkg/row"
)

// pageData is the template data for the articles page
type pageData struct {
	AppName  string
	Articles []articleView
}

// articlesHandler displays the list of recent articles
func (s *Server) articlesHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := s.db.ListArticles(r.Context(), s.config.GetPageSize())
	if err != nil {
		log.Printf("[ERROR] failed to list articles: %v", err)
		http.Error(w, "failed to load articles", http.StatusInternalServerError)
		return
	}

	data := pageData{AppName: manifestFor(s.config.GetAppConfig()).Name, Articles: make([]articleView, 0, len(articles))}
	for _, a := range articles {
		data.Articles = append(data.Articles, newArticleView(a, s.location))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("[ERROR] failed to render articles page: %v", err)
	}
}

// articleActionHandler applies a row action and responds with the re-rendered row.
// A rejected store update is not an error for the client, the unchanged row is returned.
func (s *Server) articleActionHandler(w http.ResponseWriter, r *http.Request) {
	action, err := row.ParseAction(r.PathValue("action"))
	if err != nil {
		RenderError(w, r, fmt.Errorf("%w: %q", err, r.PathValue("action")), http.StatusBadRequest)
		return
	}

	article, ok := s.loadArticle(w, r)
	if !ok {
		return
	}

	res, err := s.rows.Dispatch(r.Context(), *article, action)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	if !res.Applied {
		log.Printf("[DEBUG] action %s on article %d not applied", action, article.ID)
	}

	s.renderRow(w, res.Article)
}

// openArticleHandler marks the article read and redirects to its link.
// The redirect happens even if marking read failed.
func (s *Server) openArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, ok := s.loadArticle(w, r)
	if !ok {
		return
	}

	link, res := s.rows.OpenLink(r.Context(), *article)
	if !res.Applied && !article.Read {
		log.Printf("[DEBUG] article %d not marked read", article.ID)
	}

	w.Header().Set("Referrer-Policy", "no-referrer")
	http.Redirect(w, r, link, http.StatusSeeOther)
}

// renderRow writes a single article row fragment
func (s *Server) renderRow(w http.ResponseWriter, a domain.Article) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "article-row.html", newArticleView(a, s.location)); err != nil {
		log.Printf("[ERROR] failed to render article row: %v", err)
	}
}

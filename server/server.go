package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newsfeed/pkg/config"
	"github.com/umputun/newsfeed/pkg/domain"
	"github.com/umputun/newsfeed/pkg/manifest"
	"github.com/umputun/newsfeed/pkg/row"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database

//go:embed templates/*.html
var templatesFS embed.FS

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	db       Database
	rows     *row.Row
	version  string
	debug    bool
	location *time.Location

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	templates  *template.Template
}

// Database is the record store used by the server
type Database interface {
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	ListArticles(ctx context.Context, limit int) ([]domain.Article, error)
	UpdateFields(ctx context.Context, id int64, fields domain.ArticleFields) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetPageSize() int
	GetStaticDir() string
	GetAppConfig() config.AppConfig
	Location() *time.Location
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		db:        db,
		version:   version,
		debug:     debug,
		location:  cfg.Location(),
		router:    routegroup.New(http.NewServeMux()),
		templates: template.Must(template.New("").ParseFS(templatesFS, "templates/*.html")),
	}
	s.rows = row.New(db, func(a domain.Article) {
		log.Printf("[DEBUG] article %d updated, score %d, read %t, saved %t, archived %t", a.ID, a.Score, a.Read, a.Saved, a.Archived)
	})

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsfeed", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.articlesHandler)
	s.router.HandleFunc("GET /articles/{id}/open", s.openArticleHandler)
	s.router.HandleFunc("GET /manifest.webmanifest", s.manifestHandler)
	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /rss/saved", s.rssHandler)

	if dir := s.config.GetStaticDir(); dir != "" {
		s.router.Handle("GET /icons/", http.StripPrefix("/icons/", http.FileServer(http.Dir(dir))))
	}

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /articles/{id}", s.getArticleHandler)
		r.HandleFunc("POST /articles/{id}/{action}", s.articleActionHandler)
	})
}

// manifestFor builds the manifest from the app settings
func manifestFor(app config.AppConfig) manifest.Manifest {
	return manifest.New(manifest.Params{Name: app.Name, ShortName: app.ShortName, BackgroundColor: app.BackgroundColor})
}

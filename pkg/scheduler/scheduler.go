package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsfeed/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . Parser
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/classifier.go -pkg mocks -skip-ensure -fmt goimports . Classifier

// Store is the part of the record store used by ingest
type Store interface {
	ArticleExists(ctx context.Context, link string) (bool, error)
	CreateArticle(ctx context.Context, article *domain.Article) error
}

// Parser fetches and parses a feed
type Parser interface {
	Parse(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

// Extractor returns the main text of an article page
type Extractor interface {
	Extract(ctx context.Context, link string) (string, error)
}

// Classifier scores and tags articles
type Classifier interface {
	Classify(ctx context.Context, articles []domain.Article) ([]domain.Classification, error)
}

// Scheduler periodically ingests configured feeds into the record store
type Scheduler struct {
	processor      *FeedProcessor
	updateInterval time.Duration
	wg             sync.WaitGroup
	cancel         context.CancelFunc
}

// Params defines scheduler dependencies and settings. Extractor and Classifier are optional.
type Params struct {
	Store      Store
	Parser     Parser
	Extractor  Extractor
	Classifier Classifier
	Feeds      []domain.Feed

	UpdateInterval time.Duration
	MaxWorkers     int
	RetryAttempts  int
	RetryDelay     time.Duration
}

// NewScheduler creates a new scheduler instance
func NewScheduler(p Params) *Scheduler {
	if p.UpdateInterval <= 0 {
		p.UpdateInterval = 30 * time.Minute
	}
	return &Scheduler{
		processor:      NewFeedProcessor(p),
		updateInterval: p.UpdateInterval,
	}
}

// Start runs the update loop in the background, the first update happens immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.feedUpdateWorker(ctx)

	lgr.Printf("[INFO] scheduler started with update interval %v, %d feeds", s.updateInterval, len(s.processor.feeds))
}

// Stop cancels the update loop and waits for it to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) feedUpdateWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	s.processor.UpdateAllFeeds(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.processor.UpdateAllFeeds(ctx)
		}
	}
}

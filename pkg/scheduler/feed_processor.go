package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsfeed/pkg/domain"
	"github.com/umputun/newsfeed/pkg/feed"
	"github.com/umputun/newsfeed/pkg/scoring"
)

// FeedProcessor turns new feed entries into articles. For each feed it parses the feed,
// skips links already stored, fills missing summaries from extracted page text,
// asks the classifier for a score and tags and creates the articles.
type FeedProcessor struct {
	store      Store
	parser     Parser
	extractor  Extractor
	classifier Classifier
	feeds      []domain.Feed

	maxWorkers    int
	retryAttempts int
	retryDelay    time.Duration
}

// NewFeedProcessor creates a new feed processor
func NewFeedProcessor(p Params) *FeedProcessor {
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = 5
	}
	if p.RetryAttempts <= 0 {
		p.RetryAttempts = 3
	}
	if p.RetryDelay <= 0 {
		p.RetryDelay = time.Second
	}
	return &FeedProcessor{
		store:         p.Store,
		parser:        p.Parser,
		extractor:     p.Extractor,
		classifier:    p.Classifier,
		feeds:         p.Feeds,
		maxWorkers:    p.MaxWorkers,
		retryAttempts: p.RetryAttempts,
		retryDelay:    p.RetryDelay,
	}
}

// UpdateAllFeeds processes all configured feeds concurrently and returns the number of created articles
func (fp *FeedProcessor) UpdateAllFeeds(ctx context.Context) int {
	lgr.Printf("[INFO] updating %d feeds", len(fp.feeds))

	var created atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fp.maxWorkers)

	for _, f := range fp.feeds {
		g.Go(func() error {
			n, err := fp.UpdateFeed(ctx, f)
			if err != nil {
				lgr.Printf("[WARN] failed to update feed %s: %v", f.URL, err)
			}
			created.Add(int64(n))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		lgr.Printf("[ERROR] feed update error: %v", err)
	}
	lgr.Printf("[INFO] feed update completed, %d new articles", created.Load())
	return int(created.Load())
}

// UpdateFeed ingests a single feed and returns the number of created articles
func (fp *FeedProcessor) UpdateFeed(ctx context.Context, f domain.Feed) (int, error) {
	lgr.Printf("[DEBUG] updating feed: %s", f.URL)

	var parsed *domain.ParsedFeed
	retrier := repeater.NewBackoff(fp.retryAttempts, fp.retryDelay, repeater.WithMaxDelay(30*time.Second))
	err := retrier.Do(ctx, func() error {
		var parseErr error
		parsed, parseErr = fp.parser.Parse(ctx, f.URL)
		return parseErr
	})
	if err != nil {
		return 0, fmt.Errorf("parse feed: %w", err)
	}

	articles, err := fp.newArticles(ctx, f, parsed)
	if err != nil {
		return 0, err
	}
	if len(articles) == 0 {
		return 0, nil
	}

	fp.fillSummaries(ctx, articles)
	fp.classify(ctx, articles)

	created := 0
	for i := range articles {
		if err := fp.store.CreateArticle(ctx, &articles[i]); err != nil {
			lgr.Printf("[WARN] failed to create article %s: %v", articles[i].Link, err)
			continue
		}
		created++
	}
	lgr.Printf("[DEBUG] feed %s: %d new articles", f.URL, created)
	return created, nil
}

// newArticles converts feed entries with unseen links into articles
func (fp *FeedProcessor) newArticles(ctx context.Context, f domain.Feed, parsed *domain.ParsedFeed) ([]domain.Article, error) {
	seen := make(map[string]bool, len(parsed.Items))
	var res []domain.Article
	for _, item := range parsed.Items {
		if item.Link == "" || seen[item.Link] {
			continue
		}
		seen[item.Link] = true

		exists, err := fp.store.ArticleExists(ctx, item.Link)
		if err != nil {
			return nil, fmt.Errorf("check article exists: %w", err)
		}
		if exists {
			continue
		}
		res = append(res, feed.ToArticle(item, parsed, f.Publication))
	}
	return res, nil
}

// fillSummaries sets summaries from extracted page text where the feed gave none
func (fp *FeedProcessor) fillSummaries(ctx context.Context, articles []domain.Article) {
	if fp.extractor == nil {
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fp.maxWorkers)
	for i := range articles {
		if articles[i].Summary != nil {
			continue
		}
		g.Go(func() error {
			text, err := fp.extractor.Extract(ctx, articles[i].Link)
			if err != nil {
				lgr.Printf("[DEBUG] no extracted content for %s: %v", articles[i].Link, err)
				return nil
			}
			articles[i].Summary = domain.StringPtr(text)
			return nil
		})
	}
	_ = g.Wait()
}

// classify applies machine scores and tags, articles without a verdict stay at score 0
func (fp *FeedProcessor) classify(ctx context.Context, articles []domain.Article) {
	if fp.classifier == nil {
		return
	}

	classifications, err := fp.classifier.Classify(ctx, articles)
	if err != nil {
		lgr.Printf("[WARN] failed to classify %d articles: %v", len(articles), err)
		return
	}

	byLink := make(map[string]domain.Classification, len(classifications))
	for _, c := range classifications {
		byLink[c.Link] = c
	}
	for i := range articles {
		c, ok := byLink[articles[i].Link]
		if !ok {
			continue
		}
		articles[i].Score = scoring.Nearest(c.Score)
		articles[i].Agent = domain.AgentMachine
		articles[i].AIScore2 = c.Score
		articles[i].TagsScope = c.TagsScope
		articles[i].TagsMood = c.TagsMood
		articles[i].TagsTopic = c.TagsTopic
	}
}

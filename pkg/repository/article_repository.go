package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsfeed/pkg/domain"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleRow is the article table record
type articleRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Link        string         `db:"link"`
	Publication string         `db:"publication"`
	Summary     sql.NullString `db:"summary"`
	PublishedAt time.Time      `db:"published_at"`
	Score       int            `db:"score"`
	Agent       string         `db:"agent"`
	AIScore2    float64        `db:"ai_score2"`
	Read        bool           `db:"read"`
	Saved       bool           `db:"saved"`
	Archived    bool           `db:"archived"`
	TagsScope   tags           `db:"tags_scope"`
	TagsMood    tags           `db:"tags_mood"`
	TagsTopic   tags           `db:"tags_topic"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// CreateArticle inserts a new article and sets its ID
func (r *ArticleRepository) CreateArticle(ctx context.Context, article *domain.Article) error {
	row := toArticleRow(article)
	query := `
		INSERT INTO article (
			title, link, publication, summary, published_at, score, agent, ai_score2,
			"read", saved, archived, tags_scope, tags_mood, tags_topic
		) VALUES (
			:title, :link, :publication, :summary, :published_at, :score, :agent, :ai_score2,
			:read, :saved, :archived, :tags_scope, :tags_mood, :tags_topic
		)`

	var id int64
	err := r.retrier().Do(ctx, func() error {
		res, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return noRetry(err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return noRetry(fmt.Errorf("get insert id: %w", err))
		}
		return nil
	}, errNoRetry)
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}

	article.ID = id
	return nil
}

// GetArticle retrieves an article by ID
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	var row articleRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM article WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return row.toDomain(), nil
}

// ListArticles returns the most recent non-archived articles
func (r *ArticleRepository) ListArticles(ctx context.Context, limit int) ([]domain.Article, error) {
	query := `
		SELECT * FROM article
		WHERE archived = 0
		ORDER BY published_at DESC, id DESC
		LIMIT ?`

	var rows []articleRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	res := make([]domain.Article, 0, len(rows))
	for i := range rows {
		res = append(res, *rows[i].toDomain())
	}
	return res, nil
}

// ArticleExists checks if an article with the given link is already stored
func (r *ArticleRepository) ArticleExists(ctx context.Context, link string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM article WHERE link = ?)`, link); err != nil {
		return false, fmt.Errorf("check article exists: %w", err)
	}
	return exists, nil
}

// UpdateFields sets the non-nil fields of an article in a single statement
func (r *ArticleRepository) UpdateFields(ctx context.Context, id int64, fields domain.ArticleFields) error {
	if fields.IsEmpty() {
		return nil
	}

	var sets []string
	var args []any
	if fields.Score != nil {
		sets, args = append(sets, "score = ?"), append(args, *fields.Score)
	}
	if fields.Agent != nil {
		sets, args = append(sets, "agent = ?"), append(args, *fields.Agent)
	}
	if fields.Read != nil {
		sets, args = append(sets, `"read" = ?`), append(args, *fields.Read)
	}
	if fields.Saved != nil {
		sets, args = append(sets, "saved = ?"), append(args, *fields.Saved)
	}
	if fields.Archived != nil {
		sets, args = append(sets, "archived = ?"), append(args, *fields.Archived)
	}
	query := "UPDATE article SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	err := r.retrier().Do(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return noRetry(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return noRetry(fmt.Errorf("get affected rows: %w", err))
		}
		if affected == 0 {
			return noRetry(ErrNotFound)
		}
		return nil
	}, errNoRetry)
	if err != nil {
		return fmt.Errorf("update article %d: %w", id, err)
	}
	return nil
}

// retrier retries writes rejected by a busy database
func (r *ArticleRepository) retrier() *repeater.Repeater {
	return repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
}

func toArticleRow(a *domain.Article) *articleRow {
	row := &articleRow{
		ID:          a.ID,
		Title:       a.Title,
		Link:        a.Link,
		Publication: a.Publication,
		PublishedAt: a.PublishedAt,
		Score:       a.Score,
		Agent:       a.Agent,
		AIScore2:    a.AIScore2,
		Read:        a.Read,
		Saved:       a.Saved,
		Archived:    a.Archived,
		TagsScope:   tags(a.TagsScope),
		TagsMood:    tags(a.TagsMood),
		TagsTopic:   tags(a.TagsTopic),
	}
	if a.Summary != nil {
		row.Summary = sql.NullString{String: *a.Summary, Valid: true}
	}
	return row
}

func (r *articleRow) toDomain() *domain.Article {
	a := &domain.Article{
		ID:          r.ID,
		Title:       r.Title,
		Link:        r.Link,
		Publication: r.Publication,
		PublishedAt: r.PublishedAt,
		Score:       r.Score,
		Agent:       r.Agent,
		AIScore2:    r.AIScore2,
		Read:        r.Read,
		Saved:       r.Saved,
		Archived:    r.Archived,
		TagsScope:   []string(r.TagsScope),
		TagsMood:    []string(r.TagsMood),
		TagsTopic:   []string(r.TagsTopic),
	}
	if r.Summary.Valid {
		a.Summary = domain.StringPtr(r.Summary.String)
	}
	return a
}

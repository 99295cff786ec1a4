// Package row implements the actions of a single article row: score stepping, read, save and
// archive toggles, and opening the article link. Every action sends one partial update to the
// record store and reports the outcome to the caller, who owns applying it.
package row

import (
	"context"
	"errors"

	"github.com/umputun/newsfeed/pkg/domain"
	"github.com/umputun/newsfeed/pkg/scoring"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// ErrUnknownAction returned by Dispatch for an action name it doesn't handle
var ErrUnknownAction = errors.New("unknown action")

// Store is the narrow record store interface rows depend on
type Store interface {
	UpdateFields(ctx context.Context, id int64, fields domain.ArticleFields) error
}

// Action names a row action
type Action string

// enum of row actions
const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionRead    Action = "read"
	ActionArchive Action = "archive"
	ActionSave    Action = "save"
)

// ParseAction converts an action name to Action, ErrUnknownAction for names not handled by Dispatch
func ParseAction(name string) (Action, error) {
	switch a := Action(name); a {
	case ActionUp, ActionDown, ActionRead, ActionArchive, ActionSave:
		return a, nil
	default:
		return "", ErrUnknownAction
	}
}

// Result is the outcome of a row action. Article is always safe to render: it carries the
// applied fields when the store accepted the update and the untouched input otherwise.
type Result struct {
	Applied bool
	Fields  domain.ArticleFields
	Article domain.Article
}

// Row dispatches article actions to the record store
type Row struct {
	store    Store
	onUpdate func(domain.Article)
}

// New makes a Row. onUpdate is optional and called synchronously after each accepted update.
func New(store Store, onUpdate func(domain.Article)) *Row {
	return &Row{store: store, onUpdate: onUpdate}
}

// Dispatch runs the named action
func (r *Row) Dispatch(ctx context.Context, article domain.Article, action Action) (Result, error) {
	switch action {
	case ActionUp:
		return r.ScoreUp(ctx, article), nil
	case ActionDown:
		return r.ScoreDown(ctx, article), nil
	case ActionRead:
		return r.MarkRead(ctx, article), nil
	case ActionArchive:
		return r.ToggleArchive(ctx, article), nil
	case ActionSave:
		return r.ToggleSave(ctx, article), nil
	default:
		return Result{Article: article}, ErrUnknownAction
	}
}

// ScoreUp moves the score one ladder step up and marks it as set by the user
func (r *Row) ScoreUp(ctx context.Context, article domain.Article) Result {
	return r.score(ctx, article, scoring.Up)
}

// ScoreDown moves the score one ladder step down and marks it as set by the user
func (r *Row) ScoreDown(ctx context.Context, article domain.Article) Result {
	return r.score(ctx, article, scoring.Down)
}

func (r *Row) score(ctx context.Context, article domain.Article, dir scoring.Direction) Result {
	score, agent := scoring.Next(article.Score, dir), domain.AgentUser
	return r.update(ctx, article, domain.ArticleFields{Score: &score, Agent: &agent})
}

// MarkRead marks an unread article as read. It is one way: an already read article
// is returned as is without touching the store.
func (r *Row) MarkRead(ctx context.Context, article domain.Article) Result {
	if article.Read {
		return Result{Article: article}
	}
	read := true
	return r.update(ctx, article, domain.ArticleFields{Read: &read})
}

// ToggleArchive flips the archived flag
func (r *Row) ToggleArchive(ctx context.Context, article domain.Article) Result {
	archived := !article.Archived
	return r.update(ctx, article, domain.ArticleFields{Archived: &archived})
}

// ToggleSave flips the saved flag
func (r *Row) ToggleSave(ctx context.Context, article domain.Article) Result {
	saved := !article.Saved
	return r.update(ctx, article, domain.ArticleFields{Saved: &saved})
}

// OpenLink returns the link to open in a new browsing context and marks the article read
// as a side effect. The link is returned whether or not the read update went through.
func (r *Row) OpenLink(ctx context.Context, article domain.Article) (string, Result) {
	return article.Link, r.MarkRead(ctx, article)
}

// update sends fields to the store. On failure the article is returned unchanged
// and the callback is not called.
func (r *Row) update(ctx context.Context, article domain.Article, fields domain.ArticleFields) Result {
	if err := r.store.UpdateFields(ctx, article.ID, fields); err != nil {
		return Result{Fields: fields, Article: article}
	}

	updated := article.Apply(fields)
	if r.onUpdate != nil {
		r.onUpdate(updated)
	}
	return Result{Applied: true, Fields: fields, Article: updated}
}

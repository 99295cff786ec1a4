package domain

import (
	"errors"
	"time"
)

// ErrNotFound returned by record stores when no article matches the requested id
var ErrNotFound = errors.New("article not found")

// agent values recorded next to the score
const (
	AgentUser    = "USER"
	AgentMachine = "AI"
)

// Article represents a news article record owned by the record store
type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Publication string    `json:"publication"`
	Summary     *string   `json:"summary"`
	PublishedAt time.Time `json:"published_at"`
	Score       int       `json:"score"`
	Agent       string    `json:"agent"`
	AIScore2    float64   `json:"ai_score2"`
	Read        bool      `json:"read"`
	Saved       bool      `json:"saved"`
	Archived    bool      `json:"archived"`
	TagsScope   []string  `json:"tags_scope"`
	TagsMood    []string  `json:"tags_mood"`
	TagsTopic   []string  `json:"tags_topic"`
}

// ArticleFields is a partial article update, nil fields are left as is
type ArticleFields struct {
	Score    *int    `json:"score,omitempty"`
	Agent    *string `json:"agent,omitempty"`
	Read     *bool   `json:"read,omitempty"`
	Saved    *bool   `json:"saved,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}

// IsEmpty reports whether no field is set
func (f ArticleFields) IsEmpty() bool {
	return f.Score == nil && f.Agent == nil && f.Read == nil && f.Saved == nil && f.Archived == nil
}

// Apply returns a copy of the article with the set fields replaced
func (a Article) Apply(f ArticleFields) Article {
	if f.Score != nil {
		a.Score = *f.Score
	}
	if f.Agent != nil {
		a.Agent = *f.Agent
	}
	if f.Read != nil {
		a.Read = *f.Read
	}
	if f.Saved != nil {
		a.Saved = *f.Saved
	}
	if f.Archived != nil {
		a.Archived = *f.Archived
	}
	return a
}

// IsUserScored reports whether the score was last set by the user
func (a Article) IsUserScored() bool {
	return a.Agent == AgentUser
}

// SummaryText returns the summary or an empty string for a null summary
func (a Article) SummaryText() string {
	if a.Summary == nil {
		return ""
	}
	return *a.Summary
}

// StringPtr returns a pointer to s, handy for nullable summaries
func StringPtr(s string) *string { return &s }

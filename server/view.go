package server

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/newsfeed/pkg/domain"
)

const (
	summaryLimit = 5000
	dateLayout   = "Mon 2 Jan, 15:04"
)

// mood tag colors, anything else gets moodDefault
const (
	moodUpbeat  = "#800080"
	moodHeavy   = "#000000"
	moodDefault = "#99ccff"
)

// articleView is the template data for one article row
type articleView struct {
	ID           int64
	Title        string
	Publication  string
	Date         string
	AIScore      string
	UserScore    string // set only when the score came from the user
	Summary      string
	OpenURL      string
	MarkReadURL  string // set only for unread articles, re-renders the row when the link is followed
	RowClass     string
	ThumbsUp     string
	ThumbsDown   string
	SaveClass    string
	ArchiveClass string
	Tags         []tagView
}

// tagView is one rendered tag, Style is set for mood tags only
type tagView struct {
	Name  string
	Class string
	Style template.CSS
}

// newArticleView prepares an article for rendering
func newArticleView(a domain.Article, loc *time.Location) articleView {
	v := articleView{
		ID:           a.ID,
		Title:        a.Title,
		Publication:  a.Publication,
		Date:         formatDate(a.PublishedAt, loc),
		AIScore:      strconv.FormatFloat(a.AIScore2, 'f', -1, 64),
		Summary:      shortSummary(a.Summary),
		OpenURL:      fmt.Sprintf("/articles/%d/open", a.ID),
		RowClass:     "article card col-1",
		ThumbsUp:     "thumbs-up",
		ThumbsDown:   "thumbs-down",
		SaveClass:    "save",
		ArchiveClass: "archive",
		Tags:         tagViews(a),
	}
	if a.IsUserScored() {
		v.UserScore = strconv.Itoa(a.Score)
	}
	if a.Read {
		v.RowClass += " read"
	} else {
		v.MarkReadURL = fmt.Sprintf("/api/v1/articles/%d/read", a.ID)
	}
	if c := thumbsUpClass(a); c != "" {
		v.ThumbsUp += " " + c
	}
	if c := thumbsDownClass(a); c != "" {
		v.ThumbsDown += " " + c
	}
	if a.Saved {
		v.SaveClass += " saved"
	}
	if a.Archived {
		v.ArchiveClass += " archived"
	}
	return v
}

// formatDate renders a publication time as "Mon 2 Jan, 15:04" in the given zone
func formatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateLayout)
}

// shortSummary cuts summaries longer than summaryLimit characters and marks the cut with "..."
func shortSummary(summary *string) string {
	if summary == nil {
		return ""
	}
	runes := []rune(*summary)
	if len(runes) <= summaryLimit {
		return *summary
	}
	return string(runes[:summaryLimit]) + "..."
}

func thumbsUpClass(a domain.Article) string {
	switch {
	case a.Score > 0 && a.IsUserScored():
		return "thumbs-up-active"
	case a.Score > 0:
		return "thumbs-up-active-light"
	}
	return ""
}

func thumbsDownClass(a domain.Article) string {
	switch {
	case a.Score < 0 && a.IsUserScored():
		return "thumbs-down-active"
	case a.Score < 0:
		return "thumbs-down-active-light"
	}
	return ""
}

// moodColor maps a mood tag to its background color, case-insensitive
func moodColor(mood string) string {
	switch strings.ToLower(mood) {
	case "upbeat":
		return moodUpbeat
	case "heavy":
		return moodHeavy
	default:
		return moodDefault
	}
}

// tagViews lists scope, then mood, then topic tags
func tagViews(a domain.Article) []tagView {
	res := make([]tagView, 0, len(a.TagsScope)+len(a.TagsMood)+len(a.TagsTopic))
	for _, t := range a.TagsScope {
		res = append(res, tagView{Name: t, Class: "tag tag-scope"})
	}
	for _, t := range a.TagsMood {
		res = append(res, tagView{Name: t, Class: "tag", Style: template.CSS("background-color: " + moodColor(t))})
	}
	for _, t := range a.TagsTopic {
		res = append(res, tagView{Name: t, Class: "tag tag-topic"})
	}
	return res
}

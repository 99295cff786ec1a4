package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/newsfeed/pkg/domain"
)

// rss is an RSS 2.0 document with an atom self link
type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	AtomLink      atomLink  `xml:"atom:link"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	Description string   `xml:"description,omitempty"`
	PubDate     string   `xml:"pubDate"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// Generator renders article lists as RSS feeds
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator, baseURL is used for channel and self links
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateRSS creates an RSS 2.0 feed from articles. Item titles carry the score,
// categories carry all tags.
func (g *Generator) GenerateRSS(articles []domain.Article, title, selfPath string) (string, error) {
	items := make([]rssItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, g.toRSSItem(a))
	}

	doc := rss{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("%s, %d articles", title, len(articles)),
			AtomLink:      atomLink{Href: g.baseURL + selfPath, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func (g *Generator) toRSSItem(a domain.Article) rssItem {
	var categories []string
	categories = append(categories, a.TagsScope...)
	categories = append(categories, a.TagsMood...)
	categories = append(categories, a.TagsTopic...)

	return rssItem{
		Title:       fmt.Sprintf("[%s] %s", scoreLabel(a.Score), a.Title),
		Link:        a.Link,
		GUID:        rssGUID{Value: a.Link, IsPermaLink: true},
		Description: a.SummaryText(),
		PubDate:     a.PublishedAt.Format(time.RFC1123Z),
		Categories:  categories,
	}
}

// scoreLabel shows positive scores with a plus sign, zero as is
func scoreLabel(score int) string {
	if score > 0 {
		return fmt.Sprintf("+%d", score)
	}
	return fmt.Sprintf("%d", score)
}

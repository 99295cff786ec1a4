package feed

import (
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/publicsuffix"

	"github.com/umputun/newsfeed/pkg/domain"
)

// stripPolicy removes all markup from feed descriptions
var stripPolicy = bluemonday.StrictPolicy()

// ToArticle converts a parsed feed item into a new, unscored article.
// Publication falls back to the feed title, then to the registrable domain of the item link.
func ToArticle(item domain.ParsedItem, feed *domain.ParsedFeed, publication string) domain.Article {
	if publication == "" && feed != nil {
		publication = strings.TrimSpace(feed.Title)
	}
	if publication == "" {
		publication = PublicationFromLink(item.Link)
	}

	published := item.Published
	if published.IsZero() {
		published = time.Now()
	}

	article := domain.Article{
		Title:       strings.TrimSpace(CleanText(item.Title)),
		Link:        item.Link,
		Publication: publication,
		PublishedAt: published.UTC(),
		Agent:       domain.AgentMachine,
	}

	summary := CleanText(item.Description)
	if summary == "" {
		summary = CleanText(item.Content)
	}
	if summary != "" {
		article.Summary = domain.StringPtr(summary)
	}
	return article
}

// CleanText strips HTML markup, unescapes entities and collapses whitespace
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// PublicationFromLink derives a publication name from the link host, e.g. "bbc.co.uk"
func PublicationFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	domainName, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domainName
}

package domain

import "time"

// Feed is a configured news source used by ingest
type Feed struct {
	URL         string
	Publication string
}

// ParsedFeed represents a fetched and parsed feed
type ParsedFeed struct {
	Title string
	Link  string
	Items []ParsedItem
}

// ParsedItem represents a single entry of a parsed feed
type ParsedItem struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Content     string
	Author      string
	Published   time.Time
}

// Classification is the machine agent's verdict on an article
type Classification struct {
	Link      string
	Score     float64
	TagsScope []string
	TagsMood  []string
	TagsTopic []string
}

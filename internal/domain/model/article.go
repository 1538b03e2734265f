package model

import (
	"sort"
	"time"
)

// Article is a single news story returned by the search endpoint.
// URL is the identity key of an article within a session.
type Article struct {
	Title       string
	Description string
	SourceName  string
	Author      string
	URL         string
	ImageURL    string
	PublishedAt time.Time
}

// HasImage reports whether the article carries a thumbnail.
func (a Article) HasImage() bool {
	return a.ImageURL != ""
}

// SortNewestFirst orders articles by publication time, newest first.
// Articles sharing a timestamp keep their relative order.
func SortNewestFirst(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

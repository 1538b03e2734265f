package model

import "strings"

// Topic is a fixed news-search query shown as a card.
type Topic string

// DefaultTopics is the topic set used when none is configured.
var DefaultTopics = []Topic{
	"Trump tariffs",
	"Russia earthquake",
	"MH370",
	"Air India 171 Crash",
}

// ParseTopics splits a comma separated list, dropping blanks and duplicates.
func ParseTopics(raw string) []Topic {
	seen := make(map[Topic]struct{})
	topics := make([]Topic, 0)
	for _, part := range strings.Split(raw, ",") {
		topic := Topic(strings.TrimSpace(part))
		if topic == "" {
			continue
		}
		if _, exists := seen[topic]; exists {
			continue
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}
	return topics
}

// TopicFeed holds the articles of one topic, newest first.
type TopicFeed struct {
	Topic    Topic
	Articles []Article
}

// NewTopicFeed copies and sorts the given articles.
func NewTopicFeed(topic Topic, articles []Article) TopicFeed {
	sorted := make([]Article, len(articles))
	copy(sorted, articles)
	SortNewestFirst(sorted)
	return TopicFeed{Topic: topic, Articles: sorted}
}

// Latest returns the article with the greatest publication time, or nil.
func (f TopicFeed) Latest() *Article {
	if len(f.Articles) == 0 {
		return nil
	}
	latest := f.Articles[0]
	return &latest
}

// Previous returns every article except the latest one.
func (f TopicFeed) Previous() []Article {
	if len(f.Articles) <= 1 {
		return nil
	}
	return f.Articles[1:]
}

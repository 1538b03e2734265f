package model

import "time"

// Snapshot is the merged result of fetching every topic once.
type Snapshot struct {
	Topics    []Topic
	Feeds     map[Topic]TopicFeed
	Error     string
	FetchedAt time.Time
}

// Feed returns the feed of a topic. Unknown or failed topics yield an empty feed.
func (s *Snapshot) Feed(topic Topic) TopicFeed {
	if s == nil {
		return TopicFeed{Topic: topic}
	}
	if feed, ok := s.Feeds[topic]; ok {
		return feed
	}
	return TopicFeed{Topic: topic}
}

// PreviousCount is the number of carousel entries for a topic.
func (s *Snapshot) PreviousCount(topic Topic) int {
	return len(s.Feed(topic).Previous())
}

// Contains reports whether any topic feed holds an article with the URL.
func (s *Snapshot) Contains(url string) bool {
	if s == nil {
		return false
	}
	for _, feed := range s.Feeds {
		for _, article := range feed.Articles {
			if article.URL == url {
				return true
			}
		}
	}
	return false
}

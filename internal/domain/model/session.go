package model

import (
	"maps"
	"slices"
	"time"
)

// Session is the UI state of one browser.
type Session struct {
	ID       string
	Visited  VisitedSet
	Carousel map[Topic]int
	AutoPlay bool
	Settings Settings
	Tracked  map[Topic]bool

	// SearchResults holds the article URLs of the last search.
	SearchResults []string
	UpdatedAt     time.Time
}

// NewSession returns a session with default preferences.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Visited:   make(VisitedSet),
		Carousel:  make(map[Topic]int),
		Settings:  DefaultSettings(),
		Tracked:   make(map[Topic]bool),
		UpdatedAt: now,
	}
}

// CarouselFor returns the carousel of a topic bounded by the given article count.
func (s *Session) CarouselFor(topic Topic, count int) Carousel {
	return Carousel{Index: s.Carousel[topic], Count: count}.Clamp()
}

// SetCarousel stores a carousel position for a topic.
func (s *Session) SetCarousel(topic Topic, c Carousel) {
	if s.Carousel == nil {
		s.Carousel = make(map[Topic]int)
	}
	s.Carousel[topic] = c.Index
}

// Visit marks a URL visited and reports whether it was new.
func (s *Session) Visit(url string) bool {
	if s.Visited == nil {
		s.Visited = make(VisitedSet)
	}
	return s.Visited.Add(url)
}

// Offered reports whether the URL belongs to an article the session was shown,
// either in the snapshot or in its last search.
func (s *Session) Offered(snapshot *Snapshot, url string) bool {
	return snapshot.Contains(url) || slices.Contains(s.SearchResults, url)
}

// ToggleTracked flips the tracked flag of a topic and returns the new value.
func (s *Session) ToggleTracked(topic Topic) bool {
	if s.Tracked == nil {
		s.Tracked = make(map[Topic]bool)
	}
	if s.Tracked[topic] {
		delete(s.Tracked, topic)
		return false
	}
	s.Tracked[topic] = true
	return true
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Visited = maps.Clone(s.Visited)
	clone.Carousel = maps.Clone(s.Carousel)
	clone.Tracked = maps.Clone(s.Tracked)
	clone.Settings.Sources = slices.Clone(s.Settings.Sources)
	clone.Settings.Verticals = slices.Clone(s.Settings.Verticals)
	clone.SearchResults = slices.Clone(s.SearchResults)
	if clone.Visited == nil {
		clone.Visited = make(VisitedSet)
	}
	if clone.Carousel == nil {
		clone.Carousel = make(map[Topic]int)
	}
	if clone.Tracked == nil {
		clone.Tracked = make(map[Topic]bool)
	}
	return &clone
}

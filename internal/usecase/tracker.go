package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"newstracker/internal/domain/model"
	"newstracker/internal/domain/ports"
)

// Tracker implements the per-session operations behind the pages: carousel
// paging, auto-play, visited articles, settings and tracked topics.
type Tracker struct {
	feed      *Feed
	sessions  ports.SessionStore
	publisher ports.CarouselPublisher
	logger    ports.Logger
}

// NewTracker constructs a Tracker use case. publisher may be nil.
func NewTracker(feed *Feed, sessions ports.SessionStore, publisher ports.CarouselPublisher, logger ports.Logger) *Tracker {
	return &Tracker{
		feed:      feed,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
	}
}

func (t *Tracker) session(ctx context.Context, id string) (*model.Session, error) {
	s, err := t.sessions.Get(ctx, id)
	if errors.Is(err, model.ErrSessionNotFound) {
		return model.NewSession(id, t.feed.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

// Home builds the home page for a session.
func (t *Tracker) Home(ctx context.Context, sessionID string) (HomeView, error) {
	s, err := t.session(ctx, sessionID)
	if err != nil {
		return HomeView{}, err
	}

	snapshot := t.feed.Current()
	view := HomeView{
		AutoPlay: s.AutoPlay,
		Loading:  snapshot == nil,
		Theme:    s.Settings.Theme,
	}
	if snapshot != nil {
		view.Error = snapshot.Error
		view.FetchedAt = snapshot.FetchedAt
	}

	for _, topic := range t.feed.Topics() {
		feed := snapshot.Feed(topic)
		previous := feed.Previous()
		carousel := s.CarouselFor(topic, len(previous))

		card := TopicCard{
			Topic:    topic,
			Latest:   feed.Latest(),
			Previous: previous,
			Carousel: carousel,
			Tracked:  s.Tracked[topic],
		}
		if len(previous) > 0 {
			current := previous[carousel.Index]
			card.Current = &current
			card.CurrentVisited = s.Visited.Has(current.URL)
		}
		view.Cards = append(view.Cards, card)
	}
	return view, nil
}

func (t *Tracker) move(ctx context.Context, sessionID string, topic model.Topic, step func(model.Carousel) model.Carousel) (model.CarouselPosition, error) {
	if !t.feed.HasTopic(topic) {
		return model.CarouselPosition{}, fmt.Errorf("%w: %q", model.ErrUnknownTopic, topic)
	}
	count := t.feed.Current().PreviousCount(topic)

	var moved model.Carousel
	_, err := t.sessions.Update(ctx, sessionID, func(s *model.Session) error {
		moved = step(s.CarouselFor(topic, count))
		s.SetCarousel(topic, moved)
		return nil
	})
	if err != nil {
		return model.CarouselPosition{}, fmt.Errorf("update carousel: %w", err)
	}
	return model.CarouselPosition{Topic: topic, Index: moved.Index, Count: moved.Count}, nil
}

// Next pages a topic's carousel forward.
func (t *Tracker) Next(ctx context.Context, sessionID string, topic model.Topic) (model.CarouselPosition, error) {
	return t.move(ctx, sessionID, topic, model.Carousel.Next)
}

// Prev pages a topic's carousel back.
func (t *Tracker) Prev(ctx context.Context, sessionID string, topic model.Topic) (model.CarouselPosition, error) {
	return t.move(ctx, sessionID, topic, model.Carousel.Prev)
}

// Swipe pages a topic's carousel from a touch gesture's start and end positions.
func (t *Tracker) Swipe(ctx context.Context, sessionID string, topic model.Topic, start, end *float64) (model.CarouselPosition, error) {
	return t.move(ctx, sessionID, topic, func(c model.Carousel) model.Carousel {
		return c.Swipe(start, end)
	})
}

// SetAutoPlay switches auto-play on or off for a session.
func (t *Tracker) SetAutoPlay(ctx context.Context, sessionID string, enabled bool) error {
	_, err := t.sessions.Update(ctx, sessionID, func(s *model.Session) error {
		s.AutoPlay = enabled
		return nil
	})
	if err != nil {
		return fmt.Errorf("update auto-play: %w", err)
	}
	t.logger.Debug(ctx, "auto-play switched", "session", sessionID, "enabled", enabled)
	return nil
}

// Tick advances the carousels of every auto-play session by one step and
// pushes the new positions. It does nothing before the first snapshot.
func (t *Tracker) Tick(ctx context.Context) error {
	snapshot := t.feed.Current()
	if snapshot == nil {
		return nil
	}

	ids, err := t.sessions.AutoPlaySessions(ctx)
	if err != nil {
		return fmt.Errorf("list auto-play sessions: %w", err)
	}

	topics := t.feed.Topics()
	for _, id := range ids {
		var positions []model.CarouselPosition
		_, err := t.sessions.Update(ctx, id, func(s *model.Session) error {
			positions = positions[:0]
			if !s.AutoPlay {
				return nil
			}
			for _, topic := range topics {
				c := s.CarouselFor(topic, snapshot.PreviousCount(topic)).AutoAdvance()
				s.SetCarousel(topic, c)
				positions = append(positions, model.CarouselPosition{Topic: topic, Index: c.Index, Count: c.Count})
			}
			return nil
		})
		if err != nil {
			t.logger.Error(ctx, "auto-play step failed", "session", id, "error", err)
			continue
		}
		if t.publisher == nil || len(positions) == 0 {
			continue
		}
		if err := t.publisher.PublishCarousel(ctx, id, positions); err != nil {
			t.logger.Error(ctx, "failed to publish carousel", "session", id, "error", err)
		}
	}
	return nil
}

// Visit marks an article URL as opened. Only articles of the current snapshot
// or of the session's last search are accepted. Visiting the same URL again
// leaves the set unchanged.
func (t *Tracker) Visit(ctx context.Context, sessionID, articleURL string) (VisitResult, error) {
	articleURL = strings.TrimSpace(articleURL)
	if err := validateArticleURL(articleURL); err != nil {
		return VisitResult{}, err
	}

	snapshot := t.feed.Current()
	var result VisitResult
	_, err := t.sessions.Update(ctx, sessionID, func(s *model.Session) error {
		if !s.Offered(snapshot, articleURL) {
			return fmt.Errorf("%w: %q is not a listed article", model.ErrInvalidURL, articleURL)
		}
		result.Added = s.Visit(articleURL)
		result.Total = len(s.Visited)
		return nil
	})
	if errors.Is(err, model.ErrInvalidURL) {
		return VisitResult{}, err
	}
	if err != nil {
		return VisitResult{}, fmt.Errorf("mark visited: %w", err)
	}
	return result, nil
}

// Visited lists the URLs a session opened.
func (t *Tracker) Visited(ctx context.Context, sessionID string) ([]string, error) {
	s, err := t.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.Visited.URLs(), nil
}

// Settings returns a session's preferences.
func (t *Tracker) Settings(ctx context.Context, sessionID string) (model.Settings, error) {
	s, err := t.session(ctx, sessionID)
	if err != nil {
		return model.Settings{}, err
	}
	return s.Settings, nil
}

// SaveSettings validates and stores a session's preferences.
func (t *Tracker) SaveSettings(ctx context.Context, sessionID string, settings model.Settings) (model.Settings, error) {
	if err := settings.Validate(); err != nil {
		return model.Settings{}, err
	}
	settings = settings.Normalize()

	_, err := t.sessions.Update(ctx, sessionID, func(s *model.Session) error {
		s.Settings = settings
		return nil
	})
	if err != nil {
		return model.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

// ToggleTrack flips whether a topic is tracked on the bookmarks page.
func (t *Tracker) ToggleTrack(ctx context.Context, sessionID string, topic model.Topic) (bool, error) {
	if !t.feed.HasTopic(topic) {
		return false, fmt.Errorf("%w: %q", model.ErrUnknownTopic, topic)
	}

	var tracked bool
	_, err := t.sessions.Update(ctx, sessionID, func(s *model.Session) error {
		tracked = s.ToggleTracked(topic)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("toggle track: %w", err)
	}
	return tracked, nil
}

// Space builds the bookmarks page for a session.
func (t *Tracker) Space(ctx context.Context, sessionID string) (SpaceView, error) {
	s, err := t.session(ctx, sessionID)
	if err != nil {
		return SpaceView{}, err
	}

	view := SpaceView{Theme: s.Settings.Theme}
	for _, topic := range t.feed.Topics() {
		view.Cards = append(view.Cards, SpaceCard{Topic: topic, Tracked: s.Tracked[topic]})
	}
	return view, nil
}

// Search runs a free-text article search and remembers the result URLs in
// the session so they can be visited.
func (t *Tracker) Search(ctx context.Context, sessionID, query string) ([]model.Article, error) {
	articles, err := t.feed.Search(ctx, query)
	if err != nil || len(articles) == 0 {
		return articles, err
	}

	urls := make([]string, 0, len(articles))
	for _, a := range articles {
		urls = append(urls, a.URL)
	}
	_, err = t.sessions.Update(ctx, sessionID, func(s *model.Session) error {
		s.SearchResults = urls
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store search results: %w", err)
	}
	return articles, nil
}

// Theme returns the colour scheme of a session, falling back to light.
func (t *Tracker) Theme(ctx context.Context, sessionID string) model.Theme {
	s, err := t.session(ctx, sessionID)
	if err != nil {
		return model.ThemeLight
	}
	return s.Settings.Theme
}

func validateArticleURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty", model.ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", model.ErrInvalidURL, raw)
	}
	return nil
}

package usecase

import (
	"time"

	"newstracker/internal/domain/model"
)

// TopicCard is everything the home page shows for one topic.
type TopicCard struct {
	Topic          model.Topic
	Latest         *model.Article
	Previous       []model.Article
	Current        *model.Article
	CurrentVisited bool
	Carousel       model.Carousel
	Tracked        bool
}

// Position is the 1-based position of the current past article.
func (c TopicCard) Position() int {
	return c.Carousel.Index + 1
}

// HomeView is the state of the home page for one session.
type HomeView struct {
	Cards     []TopicCard
	AutoPlay  bool
	Loading   bool
	Error     string
	FetchedAt time.Time
	Theme     model.Theme
}

// SpaceCard is one topic on the bookmarks page.
type SpaceCard struct {
	Topic   model.Topic
	Tracked bool
}

// SpaceView is the state of the bookmarks page.
type SpaceView struct {
	Cards []SpaceCard
	Theme model.Theme
}

// VisitResult reports the outcome of marking an article visited.
type VisitResult struct {
	Added bool
	Total int
}

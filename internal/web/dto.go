package web

import (
	"time"

	"newstracker/internal/domain/model"
	"newstracker/internal/usecase"
)

type ArticleResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Author      string `json:"author,omitempty"`
	URL         string `json:"url"`
	ImageURL    string `json:"imageUrl,omitempty"`
	PublishedAt string `json:"publishedAt"`
}

type CarouselResponse struct {
	Topic    string `json:"topic"`
	Index    int    `json:"index"`
	Count    int    `json:"count"`
	Position int    `json:"position"`
	CanPrev  bool   `json:"canPrev"`
	CanNext  bool   `json:"canNext"`
	Paged    bool   `json:"paged"`
}

type TopicResponse struct {
	Topic          string            `json:"topic"`
	Latest         *ArticleResponse  `json:"latest"`
	Previous       []ArticleResponse `json:"previous"`
	Carousel       CarouselResponse  `json:"carousel"`
	CurrentVisited bool              `json:"currentVisited"`
	Tracked        bool              `json:"tracked"`
}

type FeedResponse struct {
	AutoPlay  bool            `json:"autoPlay"`
	Loading   bool            `json:"loading"`
	Error     string          `json:"error,omitempty"`
	FetchedAt string          `json:"fetchedAt,omitempty"`
	Topics    []TopicResponse `json:"topics"`
}

type SettingsRequest struct {
	Sources   []string `json:"sources"`
	Verticals []string `json:"verticals"`
	Theme     string   `json:"theme" binding:"required"`
}

type SettingsResponse struct {
	Sources   []string `json:"sources"`
	Verticals []string `json:"verticals"`
	Theme     string   `json:"theme"`
}

type SwipeRequest struct {
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

type AutoPlayRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type VisitRequest struct {
	URL string `json:"url" binding:"required"`
}

type VisitResponse struct {
	Added bool `json:"added"`
	Total int  `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toArticleResponse(a model.Article) ArticleResponse {
	res := ArticleResponse{
		Title:       a.Title,
		Description: a.Description,
		Source:      a.SourceName,
		Author:      a.Author,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
	}
	if !a.PublishedAt.IsZero() {
		res.PublishedAt = a.PublishedAt.UTC().Format(time.RFC3339)
	}
	return res
}

func toArticleResponses(articles []model.Article) []ArticleResponse {
	res := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, toArticleResponse(a))
	}
	return res
}

func toCarouselResponse(topic model.Topic, c model.Carousel) CarouselResponse {
	return CarouselResponse{
		Topic:    string(topic),
		Index:    c.Index,
		Count:    c.Count,
		Position: c.Index + 1,
		CanPrev:  c.CanPrev(),
		CanNext:  c.CanNext(),
		Paged:    c.Paged(),
	}
}

func toFeedResponse(view usecase.HomeView) FeedResponse {
	res := FeedResponse{
		AutoPlay: view.AutoPlay,
		Loading:  view.Loading,
		Error:    view.Error,
		Topics:   make([]TopicResponse, 0, len(view.Cards)),
	}
	if !view.FetchedAt.IsZero() {
		res.FetchedAt = view.FetchedAt.UTC().Format(time.RFC3339)
	}
	for _, card := range view.Cards {
		topic := TopicResponse{
			Topic:          string(card.Topic),
			Previous:       toArticleResponses(card.Previous),
			Carousel:       toCarouselResponse(card.Topic, card.Carousel),
			CurrentVisited: card.CurrentVisited,
			Tracked:        card.Tracked,
		}
		if card.Latest != nil {
			latest := toArticleResponse(*card.Latest)
			topic.Latest = &latest
		}
		res.Topics = append(res.Topics, topic)
	}
	return res
}

func toSettingsResponse(s model.Settings) SettingsResponse {
	res := SettingsResponse{
		Sources:   s.Sources,
		Verticals: s.Verticals,
		Theme:     string(s.Theme),
	}
	if res.Sources == nil {
		res.Sources = []string{}
	}
	if res.Verticals == nil {
		res.Verticals = []string{}
	}
	return res
}

package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"newstracker/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type fakeProvider struct {
	mu       sync.Mutex
	articles map[string][]model.Article
	errs     map[string]error
	queries  []string
}

func (f *fakeProvider) SearchArticles(_ context.Context, query string) ([]model.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.articles[query], nil
}

type published struct {
	sessionID string
	positions []model.CarouselPosition
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
}

func (f *fakePublisher) PublishCarousel(_ context.Context, sessionID string, positions []model.CarouselPosition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, published{sessionID: sessionID, positions: positions})
	return nil
}

var baseTime = time.Date(2025, time.July, 30, 12, 0, 0, 0, time.UTC)

func articlesAt(prefix string, hoursAgo ...int) []model.Article {
	articles := make([]model.Article, 0, len(hoursAgo))
	for _, h := range hoursAgo {
		articles = append(articles, model.Article{
			Title:       prefix,
			URL:         "https://example.com/" + prefix + "/" + strconv.Itoa(h),
			PublishedAt: baseTime.Add(-time.Duration(h) * time.Hour),
		})
	}
	return articles
}

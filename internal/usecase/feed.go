package usecase

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"newstracker/internal/domain/model"
	"newstracker/internal/domain/ports"
)

// DefaultFetchError is shown when a topic fails without a usable message.
const DefaultFetchError = "Failed to fetch news"

// Feed fetches every topic from the article provider and keeps the latest snapshot.
type Feed struct {
	provider ports.ArticleProvider
	logger   ports.Logger
	topics   []model.Topic
	now      func() time.Time

	mu      sync.RWMutex
	current *model.Snapshot
}

// FeedConfig controls which topics are fetched.
type FeedConfig struct {
	Topics []model.Topic
}

// NewFeed constructs a Feed use case.
func NewFeed(provider ports.ArticleProvider, logger ports.Logger, cfg FeedConfig) *Feed {
	topics := slices.Clone(cfg.Topics)
	if len(topics) == 0 {
		topics = slices.Clone(model.DefaultTopics)
	}
	return &Feed{
		provider: provider,
		logger:   logger,
		topics:   topics,
		now:      time.Now,
	}
}

// Topics returns the configured topics in display order.
func (f *Feed) Topics() []model.Topic {
	return slices.Clone(f.topics)
}

// HasTopic reports whether the topic is one of the configured topics.
func (f *Feed) HasTopic(topic model.Topic) bool {
	return slices.Contains(f.topics, topic)
}

// Current returns the last snapshot, or nil before the first refresh completes.
func (f *Feed) Current() *model.Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Refresh queries every topic in parallel and replaces the current snapshot.
// A failing topic is kept with no articles; the first failure in topic order
// becomes the snapshot error.
func (f *Feed) Refresh(ctx context.Context) *model.Snapshot {
	start := time.Now()
	f.logger.Info(ctx, "refreshing topic news", "topics", len(f.topics))

	type result struct {
		articles []model.Article
		err      error
	}
	results := make([]result, len(f.topics))

	var g errgroup.Group
	for i, topic := range f.topics {
		i, topic := i, topic
		g.Go(func() error {
			articles, err := f.provider.SearchArticles(ctx, string(topic))
			results[i] = result{articles: articles, err: err}
			return nil
		})
	}
	_ = g.Wait()

	snapshot := &model.Snapshot{
		Topics:    slices.Clone(f.topics),
		Feeds:     make(map[model.Topic]model.TopicFeed, len(f.topics)),
		FetchedAt: f.now(),
	}
	failed := 0
	for i, topic := range f.topics {
		r := results[i]
		if r.err != nil {
			failed++
			f.logger.Error(ctx, "failed to fetch topic news", "topic", topic, "error", r.err)
			snapshot.Feeds[topic] = model.NewTopicFeed(topic, nil)
			if snapshot.Error == "" {
				snapshot.Error = errorMessage(r.err)
			}
			continue
		}
		snapshot.Feeds[topic] = model.NewTopicFeed(topic, r.articles)
	}

	f.mu.Lock()
	f.current = snapshot
	f.mu.Unlock()

	f.logger.Info(ctx, "topic news refreshed",
		"topics", len(f.topics),
		"failed", failed,
		"duration", time.Since(start))
	return snapshot
}

// Search runs a free-text query against the provider, newest first.
func (f *Feed) Search(ctx context.Context, query string) ([]model.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	articles, err := f.provider.SearchArticles(ctx, query)
	if err != nil {
		f.logger.Error(ctx, "search failed", "query", query, "error", err)
		return nil, err
	}

	sorted := slices.Clone(articles)
	model.SortNewestFirst(sorted)
	return sorted, nil
}

func errorMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return DefaultFetchError
	}
	return msg
}

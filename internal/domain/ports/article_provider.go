package ports

import (
	"context"

	"newstracker/internal/domain/model"
)

// ArticleProvider searches a news index for articles matching a query.
type ArticleProvider interface {
	SearchArticles(ctx context.Context, query string) ([]model.Article, error)
}

package ports

import (
	"context"

	"newstracker/internal/domain/model"
)

// CarouselPublisher pushes carousel positions to the browsers of a session.
type CarouselPublisher interface {
	PublishCarousel(ctx context.Context, sessionID string, positions []model.CarouselPosition) error
}

//go:build wireinject

package di

import (
	"github.com/google/wire"

	"newstracker/internal/adapter/logging"
	"newstracker/internal/adapter/push"
	"newstracker/internal/app"
	"newstracker/internal/config"
	"newstracker/internal/domain/ports"
	"newstracker/internal/usecase"
	"newstracker/internal/web"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, func(), error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideArticleProvider,
		provideSessionStore,
		provideHub,
		wire.Bind(new(ports.CarouselPublisher), new(*push.Hub)),
		wire.Bind(new(web.SocketServer), new(*push.Hub)),
		provideFeedConfig,
		usecase.NewFeed,
		usecase.NewTracker,
		wire.Bind(new(web.TrackerService), new(*usecase.Tracker)),
		wire.Bind(new(app.Refresher), new(*usecase.Feed)),
		wire.Bind(new(app.Ticker), new(*usecase.Tracker)),
		provideServerOptions,
		web.NewServer,
		provideHandler,
		provideAppOptions,
		app.New,
	)
	return nil, nil, nil
}

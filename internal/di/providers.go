package di

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"newstracker/internal/adapter/logging"
	"newstracker/internal/adapter/newsapi"
	"newstracker/internal/adapter/push"
	"newstracker/internal/adapter/session"
	"newstracker/internal/app"
	"newstracker/internal/config"
	"newstracker/internal/domain/ports"
	"newstracker/internal/usecase"
	"newstracker/internal/web"
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSON(os.Stdout, cfg.LogLevel)
}

func provideArticleProvider(cfg *config.Config, logger ports.Logger) ports.ArticleProvider {
	return newsapi.New(cfg.NewsAPIBaseURL, cfg.NewsAPIKey, cfg.RequestTimeout, logger)
}

// provideSessionStore uses Redis when REDIS_URL is set and memory otherwise.
func provideSessionStore(cfg *config.Config, logger ports.Logger) (ports.SessionStore, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info(context.Background(), "using in-memory session store")
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := session.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	store := session.NewRedisStore(client, cfg.SessionTTL)
	logger.Info(ctx, "using redis session store")

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Error(context.Background(), "close redis failed", "error", err)
		}
	}
	return store, cleanup, nil
}

func provideHub(cfg *config.Config, logger ports.Logger) *push.Hub {
	return push.NewHub(logger, cfg.AllowedOrigins())
}

func provideFeedConfig(cfg *config.Config) usecase.FeedConfig {
	return usecase.FeedConfig{Topics: cfg.Topics}
}

func provideServerOptions(cfg *config.Config) web.Options {
	return web.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		SecureCookies:  cfg.SecureCookies,
		SessionTTL:     cfg.SessionTTL,
	}
}

func provideHandler(server *web.Server) http.Handler {
	return server.Handler()
}

func provideAppOptions(cfg *config.Config) app.Options {
	return app.Options{
		Addr:             cfg.HTTPAddr,
		RefreshCron:      cfg.RefreshCron,
		AutoPlayInterval: cfg.AutoPlayInterval,
	}
}

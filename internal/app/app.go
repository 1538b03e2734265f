package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"newstracker/internal/domain/model"
	"newstracker/internal/domain/ports"
)

const shutdownTimeout = 5 * time.Second

// Refresher reloads the topic snapshot.
type Refresher interface {
	Refresh(ctx context.Context) *model.Snapshot
}

// Ticker advances auto-playing carousels.
type Ticker interface {
	Tick(ctx context.Context) error
}

// Options controls the schedules and the listen address.
type Options struct {
	Addr             string
	RefreshCron      string
	AutoPlayInterval time.Duration
}

// App manages the lifecycle of the HTTP server and the background jobs.
type App struct {
	cron    *cron.Cron
	feed    Refresher
	ticker  Ticker
	handler http.Handler
	logger  ports.Logger
	opts    Options
}

// New constructs an App instance.
func New(feed Refresher, ticker Ticker, handler http.Handler, logger ports.Logger, opts Options) *App {
	return &App{
		cron:    cron.New(),
		feed:    feed,
		ticker:  ticker,
		handler: handler,
		logger:  logger,
		opts:    opts,
	}
}

// Run starts the first refresh, the scheduler and the HTTP server, and blocks
// until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduleJobs(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", a.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.opts.Addr, err)
	}

	go func() {
		a.logger.Info(ctx, "running first refresh immediately")
		a.refresh(ctx)
	}()

	a.logger.Info(ctx, "starting scheduler", "cron", a.opts.RefreshCron, "autoplay", a.opts.AutoPlayInterval)
	a.cron.Start()
	defer a.stopScheduler()

	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "http server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error(shutdownCtx, "http shutdown failed", "error", err)
	}
	a.logger.Info(context.Background(), "http server stopped")
	return nil
}

func (a *App) stopScheduler() {
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(shutdownTimeout):
	}
	a.logger.Info(context.Background(), "scheduler stopped")
}

func (a *App) scheduleJobs() error {
	if _, err := a.cron.AddFunc(a.opts.RefreshCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		a.refresh(ctx)
	}); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", a.opts.RefreshCron, err)
	}

	if a.ticker == nil || a.opts.AutoPlayInterval <= 0 {
		return nil
	}
	spec := "@every " + a.opts.AutoPlayInterval.String()
	if _, err := a.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.opts.AutoPlayInterval)
		defer cancel()
		if err := a.ticker.Tick(ctx); err != nil {
			a.logger.Error(ctx, "auto-play tick failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule auto-play %q: %w", spec, err)
	}
	return nil
}

func (a *App) refresh(ctx context.Context) {
	snapshot := a.feed.Refresh(ctx)
	if snapshot != nil && snapshot.Error != "" {
		a.logger.Error(ctx, "refresh completed with errors", "error", snapshot.Error)
	}
}

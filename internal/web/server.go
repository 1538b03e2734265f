package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"newstracker/internal/domain/model"
	"newstracker/internal/domain/ports"
	"newstracker/internal/usecase"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TrackerService defines the behaviours the handlers require from the use case layer.
type TrackerService interface {
	Home(ctx context.Context, sessionID string) (usecase.HomeView, error)
	Space(ctx context.Context, sessionID string) (usecase.SpaceView, error)
	Next(ctx context.Context, sessionID string, topic model.Topic) (model.CarouselPosition, error)
	Prev(ctx context.Context, sessionID string, topic model.Topic) (model.CarouselPosition, error)
	Swipe(ctx context.Context, sessionID string, topic model.Topic, start, end *float64) (model.CarouselPosition, error)
	SetAutoPlay(ctx context.Context, sessionID string, enabled bool) error
	Visit(ctx context.Context, sessionID, articleURL string) (usecase.VisitResult, error)
	Visited(ctx context.Context, sessionID string) ([]string, error)
	Settings(ctx context.Context, sessionID string) (model.Settings, error)
	SaveSettings(ctx context.Context, sessionID string, settings model.Settings) (model.Settings, error)
	ToggleTrack(ctx context.Context, sessionID string, topic model.Topic) (bool, error)
	Search(ctx context.Context, sessionID, query string) ([]model.Article, error)
	Theme(ctx context.Context, sessionID string) model.Theme
}

// SocketServer upgrades a request to a push connection for a session.
type SocketServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, sessionID string)
}

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	SecureCookies  bool
	SessionTTL     time.Duration
}

// Server exposes the pages and the JSON API.
type Server struct {
	engine  *gin.Engine
	tracker TrackerService
	sockets SocketServer
	logger  ports.Logger
	opts    Options
}

// NewServer builds the gin engine and registers every route.
func NewServer(tracker TrackerService, sockets SocketServer, logger ports.Logger, opts Options) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(gin.Recovery(), requestLogger(logger))
	if len(opts.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	s := &Server{
		engine:  engine,
		tracker: tracker,
		sockets: sockets,
		logger:  logger,
		opts:    opts,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/health", s.GetHealth)

	pages := s.engine.Group("/", sessionMiddleware(s.opts))
	pages.GET("/", s.GetHome)
	pages.GET("/your-space", s.GetSpace)
	pages.POST("/your-space/:topic/track", s.PostTrack)
	pages.GET("/settings", s.GetSettings)
	pages.POST("/settings", s.PostSettings)
	pages.GET("/search", s.GetSearch)
	pages.POST("/topics/:topic/next", s.PostNext)
	pages.POST("/topics/:topic/prev", s.PostPrev)
	pages.POST("/topics/:topic/swipe", s.PostSwipe)
	pages.POST("/autoplay", s.PostAutoPlay)
	pages.GET("/visit", s.GetVisit)
	pages.GET("/ws", s.GetWS)

	api := s.engine.Group("/api", sessionMiddleware(s.opts))
	api.GET("/feed", s.GetFeed)
	api.POST("/topics/:topic/next", s.PostNextJSON)
	api.POST("/topics/:topic/prev", s.PostPrevJSON)
	api.POST("/topics/:topic/swipe", s.PostSwipeJSON)
	api.POST("/topics/:topic/track", s.PostTrackJSON)
	api.POST("/autoplay", s.PostAutoPlayJSON)
	api.GET("/visited", s.GetVisitedJSON)
	api.POST("/visited", s.PostVisitedJSON)
	api.GET("/settings", s.GetSettingsJSON)
	api.PUT("/settings", s.PutSettingsJSON)
	api.GET("/search", s.GetSearchJSON)
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// GetHealth reports liveness.
func (s *Server) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetWS upgrades to the auto-play push channel of the session.
func (s *Server) GetWS(c *gin.Context) {
	if s.sockets == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	s.sockets.ServeWS(c.Writer, c.Request, sessionID(c))
}

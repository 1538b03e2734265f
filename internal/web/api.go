package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newstracker/internal/domain/model"
)

func (s *Server) jsonError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "api request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, ErrorResponse{Error: messageFor(err, status)})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// GetFeed returns the home page state of the session.
func (s *Server) GetFeed(c *gin.Context) {
	view, err := s.tracker.Home(c.Request.Context(), sessionID(c))
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFeedResponse(view))
}

func (s *Server) respondPosition(c *gin.Context, pos model.CarouselPosition, err error) {
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCarouselResponse(pos.Topic, model.Carousel{Index: pos.Index, Count: pos.Count}))
}

// PostNextJSON pages a carousel forward.
func (s *Server) PostNextJSON(c *gin.Context) {
	pos, err := s.tracker.Next(c.Request.Context(), sessionID(c), topicParam(c))
	s.respondPosition(c, pos, err)
}

// PostPrevJSON pages a carousel back.
func (s *Server) PostPrevJSON(c *gin.Context) {
	pos, err := s.tracker.Prev(c.Request.Context(), sessionID(c), topicParam(c))
	s.respondPosition(c, pos, err)
}

// PostSwipeJSON pages a carousel from a touch gesture.
func (s *Server) PostSwipeJSON(c *gin.Context) {
	var req SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pos, err := s.tracker.Swipe(c.Request.Context(), sessionID(c), topicParam(c), req.Start, req.End)
	s.respondPosition(c, pos, err)
}

// PostTrackJSON toggles a tracked topic.
func (s *Server) PostTrackJSON(c *gin.Context) {
	tracked, err := s.tracker.ToggleTrack(c.Request.Context(), sessionID(c), topicParam(c))
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": c.Param("topic"), "tracked": tracked})
}

// PostAutoPlayJSON switches auto-play.
func (s *Server) PostAutoPlayJSON(c *gin.Context) {
	var req AutoPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.tracker.SetAutoPlay(c.Request.Context(), sessionID(c), *req.Enabled); err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"autoPlay": *req.Enabled})
}

// GetVisitedJSON lists visited article URLs.
func (s *Server) GetVisitedJSON(c *gin.Context) {
	urls, err := s.tracker.Visited(c.Request.Context(), sessionID(c))
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"urls": urls})
}

// PostVisitedJSON marks an article visited.
func (s *Server) PostVisitedJSON(c *gin.Context) {
	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := s.tracker.Visit(c.Request.Context(), sessionID(c), req.URL)
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, VisitResponse{Added: result.Added, Total: result.Total})
}

// GetSettingsJSON returns the session's preferences.
func (s *Server) GetSettingsJSON(c *gin.Context) {
	settings, err := s.tracker.Settings(c.Request.Context(), sessionID(c))
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(settings))
}

// PutSettingsJSON replaces the session's preferences.
func (s *Server) PutSettingsJSON(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := s.tracker.SaveSettings(c.Request.Context(), sessionID(c), model.Settings{
		Sources:   req.Sources,
		Verticals: req.Verticals,
		Theme:     model.Theme(req.Theme),
	})
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(saved))
}

// GetSearchJSON runs a free-text search.
func (s *Server) GetSearchJSON(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		badRequest(c, errors.New("query parameter q is required"))
		return
	}
	articles, err := s.tracker.Search(c.Request.Context(), sessionID(c), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "articles": toArticleResponses(articles)})
}

package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"newstracker/internal/domain/model"
)

func (s *Server) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "page failed", "path", c.Request.URL.Path, "error", err)
	}
	data := pageData(http.StatusText(status), "", s.tracker.Theme(c.Request.Context(), sessionID(c)))
	data["Message"] = messageFor(err, status)
	c.HTML(status, "error.html", data)
}

// pageData carries the fields the shared header reads.
func pageData(title, active string, theme model.Theme) gin.H {
	return gin.H{
		"Title":  title,
		"Active": active,
		"Theme":  theme,
		"Query":  "",
	}
}

func topicParam(c *gin.Context) model.Topic {
	return model.Topic(c.Param("topic"))
}

// GetHome renders the topic cards.
func (s *Server) GetHome(c *gin.Context) {
	view, err := s.tracker.Home(c.Request.Context(), sessionID(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	data := pageData("Home", "home", view.Theme)
	data["View"] = view
	c.HTML(http.StatusOK, "home.html", data)
}

// GetSpace renders the bookmarks page.
func (s *Server) GetSpace(c *gin.Context) {
	view, err := s.tracker.Space(c.Request.Context(), sessionID(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	data := pageData("Your Space", "space", view.Theme)
	data["View"] = view
	c.HTML(http.StatusOK, "your_space.html", data)
}

// PostTrack toggles a tracked topic from the bookmarks page.
func (s *Server) PostTrack(c *gin.Context) {
	if _, err := s.tracker.ToggleTrack(c.Request.Context(), sessionID(c), topicParam(c)); err != nil {
		s.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/your-space")
}

// GetSettings renders the preferences form.
func (s *Server) GetSettings(c *gin.Context) {
	settings, err := s.tracker.Settings(c.Request.Context(), sessionID(c))
	if err != nil {
		s.renderError(c, err)
		return
	}
	data := pageData("Settings", "settings", settings.Theme)
	data["Settings"] = settings
	data["Sources"] = model.NewsSources
	data["Verticals"] = model.NewsVerticals
	data["Saved"] = c.Query("saved") == "1"
	c.HTML(http.StatusOK, "settings.html", data)
}

// PostSettings stores the submitted preferences.
func (s *Server) PostSettings(c *gin.Context) {
	settings := model.Settings{
		Sources:   c.PostFormArray("sources"),
		Verticals: c.PostFormArray("verticals"),
		Theme:     model.Theme(c.PostForm("theme")),
	}
	if _, err := s.tracker.SaveSettings(c.Request.Context(), sessionID(c), settings); err != nil {
		s.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/settings?saved=1")
}

// GetSearch renders free-text search results.
func (s *Server) GetSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	data := pageData("Search", "search", s.tracker.Theme(c.Request.Context(), sessionID(c)))
	data["Query"] = query
	data["Articles"] = nil
	data["Error"] = ""

	articles, err := s.tracker.Search(c.Request.Context(), sessionID(c), query)
	if err != nil {
		data["Error"] = err.Error()
		c.HTML(http.StatusBadGateway, "search.html", data)
		return
	}
	data["Articles"] = articles
	c.HTML(http.StatusOK, "search.html", data)
}

// PostNext pages a carousel forward and returns to the home page.
func (s *Server) PostNext(c *gin.Context) {
	if _, err := s.tracker.Next(c.Request.Context(), sessionID(c), topicParam(c)); err != nil {
		s.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// PostPrev pages a carousel back and returns to the home page.
func (s *Server) PostPrev(c *gin.Context) {
	if _, err := s.tracker.Prev(c.Request.Context(), sessionID(c), topicParam(c)); err != nil {
		s.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// PostSwipe pages a carousel from form-posted touch positions.
func (s *Server) PostSwipe(c *gin.Context) {
	start, end := formFloat(c, "start"), formFloat(c, "end")
	if _, err := s.tracker.Swipe(c.Request.Context(), sessionID(c), topicParam(c), start, end); err != nil {
		s.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func formFloat(c *gin.Context, key string) *float64 {
	v, err := strconv.ParseFloat(c.PostForm(key), 64)
	if err != nil {
		return nil
	}
	return &v
}

// PostAutoPlay flips the auto-play switch.
func (s *Server) PostAutoPlay(c *gin.Context) {
	enabled := c.PostForm("enabled") == "true"
	if err := s.tracker.SetAutoPlay(c.Request.Context(), sessionID(c), enabled); err != nil {
		s.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// GetVisit marks an article visited and sends the browser to it.
func (s *Server) GetVisit(c *gin.Context) {
	target := strings.TrimSpace(c.Query("url"))
	if _, err := s.tracker.Visit(c.Request.Context(), sessionID(c), target); err != nil {
		s.renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

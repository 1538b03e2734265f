package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"newstracker/internal/adapter/session"
	"newstracker/internal/domain/model"
	"newstracker/internal/usecase"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type fakeProvider struct {
	articles map[string][]model.Article
	errs     map[string]error
}

func (f *fakeProvider) SearchArticles(_ context.Context, query string) ([]model.Article, error) {
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.articles[query], nil
}

var published = time.Date(2025, time.July, 30, 12, 0, 0, 0, time.UTC)

func article(slug string, hoursAgo int) model.Article {
	return model.Article{
		Title:       "Story " + slug,
		Description: "About " + slug,
		SourceName:  "Reuters",
		URL:         "https://example.com/" + slug,
		PublishedAt: published.Add(-time.Duration(hoursAgo) * time.Hour),
	}
}

type testEnv struct {
	router http.Handler
	cookie *http.Cookie
}

func newTestEnv(t *testing.T, provider *fakeProvider) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	feed := usecase.NewFeed(provider, nopLogger{}, usecase.FeedConfig{
		Topics: []model.Topic{"Trump tariffs", "MH370"},
	})
	feed.Refresh(context.Background())
	tracker := usecase.NewTracker(feed, session.NewMemoryStore(time.Hour), nil, nopLogger{})

	srv, err := NewServer(tracker, nil, nopLogger{}, Options{SessionTTL: time.Hour})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return &testEnv{router: srv.Handler()}
}

func defaultProvider() *fakeProvider {
	return &fakeProvider{
		articles: map[string][]model.Article{
			"Trump tariffs": {article("t3", 3), article("t1", 1), article("t2", 2)},
			"MH370":         {article("m1", 1)},
		},
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			e.cookie = c
		}
	}
	return w
}

func (e *testEnv) json(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		payload = string(data)
	}
	return e.do(t, method, target, payload, "application/json")
}

func TestGetHealth(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	w := env.do(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, env.cookie == nil)
}

func TestGetHomeRendersTopics(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	w := env.do(t, http.MethodGet, "/", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, env.cookie != nil)
	body := w.Body.String()
	assert.Equal(t, true, strings.Contains(body, "Trump tariffs"))
	assert.Equal(t, true, strings.Contains(body, "Story t1"))
	assert.Equal(t, true, strings.Contains(body, "Past Developments"))
	assert.Equal(t, true, strings.Contains(body, "1 / 2"))
	assert.Equal(t, true, strings.Contains(body, "/topics/Trump%20tariffs/next"))
}

func TestGetHomeShowsErrorAndAvailableTopics(t *testing.T) {
	provider := defaultProvider()
	provider.errs = map[string]error{"MH370": errors.New("You have made too many requests recently.")}
	env := newTestEnv(t, provider)

	w := env.do(t, http.MethodGet, "/", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, true, strings.Contains(body, "You have made too many requests recently."))
	assert.Equal(t, true, strings.Contains(body, "Story t1"))
	assert.Equal(t, true, strings.Contains(body, "No news found for this topic."))
}

func TestSessionCookieIsReused(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	env.do(t, http.MethodGet, "/", "", "")
	first := env.cookie.Value
	env.do(t, http.MethodGet, "/", "", "")

	assert.Equal(t, first, env.cookie.Value)
}

func TestInvalidSessionCookieIsReplaced(t *testing.T) {
	env := newTestEnv(t, defaultProvider())
	env.cookie = &http.Cookie{Name: sessionCookie, Value: "not-a-uuid"}

	env.do(t, http.MethodGet, "/api/feed", "", "")

	assert.NotEqual(t, "not-a-uuid", env.cookie.Value)
}

func TestCarouselAPI(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	w := env.json(t, http.MethodPost, "/api/topics/Trump%20tariffs/next", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var res CarouselResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, false, res.CanNext)

	w = env.json(t, http.MethodPost, "/api/topics/Trump%20tariffs/next", nil)
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Index)

	w = env.json(t, http.MethodPost, "/api/topics/Trump%20tariffs/swipe", SwipeRequest{Start: ptr(10), End: ptr(200)})
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, res.Index)

	w = env.json(t, http.MethodPost, "/api/topics/Trump%20tariffs/prev", nil)
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, res.Index)

	w = env.json(t, http.MethodPost, "/api/topics/Weather/next", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCarouselForms(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	w := env.do(t, http.MethodPost, "/topics/Trump%20tariffs/next", "", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = env.do(t, http.MethodPost, "/topics/Trump%20tariffs/swipe", "start=300&end=100", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	home := env.do(t, http.MethodGet, "/", "", "")
	assert.Equal(t, true, strings.Contains(home.Body.String(), "2 / 2"))

	w = env.do(t, http.MethodPost, "/topics/Trump%20tariffs/prev", "", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = env.do(t, http.MethodPost, "/topics/Weather/next", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func ptr(v float64) *float64 { return &v }

func TestFeedAPI(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	w := env.json(t, http.MethodGet, "/api/feed", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, false, res.Loading)
	assert.Equal(t, 2, len(res.Topics))
	assert.Equal(t, "https://example.com/t1", res.Topics[0].Latest.URL)
	assert.Equal(t, 2, len(res.Topics[0].Previous))
	assert.Equal(t, "https://example.com/t2", res.Topics[0].Previous[0].URL)
	assert.Equal(t, 0, len(res.Topics[1].Previous))
}

func TestVisitedAPIIsIdempotent(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	for i := 0; i < 2; i++ {
		w := env.json(t, http.MethodPost, "/api/visited", VisitRequest{URL: "https://example.com/t2"})
		assert.Equal(t, http.StatusOK, w.Code)
		var res VisitResponse
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, i == 0, res.Added)
		assert.Equal(t, 1, res.Total)
	}

	w := env.json(t, http.MethodGet, "/api/visited", nil)
	var res struct {
		URLs []string `json:"urls"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, []string{"https://example.com/t2"}, res.URLs)

	w = env.json(t, http.MethodPost, "/api/visited", VisitRequest{URL: "javascript:alert(1)"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVisitRedirects(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	w := env.do(t, http.MethodGet, "/visit?url="+url.QueryEscape("https://example.com/t2"), "", "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/t2", w.Header().Get("Location"))

	home := env.do(t, http.MethodGet, "/", "", "")
	assert.Equal(t, true, strings.Contains(home.Body.String(), `class="visited"`))
}

func TestGetVisitRejectsUnlistedURL(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	w := env.do(t, http.MethodGet, "/visit?url="+url.QueryEscape("https://evil.example/phish"), "", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "", w.Header().Get("Location"))

	visited := env.json(t, http.MethodGet, "/api/visited", nil)
	var res struct {
		URLs []string `json:"urls"`
	}
	json.Unmarshal(visited.Body.Bytes(), &res)
	assert.Equal(t, 0, len(res.URLs))
}

func TestGetVisitAfterSearch(t *testing.T) {
	provider := defaultProvider()
	provider.articles["volcano"] = []model.Article{article("v1", 1)}
	env := newTestEnv(t, provider)
	target := "/visit?url=" + url.QueryEscape("https://example.com/v1")

	w := env.do(t, http.MethodGet, target, "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.do(t, http.MethodGet, "/search?q=volcano", "", "")
	w = env.do(t, http.MethodGet, target, "", "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/v1", w.Header().Get("Location"))
}

func TestAutoPlayForm(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	w := env.do(t, http.MethodPost, "/autoplay", "enabled=true", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	feed := env.json(t, http.MethodGet, "/api/feed", nil)
	var res FeedResponse
	json.Unmarshal(feed.Body.Bytes(), &res)
	assert.Equal(t, true, res.AutoPlay)

	w = env.json(t, http.MethodPost, "/api/autoplay", map[string]bool{"enabled": false})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.json(t, http.MethodPost, "/api/autoplay", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingsAPI(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	w := env.json(t, http.MethodPut, "/api/settings", SettingsRequest{
		Sources:   []string{"NPR"},
		Verticals: []string{},
		Theme:     "dark",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.json(t, http.MethodGet, "/api/settings", nil)
	var res SettingsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, []string{"NPR"}, res.Sources)
	assert.Equal(t, 0, len(res.Verticals))
	assert.Equal(t, "dark", res.Theme)

	w = env.json(t, http.MethodPut, "/api/settings", SettingsRequest{Theme: "neon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	page := env.do(t, http.MethodGet, "/settings", "", "")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Equal(t, true, strings.Contains(page.Body.String(), `data-theme="dark"`))
}

func TestSettingsForm(t *testing.T) {
	env := newTestEnv(t, defaultProvider())
	form := url.Values{}
	form.Add("sources", "CNN")
	form.Add("verticals", "Health")
	form.Set("theme", "light")

	w := env.do(t, http.MethodPost, "/settings", form.Encode(), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/settings?saved=1", w.Header().Get("Location"))
}

func TestTrackTopic(t *testing.T) {
	env := newTestEnv(t, defaultProvider())

	page := env.do(t, http.MethodGet, "/your-space", "", "")
	assert.Equal(t, 2, strings.Count(page.Body.String(), "Start Tracking"))

	w := env.do(t, http.MethodPost, "/your-space/MH370/track", "", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	page = env.do(t, http.MethodGet, "/your-space", "", "")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Equal(t, 1, strings.Count(page.Body.String(), "Start Tracking"))

	w = env.json(t, http.MethodPost, "/api/topics/Weather/track", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearch(t *testing.T) {
	provider := defaultProvider()
	provider.articles["volcano"] = []model.Article{article("v1", 1)}
	provider.errs = map[string]error{"broken": errors.New("upstream down")}
	env := newTestEnv(t, provider)

	w := env.json(t, http.MethodGet, "/api/search?q=volcano", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.json(t, http.MethodGet, "/api/search?q=broken", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = env.json(t, http.MethodGet, "/api/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	page := env.do(t, http.MethodGet, "/search?q=volcano", "", "")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Equal(t, true, strings.Contains(page.Body.String(), "Story v1"))
}

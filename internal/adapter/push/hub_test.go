package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/gorilla/websocket"

	"newstracker/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

func waitForConnections(t *testing.T, hub *Hub, sessionID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Connections(sessionID) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("session %s: want %d connections, have %d", sessionID, want, hub.Connections(sessionID))
}

func TestHubPublishesToSession(t *testing.T) {
	hub := NewHub(nopLogger{}, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"))
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "?session=s1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.Equal(t, nil, err)
	defer conn.Close()
	waitForConnections(t, hub, "s1", 1)

	err = hub.PublishCarousel(context.Background(), "s1", []model.CarouselPosition{
		{Topic: "MH370", Index: 2, Count: 4},
	})
	assert.Equal(t, nil, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	assert.Equal(t, nil, err)

	var msg CarouselMessage
	assert.Equal(t, nil, json.Unmarshal(data, &msg))
	assert.Equal(t, "carousel", msg.Type)
	assert.Equal(t, 1, len(msg.Carousels))
	assert.Equal(t, "MH370", msg.Carousels[0].Topic)
	assert.Equal(t, 2, msg.Carousels[0].Index)
	assert.Equal(t, 4, msg.Carousels[0].Count)

	conn.Close()
	waitForConnections(t, hub, "s1", 0)
}

func TestHubPublishWithoutClients(t *testing.T) {
	hub := NewHub(nopLogger{}, nil)

	err := hub.PublishCarousel(context.Background(), "nobody", []model.CarouselPosition{{Topic: "MH370"}})

	assert.Equal(t, nil, err)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "http://news.local/ws", nil)
	assert.Equal(t, true, check(req))

	req.Header.Set("Origin", "http://news.local")
	assert.Equal(t, true, check(req))

	req.Header.Set("Origin", "http://localhost:3000")
	assert.Equal(t, true, check(req))

	req.Header.Set("Origin", "http://evil.example")
	assert.Equal(t, false, check(req))
}

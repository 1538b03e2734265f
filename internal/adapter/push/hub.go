package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"newstracker/internal/domain/model"
	"newstracker/internal/domain/ports"
)

const writeWait = 5 * time.Second

// Client is one websocket connection bound to a session.
type Client struct {
	conn      *websocket.Conn
	sessionID string
	mu        sync.Mutex
}

func (c *Client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans carousel updates out to the open connections of each session.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*Client]struct{}
	upgrader websocket.Upgrader
	logger   ports.Logger
}

var _ ports.CarouselPublisher = (*Hub)(nil)

// NewHub creates an empty Hub. allowedOrigins limits cross-origin upgrades;
// same-origin requests are always accepted.
func NewHub(logger ports.Logger, allowedOrigins []string) *Hub {
	h := &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

// CarouselMessage is the JSON frame sent on every auto-play step.
type CarouselMessage struct {
	Type      string             `json:"type"`
	Carousels []CarouselPosition `json:"carousels"`
}

// CarouselPosition is the wire form of model.CarouselPosition.
type CarouselPosition struct {
	Topic string `json:"topic"`
	Index int    `json:"index"`
	Count int    `json:"count"`
}

// ServeWS upgrades the request and keeps the connection registered until the
// peer goes away. Incoming frames are ignored.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	client := &Client{conn: conn, sessionID: sessionID}
	h.register(client)

	defer func() {
		h.unregister(client)
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.sessionID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.sessionID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.sessionID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.sessionID)
	}
}

// Connections returns the number of open connections of a session.
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// PublishCarousel sends the positions to every connection of the session.
// Connections that fail to accept the frame are closed.
func (h *Hub) PublishCarousel(ctx context.Context, sessionID string, positions []model.CarouselPosition) error {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[sessionID]))
	for c := range h.clients[sessionID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return nil
	}

	msg := CarouselMessage{Type: "carousel", Carousels: make([]CarouselPosition, 0, len(positions))}
	for _, p := range positions {
		msg.Carousels = append(msg.Carousels, CarouselPosition{Topic: string(p.Topic), Index: p.Index, Count: p.Count})
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal carousel message: %w", err)
	}

	for _, c := range targets {
		if err := c.write(data); err != nil {
			h.logger.Debug(ctx, "dropping websocket client", "session", sessionID, "error", err)
			h.unregister(c)
			_ = c.conn.Close()
		}
	}
	return nil
}

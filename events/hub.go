package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub pushes order events to websocket clients subscribed to a restaurant.
type Hub struct {
	mu      sync.Mutex
	clients map[uint]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*client]struct{})}
}

// Serve registers conn for restaurantID and blocks until the client goes away.
func (h *Hub) Serve(restaurantID uint, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(restaurantID, c)

	done := make(chan struct{})
	go h.writePump(c, done)
	h.readPump(c)

	h.remove(restaurantID, c)
	close(done)
}

func (h *Hub) Publish(_ context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[event.RestaurantID] {
		select {
		case c.send <- body:
		default:
			log.Warn().Uint("restaurantId", event.RestaurantID).Msg("dropping slow websocket client")
			delete(h.clients[event.RestaurantID], c)
			c.conn.Close()
		}
	}
	return nil
}

// Subscribers returns the number of live clients for a restaurant.
func (h *Hub) Subscribers(restaurantID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[restaurantID])
}

func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, set := range h.clients {
		for c := range set {
			c.conn.Close()
		}
		delete(h.clients, id)
	}
	return nil
}

func (h *Hub) add(restaurantID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[restaurantID] == nil {
		h.clients[restaurantID] = make(map[*client]struct{})
	}
	h.clients[restaurantID][c] = struct{}{}
}

func (h *Hub) remove(restaurantID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[restaurantID], c)
	if len(h.clients[restaurantID]) == 0 {
		delete(h.clients, restaurantID)
	}
}

// readPump discards inbound frames; it only exists to observe pongs and close.
func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// Package live pushes room status changes to websocket clients watching a
// hostel.
package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"hostel/internal/modules/occupancy"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

const (
	EventRoomStatusChanged = "room_status_changed"
	EventSubscribed        = "subscribed"
	EventUnsubscribed      = "unsubscribed"
	EventError             = "error"
)

// Event is pushed to clients.
type Event struct {
	Type     string `json:"type"`
	HostelID int64  `json:"hostelId,omitempty"`
	Payload  any    `json:"payload,omitempty"`
}

type clientMessage struct {
	Type     string `json:"type"`
	HostelID int64  `json:"hostelId"`
}

type client struct {
	userID  int64
	conn    *websocket.Conn
	send    chan []byte
	hostels map[int64]bool
}

// Hub tracks connected clients and their hostel subscriptions. It satisfies
// occupancy.StatusListener.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{clients: make(map[*client]struct{}), log: log}
}

var _ occupancy.StatusListener = (*Hub)(nil)

func (h *Hub) RoomStatusChanged(_ context.Context, change occupancy.StatusChange) {
	h.BroadcastToHostel(change.HostelID, &Event{
		Type:     EventRoomStatusChanged,
		HostelID: change.HostelID,
		Payload:  change,
	})
}

// BroadcastToHostel queues event for every client subscribed to hostelID.
// Slow clients miss the event.
func (h *Hub) BroadcastToHostel(hostelID int64, event *Event) int {
	data, err := json.Marshal(event)
	if err != nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.clients {
		if !c.hostels[hostelID] {
			continue
		}
		select {
		case c.send <- data:
			delivered++
		default:
			h.log.Warn("live client too slow, event dropped", zap.Int64("user_id", c.userID))
		}
	}
	return delivered
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS registers conn and runs its pumps until it disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64, hostels []int64) {
	c := &client{
		userID:  userID,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		hostels: make(map[int64]bool),
	}
	for _, id := range hostels {
		c.hostels[id] = true
	}
	if !h.register(c) {
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) reply(c *client, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug("live client read failed", zap.Int64("user_id", c.userID), zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.reply(c, &Event{Type: EventError, Payload: "invalid json"})
			continue
		}

		switch msg.Type {
		case "subscribe":
			h.mu.Lock()
			c.hostels[msg.HostelID] = true
			h.mu.Unlock()
			h.reply(c, &Event{Type: EventSubscribed, HostelID: msg.HostelID})
		case "unsubscribe":
			h.mu.Lock()
			delete(c.hostels, msg.HostelID)
			h.mu.Unlock()
			h.reply(c, &Event{Type: EventUnsubscribed, HostelID: msg.HostelID})
		default:
			h.reply(c, &Event{Type: EventError, Payload: "unknown message type: " + msg.Type})
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

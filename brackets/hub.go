package brackets

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketMessage is the envelope pushed to subscribers of a league room.
type WebSocketMessage struct {
	Type    string      `json:"type"`              // SCHEDULE_CREATED, MATCH_UPDATED и т.д.
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"` // ID лиги
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 256
)

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	Room     string
	IsClosed bool
	Mu       sync.Mutex
}

// LeagueRoom is the hub room carrying events of one league.
func LeagueRoom(leagueID string) string {
	return "league_" + leagueID
}

func NewClient(hub *Hub, conn *websocket.Conn, room string) *Client {
	return &Client{
		Hub:  hub,
		Conn: conn,
		Send: make(chan []byte, sendBufferSize),
		Room: room,
	}
}

// Hub раздает события лиг подключенным клиентам, сгруппированным по комнатам.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	done       chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			size := len(h.rooms[client.Room])
			h.mu.Unlock()
			h.logger.Debug("ws client registered", slog.String("room", client.Room), slog.Int("clients", size))

		case client := <-h.Unregister:
			h.remove(client)
		}
	}
}

// Subscribe registers client with the hub. It returns false once the hub has stopped.
func (h *Hub) Subscribe(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomClients, ok := h.rooms[client.Room]
	if !ok || !roomClients[client] {
		return
	}
	client.close()
	delete(roomClients, client)
	if len(roomClients) == 0 {
		delete(h.rooms, client.Room)
		h.logger.Debug("ws room closed", slog.String("room", client.Room))
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.rooms {
		for client := range clients {
			client.close()
		}
		delete(h.rooms, room)
	}
}

// RoomSize returns the number of clients currently subscribed to roomID.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// BroadcastToRoom отправляет сообщение всем клиентам в указанной комнате.
// Медленные клиенты с заполненным буфером пропускают сообщение.
func (h *Hub) BroadcastToRoom(roomID string, message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal ws message", slog.String("room", roomID), slog.Any("error", err))
		return
	}

	for client := range roomClients {
		client.Mu.Lock()
		if client.IsClosed {
			client.Mu.Unlock()
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			h.logger.Warn("ws client buffer full, message dropped", slog.String("room", roomID))
		}
		client.Mu.Unlock()
	}
}

func (c *Client) close() {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if !c.IsClosed {
		close(c.Send)
		c.IsClosed = true
	}
}

// ReadPump drains incoming frames so pongs and close frames are processed.
// Client messages themselves are ignored.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.Hub.Unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { return c.Conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("ws read error", slog.String("room", c.Room), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.Debug("ws write failed", slog.String("room", c.Room), slog.Any("error", err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package events

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one websocket subscriber of a kanban's event stream
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	kanbanID uuid.UUID
	userID   uuid.UUID
	hub      *Hub
}

// Hub tracks websocket subscribers per kanban and relays events arriving on
// the redis pub/sub channels to them
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	clientsMu  sync.RWMutex
	register   chan *Client
	unregister chan *Client
	redis      *redis.Client
	logger     *zap.Logger
	cancel     context.CancelFunc
}

// NewHub creates a hub and starts its relay loops
func NewHub(redisClient *redis.Client, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	hub := &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		redis:      redisClient,
		logger:     logger,
		cancel:     cancel,
	}
	go hub.run(ctx)
	go hub.relay(ctx)
	return hub
}

// Stop shuts down the relay loops
func (h *Hub) Stop() {
	h.cancel()
}

// Serve registers a connection for a kanban's events and blocks until the
// peer disconnects
func (h *Hub) Serve(conn *websocket.Conn, kanbanID, userID uuid.UUID) {
	client := &Client{
		conn:     conn,
		send:     make(chan []byte, 64),
		kanbanID: kanbanID,
		userID:   userID,
		hub:      h,
	}
	h.register <- client

	go client.writePump()
	client.readPump()
}

func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.kanbanID] == nil {
				h.clients[client.kanbanID] = make(map[*Client]bool)
			}
			h.clients[client.kanbanID][client] = true
			h.clientsMu.Unlock()
			h.logger.Info("Board event client connected",
				zap.String("kanban_id", client.kanbanID.String()),
				zap.String("user_id", client.userID.String()),
			)

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, ok := h.clients[client.kanbanID]; ok {
				if clients[client] {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.kanbanID)
					}
				}
			}
			h.clientsMu.Unlock()

		case <-ctx.Done():
			return
		}
	}
}

// relay subscribes to all kanban event channels and fans messages out to the
// local clients of each kanban
func (h *Hub) relay(ctx context.Context) {
	pubsub := h.redis.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	for {
		select {
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			kanbanID, err := uuid.Parse(strings.TrimPrefix(msg.Channel, channelPrefix))
			if err != nil {
				continue
			}
			h.broadcast(kanbanID, []byte(msg.Payload))

		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) broadcast(kanbanID uuid.UUID, payload []byte) {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	for client := range h.clients[kanbanID] {
		select {
		case client.send <- payload:
		default:
			// Slow consumer, drop the event rather than block the relay
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The stream is one-way; inbound frames only keep the connection alive
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

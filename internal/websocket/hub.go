package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"study-tutor-be/internal/entity"
	"study-tutor-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "cluster_events"

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance relay, nil when running single
	// instance
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

func encodeNotification(notification entity.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}

func (h *Hub) sendLocal(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[userID]...)
	h.mu.RUnlock()

	h.deliver(clients, data)
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	var clients []*Client
	for _, list := range h.clients {
		clients = append(clients, list...)
	}
	h.mu.RUnlock()

	h.deliver(clients, data)
}

// deliver pushes data to each client, dropping clients whose send buffer is
// full. The lock must not be held here: dropping goes through h.unregister,
// whose handler takes the write lock and owns the single close of Send.
func (h *Hub) deliver(clients []*Client, data []byte) {
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
			h.unregister <- client
		}
	}
}

func (h *Hub) relayToCluster(targetUserID string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"target_user_id": targetUserID,
		"message":        data,
	})
	h.rdb.Publish(context.Background(), clusterChannel, payload)
}

// Send delivers a notification to one user's connections, local and remote.
func (h *Hub) Send(userID uuid.UUID, notification entity.Notification) {
	data := encodeNotification(notification)
	h.sendLocal(userID, data)
	h.relayToCluster(userID.String(), data)
}

// Broadcast delivers a notification to every connected client.
func (h *Hub) Broadcast(notification entity.Notification) {
	data := encodeNotification(notification)
	h.broadcastLocal(data)
	h.relayToCluster("*", data)
}

// subscribeToRedis receives messages published by other instances and
// forwards them to locally connected clients.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}

		if payload.TargetUserID == "*" {
			h.broadcastLocal(payload.Message)
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.sendLocal(uid, payload.Message)
	}
}

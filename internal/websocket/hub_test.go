package websocket

import (
	"testing"
	"time"

	"study-tutor-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type quietLogger struct{}

func (quietLogger) Debug(string, string, map[string]interface{}) {}
func (quietLogger) Info(string, string, map[string]interface{})  {}
func (quietLogger) Warn(string, string, map[string]interface{})  {}
func (quietLogger) Error(string, string, map[string]interface{}) {}
func (quietLogger) Sync() error                                  { return nil }

// addClient registers directly through the map so the test does not race
// the register channel handoff.
func addClient(hub *Hub, client *Client) {
	hub.mu.Lock()
	hub.clients[client.UserID] = append(hub.clients[client.UserID], client)
	hub.mu.Unlock()
}

func waitForClose(t *testing.T, ch chan []byte) {
	t.Helper()
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "expected closed channel, got a message")
	case <-time.After(2 * time.Second):
		t.Fatal("client was not dropped")
	}
}

func TestHubDropsSlowClientAndKeepsRunning(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	userID := uuid.New()

	// Unbuffered Send with no reader: the delivery attempt finds the buffer
	// full and the client must be dropped.
	slow := &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	addClient(hub, slow)

	hub.Send(userID, entity.Notification{Title: "first"})

	// The unregister handler closes Send exactly once; a second close here
	// would panic the hub goroutine.
	waitForClose(t, slow.Send)

	// The hub goroutine survived and still delivers to healthy clients.
	healthy := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 8)}
	addClient(hub, healthy)

	hub.Send(userID, entity.Notification{Title: "second"})

	select {
	case msg := <-healthy.Send:
		assert.Contains(t, string(msg), "second")
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped delivering after dropping a client")
	}
}

func TestHubBroadcastDropsEverySlowClient(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	// Two stuck clients back to back; the broadcast must drop both and
	// return instead of wedging on its own lock.
	first := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte)}
	second := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte)}
	addClient(hub, first)
	addClient(hub, second)

	done := make(chan struct{})
	go func() {
		hub.Broadcast(entity.Notification{Title: "everyone"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast did not return")
	}

	waitForClose(t, first.Send)
	waitForClose(t, second.Send)
}

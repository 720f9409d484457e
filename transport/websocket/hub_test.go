package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/knight-board/game/report"
	"github.com/wricardo/knight-board/game/runs"
)

func testRun(id, status string) *runs.Run {
	return &runs.Run{
		ID:       id,
		Commands: []string{"START 0,0,NORTH"},
		Result:   report.Document{Status: status},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within 1s")
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)

	if hub.topics == nil {
		t.Error("Hub topics map is nil")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("Hub channels not initialised")
	}
}

func TestHubRegisterAndUnregisterClient(t *testing.T) {
	hub := NewHub(nil)

	client := &Client{hub: hub, topic: "SUCCESS", send: make(chan []byte, 1)}

	hub.registerClient(client)
	if hub.ClientCount("SUCCESS") != 1 {
		t.Fatalf("Expected 1 client, got %d", hub.ClientCount("SUCCESS"))
	}

	hub.unregisterClient(client)
	if _, exists := hub.topics["SUCCESS"]; exists {
		t.Error("Topic should have been cleaned up")
	}
	if _, ok := <-client.send; ok {
		t.Error("Send channel should be closed")
	}

	// A second unregister is a no-op
	hub.unregisterClient(client)
}

func TestHubBroadcastRouting(t *testing.T) {
	hub := NewHub(nil)

	all := &Client{hub: hub, topic: allTopic, send: make(chan []byte, 4)}
	failures := &Client{hub: hub, topic: "OUT_OF_THE_BOARD", send: make(chan []byte, 4)}
	successes := &Client{hub: hub, topic: "SUCCESS", send: make(chan []byte, 4)}
	for _, c := range []*Client{all, failures, successes} {
		hub.registerClient(c)
	}

	hub.broadcastMessage(&Message{Event: EventRunCompleted, RunID: "r1", Status: "OUT_OF_THE_BOARD"})

	if len(all.send) != 1 {
		t.Errorf("catch-all client got %d messages, want 1", len(all.send))
	}
	if len(failures.send) != 1 {
		t.Errorf("status client got %d messages, want 1", len(failures.send))
	}
	if len(successes.send) != 0 {
		t.Errorf("unrelated client got %d messages, want 0", len(successes.send))
	}

	var message Message
	if err := json.Unmarshal(<-failures.send, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if message.RunID != "r1" || message.Event != EventRunCompleted {
		t.Errorf("Unexpected message %+v", message)
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub(nil)
	slow := &Client{hub: hub, topic: allTopic, send: make(chan []byte)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{Event: EventRunCompleted, RunID: "r1", Status: "SUCCESS"})

	if hub.ClientCount(allTopic) != 0 {
		t.Error("Slow client should have been dropped")
	}
}

func TestPublishRunNeverBlocks(t *testing.T) {
	hub := NewHub(nil)

	// No Run loop is draining the queue
	for i := 0; i < cap(hub.broadcast)+10; i++ {
		hub.PublishRun(testRun("r", "SUCCESS"))
	}
	hub.PublishRun(nil)

	if len(hub.broadcast) != cap(hub.broadcast) {
		t.Errorf("queue holds %d messages, want %d", len(hub.broadcast), cap(hub.broadcast))
	}
}

func newTestServer(t *testing.T, hub *Hub) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("status"))
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWebSocketLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	conn, _, err := websocket.DefaultDialer.Dial(newTestServer(t, hub)+"?status=SUCCESS", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}

	waitFor(t, func() bool { return hub.ClientCount("SUCCESS") == 1 })

	conn.Close()

	waitFor(t, func() bool { return hub.ClientCount("SUCCESS") == 0 })
}

func TestWebSocketReceivesPublishedRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	conn, _, err := websocket.DefaultDialer.Dial(newTestServer(t, hub), nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.ClientCount(allTopic) == 1 })

	hub.PublishRun(testRun("run-42", "INVALID_START_POSITION"))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if message.RunID != "run-42" || message.Status != "INVALID_START_POSITION" {
		t.Errorf("Unexpected message %+v", message)
	}
	if message.Run == nil || len(message.Run.Commands) != 1 {
		t.Error("Run payload not delivered")
	}
}

func TestHubStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	conn, _, err := websocket.DefaultDialer.Dial(newTestServer(t, hub), nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()
	waitFor(t, func() bool { return hub.ClientCount(allTopic) == 1 })

	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	if hub.ClientCount(allTopic) != 0 {
		t.Error("clients should be closed on shutdown")
	}
}

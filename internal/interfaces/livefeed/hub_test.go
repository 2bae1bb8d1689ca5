package livefeed

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/smarteck4/cricket-auction-pro/internal/platform/logging"
	"github.com/smarteck4/cricket-auction-pro/internal/usecase"
)

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(hub)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial hub: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}

	var event Event
	if err := sonic.Unmarshal(frame, &event); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	return event
}

func TestHub_SnapshotOnConnect(t *testing.T) {
	hub := NewHub(logging.NewNop(), func(context.Context) (any, error) {
		return map[string]any{"isActive": true, "currentBid": 450}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialTestHub(t, hub)

	event := readEvent(t, conn)
	if event.Type != EventTypeSnapshot {
		t.Fatalf("expected snapshot event, got %q", event.Type)
	}
	payload, ok := event.Payload.(map[string]any)
	if !ok {
		t.Fatalf("expected object payload, got %T", event.Payload)
	}
	if active, _ := payload["isActive"].(bool); !active {
		t.Fatalf("expected isActive=true in snapshot payload")
	}
}

func TestHub_GreetAfterDisconnectDoesNotPanic(t *testing.T) {
	snapshotReady := make(chan struct{})
	hub := NewHub(logging.NewNop(), func(context.Context) (any, error) {
		<-snapshotReady
		return map[string]any{"isActive": false}, nil
	})

	c := &client{hub: hub, send: make(chan []byte, 1)}
	hub.mu.Lock()
	hub.clients[c] = struct{}{}
	hub.mu.Unlock()

	greeted := make(chan struct{})
	go func() {
		defer close(greeted)
		hub.greet(context.Background(), c)
	}()

	// The client disconnects while its snapshot is still being built.
	hub.drop(c)
	close(snapshotReady)

	select {
	case <-greeted:
	case <-time.After(2 * time.Second):
		t.Fatal("greet did not return")
	}
	if _, ok := <-c.send; ok {
		t.Fatal("expected no greeting after the client dropped")
	}
}

func TestHub_ShutdownDisconnectsClients(t *testing.T) {
	hub := NewHub(logging.NewNop(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	conn := dialTestHub(t, hub)
	time.Sleep(50 * time.Millisecond)

	cancel()

	select {
	case <-hub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop on context cancellation")
	}

	// closeAll drains into the write pump, which hands the client a close
	// frame before tearing the connection down.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected connection to close after hub shutdown")
	}
}

func TestHub_BroadcastsPublishedEvents(t *testing.T) {
	hub := NewHub(logging.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialTestHub(t, hub)

	// Registration races the publish; give the hub a beat to add the client.
	time.Sleep(50 * time.Millisecond)

	hub.Publish(usecase.EventAuctionBid, map[string]any{"amount": 500, "ownerId": "own-a"})

	event := readEvent(t, conn)
	if event.Type != usecase.EventAuctionBid {
		t.Fatalf("expected %q event, got %q", usecase.EventAuctionBid, event.Type)
	}
	if event.OccurredAt.IsZero() {
		t.Fatalf("expected event timestamp to be set")
	}
}

package livefeed

import (
	"context"
	"net/http"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/valyala/bytebufferpool"

	"github.com/smarteck4/cricket-auction-pro/internal/platform/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SnapshotFunc builds the greeting payload for a freshly connected client.
type SnapshotFunc func(ctx context.Context) (any, error)

// Hub maintains the set of connected live-feed clients and fans auction and
// scoring events out to them. It implements usecase.Publisher.
type Hub struct {
	logger     *logging.Logger
	snapshot   SnapshotFunc
	clients    map[*client]struct{}
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex
	now        func() time.Time
}

func NewHub(logger *logging.Logger, snapshot SnapshotFunc) *Hub {
	if logger == nil {
		logger = logging.Default()
	}
	return &Hub{
		logger:     logger,
		snapshot:   snapshot,
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		now:        time.Now,
	}
}

// Run handles registration and broadcasting until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("live-feed client connected", "total_clients", total)

			go h.greet(ctx, c)

		case c := <-h.unregister:
			h.drop(c)

		case frame := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					// Slow client; evict rather than block the feed.
					go func(c *client) {
						select {
						case h.unregister <- c:
						case <-h.done:
						}
					}(c)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish implements usecase.Publisher. Delivery is best-effort: when the
// broadcast queue is full the event is dropped, never blocking the caller.
func (h *Hub) Publish(eventType string, payload any) {
	frame, ok := h.encode(Event{
		Type:       eventType,
		OccurredAt: h.now().UTC(),
		Payload:    payload,
	})
	if !ok {
		return
	}

	select {
	case h.broadcast <- frame:
	default:
		h.logger.Warn("live-feed broadcast queue full, dropping event", "type", eventType)
	}
}

func (h *Hub) encode(event Event) ([]byte, bool) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		h.logger.Error("encode live-feed event failed", "type", event.Type, "error", err)
		return nil, false
	}

	frame := make([]byte, buf.Len())
	copy(frame, buf.Bytes())
	return frame, true
}

func (h *Hub) greet(ctx context.Context, c *client) {
	if h.snapshot == nil {
		return
	}

	payload, err := h.snapshot(ctx)
	if err != nil {
		h.logger.Warn("build live-feed snapshot failed", "error", err)
		return
	}

	frame, ok := h.encode(Event{
		Type:       EventTypeSnapshot,
		OccurredAt: h.now().UTC(),
		Payload:    payload,
	})
	if !ok {
		return
	}

	// Only drop and closeAll close c.send, and both hold the write lock.
	// Delivering under the read lock after a membership check means the
	// channel cannot be closed mid-send when a client disconnects before
	// its greeting is ready.
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Debug("live-feed client disconnected", "total_clients", len(h.clients))
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// ServeHTTP upgrades the request and attaches the client to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("live-feed upgrade failed", "error", err)
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

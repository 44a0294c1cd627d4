package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"firmgen-server/internal/data_plane/workers"
	"firmgen-server/internal/firmware/events"
	"firmgen-server/internal/infra/async"
	"firmgen-server/internal/infra/httpserver"

	"github.com/gorilla/websocket"
)

const (
	_writeWait  = 10 * time.Second
	_pongWait   = 60 * time.Second
	_pingPeriod = (_pongWait * 9) / 10
	_readLimit  = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewLiveFeedController(broker async.Broker) *LiveFeedController {
	return &LiveFeedController{
		broker: broker,
		hubs: map[string]*feedHub{
			"GET /ws/telemetry": newFeedHub(workers.BrokerTopicSamples),
			"GET /ws/builds":    newFeedHub(events.FeedTopic),
		},
	}
}

var (
	_ httpserver.Controller = (*LiveFeedController)(nil)
	_ async.Worker          = (*LiveFeedController)(nil)
)

// LiveFeedController streams broker topics to websocket clients: decoded
// telemetry samples and build announcements. Each message value is written
// as one JSON text frame.
type LiveFeedController struct {
	broker async.Broker
	hubs   map[string]*feedHub
	cancel context.CancelFunc
	mu     sync.Mutex
}

func (c *LiveFeedController) AddRoutes(router *http.ServeMux) {
	for pattern, hub := range c.hubs {
		router.Handle(pattern, c.handleWebSocket(hub))
	}
}

// Run relays broker messages to connected clients until ctx is done.
func (c *LiveFeedController) Run(ctx context.Context, done func()) {
	defer done()

	c.mu.Lock()
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	var wg sync.WaitGroup
	for _, hub := range c.hubs {
		subscription := c.broker.Subscribe(hub.topic)
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.relay(ctx, subscription.Receiver)
			_ = c.broker.Unsubscribe(hub.topic, subscription)
		}()
	}
	wg.Wait()

	for _, hub := range c.hubs {
		hub.closeAll()
	}
}

func (c *LiveFeedController) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *LiveFeedController) handleWebSocket(hub *feedHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		slog.Info("websocket client connected",
			slog.String("topic", string(hub.topic)),
			slog.String("remote_addr", r.RemoteAddr))
		hub.register(conn)
		go hub.readPump(conn)
	}
}

type feedHub struct {
	topic   async.Topic
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newFeedHub(topic async.Topic) *feedHub {
	return &feedHub{
		topic:   topic,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

func (h *feedHub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *feedHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
}

func (h *feedHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(_writeWait))
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

// readPump discards client frames and keeps the read deadline fresh through
// pongs. It unregisters the client once the connection fails.
func (h *feedHub) readPump(conn *websocket.Conn) {
	defer h.unregister(conn)

	conn.SetReadLimit(_readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(_pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(_pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (h *feedHub) relay(ctx context.Context, messages <-chan async.Message) {
	ping := time.NewTicker(_pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			h.broadcast(func(conn *websocket.Conn) error {
				return conn.WriteJSON(msg.Value)
			})
		case <-ping.C:
			h.broadcast(func(conn *websocket.Conn) error {
				return conn.WriteMessage(websocket.PingMessage, nil)
			})
		}
	}
}

// broadcast writes to every client while holding the hub lock, which keeps
// a single writer per connection.
func (h *feedHub) broadcast(write func(*websocket.Conn) error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(_writeWait))
		if err := write(conn); err != nil {
			slog.Warn("dropping websocket client", slog.String("topic", string(h.topic)), slog.String("error", err.Error()))
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}

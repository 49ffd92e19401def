package broadcast

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/pulsecast/pulsecast/internal/metrics"
)

// Client is the registry's handle to one connected subscriber. Identity is
// pointer identity; a reconnect produces a brand-new Client. The id exists
// for logging only.
type Client struct {
	id     uuid.UUID
	conn   *websocket.Conn
	writer *clientWriter
}

// ID returns the client's identifier for logging and diagnostics.
func (c *Client) ID() uuid.UUID {
	return c.id
}

// Backend is the process-wide connection registry and broadcast engine.
// Constructed once at startup, injected into collaborators, torn down via
// Close at shutdown. Purely in-memory; state resets on restart.
type Backend struct {
	mu      sync.RWMutex
	clients map[*Client]map[string]struct{}
	clock   clockwork.Clock
}

// NewBackend creates an empty backend. The clock is injected so tests can
// control write-pump timers.
func NewBackend(clock clockwork.Clock) *Backend {
	return &Backend{
		clients: make(map[*Client]map[string]struct{}),
		clock:   clock,
	}
}

// Register inserts a freshly upgraded connection with an empty subscription
// set and starts its write pump. The caller must guarantee one Register per
// connection and must pair it with exactly one Unregister on every exit path.
func (b *Backend) Register(conn *websocket.Conn) *Client {
	client := &Client{
		id:     uuid.New(),
		conn:   conn,
		writer: newClientWriter(conn, b.clock),
	}

	b.mu.Lock()
	b.clients[client] = make(map[string]struct{})
	total := len(b.clients)
	b.mu.Unlock()

	metrics.BroadcastActiveConnections.Set(float64(total))
	slog.Debug("Client registered", "client_id", client.id.String(), "total_connections", total)
	return client
}

// Unregister removes the client and its subscription set and stops its write
// pump. Calling it for a client that was never registered or was already
// removed is a no-op; disconnect detection and explicit cleanup may race.
func (b *Backend) Unregister(client *Client) {
	b.mu.Lock()
	subscriptions, exists := b.clients[client]
	if exists {
		delete(b.clients, client)
	}
	total := len(b.clients)
	b.mu.Unlock()

	if !exists {
		return
	}

	client.writer.stop()

	metrics.BroadcastActiveConnections.Set(float64(total))
	metrics.BroadcastActiveSubscriptions.Sub(float64(len(subscriptions)))
	slog.Debug("Client unregistered", "client_id", client.id.String(), "total_connections", total)
}

// Subscribe adds the channels to the client's subscription set (union,
// duplicates collapse). Silently ignored if the client is no longer
// registered - a control frame arriving after disconnect is stale.
func (b *Backend) Subscribe(client *Client, channels []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscriptions, exists := b.clients[client]
	if !exists {
		return
	}

	added := 0
	for _, channel := range channels {
		if _, ok := subscriptions[channel]; !ok {
			subscriptions[channel] = struct{}{}
			added++
		}
	}
	metrics.BroadcastActiveSubscriptions.Add(float64(added))
	slog.Debug("Client subscribed", "client_id", client.id.String(), "channels", channels)
}

// Unsubscribe removes the channels from the client's subscription set (set
// difference). Same silent no-op rule as Subscribe for unregistered clients.
func (b *Backend) Unsubscribe(client *Client, channels []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscriptions, exists := b.clients[client]
	if !exists {
		return
	}

	removed := 0
	for _, channel := range channels {
		if _, ok := subscriptions[channel]; ok {
			delete(subscriptions, channel)
			removed++
		}
	}
	metrics.BroadcastActiveSubscriptions.Sub(float64(removed))
	slog.Debug("Client unsubscribed", "client_id", client.id.String(), "channels", channels)
}

// Publish fans a message out to every client currently subscribed to the
// channel. The envelope is marshaled once; the matching write pumps are
// snapshotted under the read lock and frames are enqueued outside it, so no
// network send ever happens while the registry is locked. A full client
// buffer drops the frame for that client only. Publish never fails the
// caller and never mutates the registry.
func (b *Backend) Publish(channel, eventType string, payload map[string]any) {
	start := b.clock.Now()

	envelope := Envelope{Channel: channel, Event: eventType, Payload: payload}
	data, err := json.Marshal(envelope)
	if err != nil {
		slog.Error("Failed to marshal broadcast envelope", "channel", channel, "event", eventType, "error", err)
		return
	}

	b.mu.RLock()
	var targets []*clientWriter
	for client, subscriptions := range b.clients {
		if _, ok := subscriptions[channel]; ok {
			targets = append(targets, client.writer)
		}
	}
	b.mu.RUnlock()

	for _, writer := range targets {
		if writer.enqueue(data) {
			metrics.BroadcastMessagesDispatched.Inc()
		} else {
			metrics.BroadcastMessagesDropped.Inc()
		}
	}

	metrics.BroadcastMessagesPublished.Inc()
	metrics.BroadcastPublishDuration.Observe(b.clock.Since(start).Seconds())
	slog.Debug("Message published", "channel", channel, "event", eventType, "subscribers", len(targets))
}

// SubscriberCount returns how many registered clients currently subscribe to
// the channel. Advisory only; the count may be stale by the time the caller
// acts on it.
func (b *Backend) SubscriberCount(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subscriptions := range b.clients {
		if _, ok := subscriptions[channel]; ok {
			count++
		}
	}
	return count
}

// TotalConnections returns the number of currently registered clients.
func (b *Backend) TotalConnections() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Healthy reports whether the backend can accept connections and publishes.
// The in-memory backend has no external dependency to probe.
func (b *Backend) Healthy() bool {
	return true
}

// Close forcibly closes every registered connection with a close frame and
// clears all state. Used at process shutdown.
func (b *Backend) Close() {
	b.mu.Lock()
	clients := b.clients
	b.clients = make(map[*Client]map[string]struct{})
	b.mu.Unlock()

	slog.Info("Backend shutting down", "connections", len(clients))

	for client := range clients {
		client.writer.stopGraceful("server shutting down")
	}

	metrics.BroadcastActiveConnections.Set(0)
	metrics.BroadcastActiveSubscriptions.Set(0)
}

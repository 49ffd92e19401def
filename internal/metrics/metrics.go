// Package metrics defines Prometheus collectors for the broadcast fan-out path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Broadcast engine metrics
var (
	// BroadcastActiveConnections tracks currently registered WebSocket connections
	BroadcastActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcast_active_connections",
			Help: "Number of currently registered WebSocket connections",
		},
	)

	// BroadcastActiveSubscriptions tracks channel subscriptions across all connections
	BroadcastActiveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcast_active_subscriptions",
			Help: "Number of channel subscriptions across all connections",
		},
	)

	// BroadcastMessagesPublished tracks Publish calls
	BroadcastMessagesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_messages_published_total",
			Help: "Total messages published to the broadcast engine",
		},
	)

	// BroadcastMessagesDispatched tracks frames handed to per-connection write pumps
	BroadcastMessagesDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_messages_dispatched_total",
			Help: "Total frames dispatched to subscriber write pumps",
		},
	)

	// BroadcastMessagesDropped tracks frames dropped because a client buffer was full
	BroadcastMessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_messages_dropped_total",
			Help: "Total frames dropped because a subscriber write buffer was full",
		},
	)

	// BroadcastPublishDuration tracks Publish latency (marshal + snapshot + enqueue)
	BroadcastPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "broadcast_publish_duration_seconds",
			Help:    "Publish duration in seconds (marshal, snapshot, enqueue)",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1},
		},
	)
)

// WebSocket transport metrics
var (
	// WebSocketMessageSendDuration tracks per-frame write latency
	WebSocketMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "websocket_message_send_duration_seconds",
			Help:    "WebSocket frame write duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// WebSocketPingFailures tracks failed keepalive pings
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Total failed keepalive pings",
		},
	)

	// WebSocketControlFramesIgnored tracks inbound frames with no recognized instruction
	WebSocketControlFramesIgnored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_control_frames_ignored_total",
			Help: "Total inbound control frames ignored as unrecognized or malformed",
		},
	)

	// WebSocketConnectionsRejected tracks connections rejected before registration
	WebSocketConnectionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_connections_rejected_total",
			Help: "Total WebSocket connections rejected before registration, by reason",
		},
		[]string{"reason"},
	)
)

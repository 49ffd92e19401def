package broadcast

import (
	"encoding/json"
	"log/slog"

	"github.com/pulsecast/pulsecast/internal/metrics"
)

// ReadLoop reads inbound control frames for one client until the connection
// closes or errors, translating them into registry calls. Frames are
// processed one at a time in arrival order. The loop never unregisters;
// the caller owns cleanup and must call Unregister on every exit path.
func (b *Backend) ReadLoop(client *Client) {
	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			slog.Debug("Client read loop ended", "client_id", client.id.String(), "error", err)
			return
		}
		b.handleControlFrame(client, data)
	}
}

// handleControlFrame applies one inbound frame. Recognized shapes:
//
//	{"subscribe":   ["channel", ...]}
//	{"unsubscribe": ["channel", ...]}
//
// Both keys may appear in a single frame. Anything else - undecodable JSON,
// unknown keys, or a non-list channel value - is ignored and the connection
// stays open. Unknown instructions are not errors.
func (b *Backend) handleControlFrame(client *Client, data []byte) {
	var frame map[string]json.RawMessage
	if err := json.Unmarshal(data, &frame); err != nil {
		metrics.WebSocketControlFramesIgnored.Inc()
		slog.Debug("Ignoring undecodable control frame", "client_id", client.id.String(), "error", err)
		return
	}

	handled := false
	if raw, ok := frame["subscribe"]; ok {
		if channels, ok := decodeChannelList(raw); ok {
			b.Subscribe(client, channels)
			handled = true
		}
	}
	if raw, ok := frame["unsubscribe"]; ok {
		if channels, ok := decodeChannelList(raw); ok {
			b.Unsubscribe(client, channels)
			handled = true
		}
	}

	if !handled {
		metrics.WebSocketControlFramesIgnored.Inc()
		slog.Debug("Ignoring unrecognized control frame", "client_id", client.id.String())
	}
}

func decodeChannelList(raw json.RawMessage) ([]string, bool) {
	var channels []string
	if err := json.Unmarshal(raw, &channels); err != nil {
		return nil, false
	}
	return channels, true
}

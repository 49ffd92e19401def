package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postBroadcast(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(url+"/api/broadcast", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHandleBroadcast_Validation(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"missing channel", `{"event_type": "updated", "payload": {}}`},
		{"missing event type", `{"channel": "order", "payload": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postBroadcast(t, ts.URL, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "validation", body["type"])
		})
	}
}

func TestHandleBroadcast_NoSubscribers(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, body := postBroadcast(t, ts.URL, `{"channel": "order", "event_type": "updated", "payload": {"entity_id": "42"}}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "order", body["channel"])
	assert.Equal(t, "updated", body["event_type"])
	assert.Equal(t, float64(0), body["subscriber_count"])
}

func TestHandleBroadcast_EndToEnd(t *testing.T) {
	ts, backend := newTestServer(t, nil)

	conn := dialWebSocket(t, ts)
	require.NoError(t, conn.WriteMessage(ws.TextMessage, []byte(`{"subscribe": ["order"]}`)))
	require.True(t, waitFor(func() bool { return backend.SubscriberCount("order") == 1 }))

	resp, body := postBroadcast(t, ts.URL, `{"channel": "order", "event_type": "updated", "payload": {"entity_id": "42"}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["subscriber_count"])

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame map[string]any
	require.NoError(t, json.Unmarshal(data, &frame))
	assert.Equal(t, "order", frame["channel"])
	assert.Equal(t, "updated", frame["event"])
	assert.Equal(t, map[string]any{"entity_id": "42"}, frame["payload"])
}

func TestHandleBroadcast_UnsubscribedChannelNotDelivered(t *testing.T) {
	ts, backend := newTestServer(t, nil)

	conn := dialWebSocket(t, ts)
	require.NoError(t, conn.WriteMessage(ws.TextMessage, []byte(`{"subscribe": ["order", "contact"]}`)))
	require.True(t, waitFor(func() bool { return backend.SubscriberCount("contact") == 1 }))

	require.NoError(t, conn.WriteMessage(ws.TextMessage, []byte(`{"unsubscribe": ["contact"]}`)))
	require.True(t, waitFor(func() bool { return backend.SubscriberCount("contact") == 0 }))

	postBroadcast(t, ts.URL, `{"channel": "contact", "event_type": "updated", "payload": {}}`)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "expected no frame for unsubscribed channel")
}

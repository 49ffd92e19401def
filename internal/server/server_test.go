package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/pulsecast/pulsecast/internal/broadcast"
	"github.com/pulsecast/pulsecast/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                  "development",
		Port:                    "0",
		AppURL:                  "http://localhost:8080",
		LogLevel:                "error",
		LogFormat:               "text",
		MaxWebSocketConnections: 100,
		MaxConnectionsPerIP:     100,
		BroadcastRatePerSecond:  1000,
		BroadcastRateBurst:      1000,
	}
}

// newTestServer builds a Server around a fresh backend and serves it via httptest.
func newTestServer(t *testing.T, cfg *config.Config) (*httptest.Server, *broadcast.Backend) {
	t.Helper()

	if cfg == nil {
		cfg = testConfig()
	}

	backend := broadcast.NewBackend(clockwork.NewRealClock())
	t.Cleanup(backend.Close)

	srv := NewServer(cfg, backend)
	ts := httptest.NewServer(srv.echo)
	t.Cleanup(ts.Close)

	return ts, backend
}

// dialWebSocket connects a subscriber to the test server's WebSocket endpoint.
func dialWebSocket(t *testing.T, ts *httptest.Server) *ws.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/broadcast"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitFor polls until the condition holds or a second passes.
func waitFor(cond func() bool) bool {
	for _i := 0; _i < 200; _i++ {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

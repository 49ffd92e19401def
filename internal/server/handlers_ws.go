package server

import (
	"fmt"

	"github.com/labstack/echo/v4"

	apperrors "github.com/pulsecast/pulsecast/internal/errors"
	"github.com/pulsecast/pulsecast/internal/metrics"
)

// handleWebSocket accepts a subscriber connection: connection limits are
// checked before the upgrade, then the connection is registered and its
// inbound control frames are read until it closes. Unregister runs on every
// exit path exactly once.
func (s *Server) handleWebSocket(c echo.Context) error {
	ip := c.RealIP()

	if !s.globalLimiter.Acquire() {
		metrics.WebSocketConnectionsRejected.WithLabelValues("global_limit").Inc()
		return apperrors.CapacityError("connection limit reached")
	}
	defer s.globalLimiter.Release()

	if !s.ipLimiter.Acquire(ip) {
		metrics.WebSocketConnectionsRejected.WithLabelValues("ip_limit").Inc()
		return apperrors.CapacityError("per-IP connection limit reached").WithField("ip", ip)
	}
	defer s.ipLimiter.Release(ip)

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		metrics.WebSocketConnectionsRejected.WithLabelValues("upgrade_failed").Inc()
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	client := s.backend.Register(conn)
	defer s.backend.Unregister(client)

	// Blocks until the connection closes or errors
	s.backend.ReadLoop(client)

	return nil
}

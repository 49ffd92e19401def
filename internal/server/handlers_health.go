package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pulsecast/pulsecast/internal/version"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	healthy := s.backend.Healthy()

	status := "ready"
	code := 200
	if !healthy {
		status = "unhealthy"
		code = 503
	}

	return c.JSON(code, map[string]any{
		"status":            status,
		"backend_type":      "websocket",
		"backend_healthy":   healthy,
		"total_connections": s.backend.TotalConnections(),
	})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}

package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Broadcast trigger API (rate limited per IP)
	s.echo.POST("/api/broadcast", s.handleBroadcast,
		newRateLimiter(s.config.BroadcastRatePerSecond, s.config.BroadcastRateBurst))

	// WebSocket endpoint
	s.echo.GET("/ws/broadcast", s.handleWebSocket)
}

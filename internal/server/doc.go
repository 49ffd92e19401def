// Package server implements the HTTP server using Echo framework.
//
// Routes: WebSocket endpoint (/ws/broadcast), broadcast trigger API, health,
// metrics, and version. Handlers split by concern: handlers_ws.go,
// handlers_api.go, handlers_health.go.
package server

package server

import (
	"fmt"

	"github.com/labstack/echo/v4"

	apperrors "github.com/pulsecast/pulsecast/internal/errors"
)

type broadcastRequest struct {
	Channel   string         `json:"channel"`
	EventType string         `json:"event_type"`
	Payload   map[string]any `json:"payload"`
}

type broadcastResponse struct {
	Success         bool   `json:"success"`
	Channel         string `json:"channel"`
	EventType       string `json:"event_type"`
	SubscriberCount int    `json:"subscriber_count"`
}

// handleBroadcast triggers a fan-out programmatically. Business-logic
// callers publish the same way after their mutations; delivery is
// best-effort and the response never reflects per-subscriber send outcomes.
func (s *Server) handleBroadcast(c echo.Context) error {
	var req broadcastRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Channel == "" {
		return apperrors.ValidationError("channel is required")
	}
	if req.EventType == "" {
		return apperrors.ValidationError("event_type is required")
	}

	s.backend.Publish(req.Channel, req.EventType, req.Payload)

	resp := broadcastResponse{
		Success:         true,
		Channel:         req.Channel,
		EventType:       req.EventType,
		SubscriberCount: s.backend.SubscriberCount(req.Channel),
	}
	if err := c.JSON(200, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pulsecast/pulsecast/internal/broadcast"
	"github.com/pulsecast/pulsecast/internal/config"
	apperrors "github.com/pulsecast/pulsecast/internal/errors"
)

type Server struct {
	echo          *echo.Echo
	config        *config.Config
	backend       *broadcast.Backend
	upgrader      websocket.Upgrader
	globalLimiter *GlobalConnectionLimiter
	ipLimiter     *IPConnectionLimiter
	startTime     time.Time
}

func NewServer(cfg *config.Config, backend *broadcast.Backend) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:    e,
		config:  cfg,
		backend: backend,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     NewCheckOrigin(cfg.AppURL, cfg.IsDevelopment()),
		},
		globalLimiter: NewGlobalConnectionLimiter(int64(cfg.MaxWebSocketConnections)),
		ipLimiter:     NewIPConnectionLimiter(cfg.MaxConnectionsPerIP),
		startTime:     time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

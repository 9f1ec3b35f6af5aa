// Package http hosts the echo server that fronts every HTTP route.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"chirp/config"
	"chirp/internal/delivery/http/middleware"
	"chirp/internal/delivery/http/router"
	"chirp/internal/delivery/http/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the echo instance together with its lifecycle.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// NewServer assembles the echo instance with the shared middleware chain and
// registers every route.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	r *router.Router,
	errMiddleware *middleware.ErrorMiddleware,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = errMiddleware.HandleHTTPError
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RequestID(logger))
	e.Use(slogecho.New(logger))

	r.Register(e)

	e.Server.ReadTimeout = cfg.HTTP.Timeouts.ReadTimeout
	e.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	e.Server.WriteTimeout = cfg.HTTP.Timeouts.WriteTimeout
	e.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	return &Server{
		cfg:    cfg,
		logger: logger,
		server: e,
	}
}

// Serve blocks serving requests until the listener fails or Shutdown runs.
func (s *Server) Serve() error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("hostPort", hostPort))

	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}

package ops

import (
	"context"
	"log/slog"
	"net/http"

	"homiio/config"
	"homiio/internal/domain/lifecycle"
	"homiio/internal/errors"
	"homiio/internal/usecase"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// ServerParams holds dependencies for the ops server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	Registry  *prometheus.Registry
	Migration usecase.MigrationUsecase
}

// Server exposes the scrape endpoint and a read-only migration status while
// a migration runs.
type Server struct {
	addr   string
	logger *slog.Logger
	server *echo.Echo
}

func NewServer(params ServerParams) *Server {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(requestID)
	echoServer.Use(accessLog(params.Logger, params.Cfg.Env.Debug))
	echoServer.HTTPErrorHandler = errorHandler(params.Logger)

	h := &statusHandler{migration: params.Migration}
	echoServer.GET("/healthz", h.health)
	echoServer.GET("/migration/status", h.status)
	echoServer.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{
		Registry: params.Registry,
	})))

	srv := &Server{
		addr:   params.Cfg.Metrics.Addr,
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv
}

// Serve blocks until the server is shut down.
func (s *Server) Serve(_ context.Context) error {
	s.logger.Info("Starting ops HTTP server", slog.String("host_port", s.addr))
	if err := s.server.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

// Handler exposes the routes without binding a port.
func (s *Server) Handler() http.Handler {
	return s.server
}

func (s *Server) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down ops HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}

type statusHandler struct {
	migration usecase.MigrationUsecase
}

func (h *statusHandler) health(c echo.Context) error {
	return success(c, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *statusHandler) status(c echo.Context) error {
	status, err := h.migration.Status(c.Request().Context())
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, status)
}

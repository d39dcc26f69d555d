// Package server exposes the catalog over HTTP: the rendered page, the
// JSON API, login, and PDF delivery.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/utsavgifts/catalogd/internal/engine"
	"github.com/utsavgifts/catalogd/internal/service"
	"github.com/utsavgifts/catalogd/internal/session"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr          string
	SessionSecret string
	SecureCookies bool
	HistoryLimit  int
	LogoURL       string
}

// Deps carries the services the server routes to.
type Deps struct {
	Source    service.ProductSource
	Creds     service.CredentialStore
	Audit     service.AuditSink
	History   service.HistoryStore
	Sessions  session.Store
	Generator service.Generator
	Engine    *engine.Engine
	Logger    *slog.Logger
}

// Server is the catalog HTTP server.
type Server struct {
	echo      *echo.Echo
	cfg       Config
	source    service.ProductSource
	creds     service.CredentialStore
	audit     service.AuditSink
	history   service.HistoryStore
	sessions  session.Store
	generator service.Generator
	engine    *engine.Engine
	logger    *slog.Logger
}

// New wires the routes and middleware.
func New(cfg Config, deps Deps) *Server {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 100
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Engine == nil {
		deps.Engine = engine.New(engine.Options{Logger: deps.Logger})
	}
	if deps.Sessions == nil {
		deps.Sessions = session.NewCookieStore([]byte(cfg.SessionSecret), cfg.SecureCookies)
	}

	s := &Server{
		echo:      echo.New(),
		cfg:       cfg,
		source:    deps.Source,
		creds:     deps.Creds,
		audit:     deps.Audit,
		history:   deps.History,
		sessions:  deps.Sessions,
		generator: deps.Generator,
		engine:    deps.Engine,
		logger:    deps.Logger,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/placeholder.png", s.handlePlaceholder)

	api := s.echo.Group("/api")
	api.GET("/products", s.handleProducts)
	api.POST("/login", s.handleLogin)
	api.POST("/logout", s.handleLogout)
	api.POST("/log", s.handleLog)
	api.GET("/history", s.handleHistory)
	api.POST("/generate-pdf", s.handleGeneratePDF)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("catalog server listening", "addr", s.cfg.Addr)
	if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			s.logger.Info("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start))
			return err
		}
	}
}

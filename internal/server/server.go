// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes search, the mock catalog, and the authentication
// stub as a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/orquideira/internal/account"
	"github.com/pdiddy/orquideira/internal/browse"
	"github.com/pdiddy/orquideira/internal/catalog"
	"github.com/pdiddy/orquideira/internal/logger"
	"github.com/pdiddy/orquideira/internal/search"
	"github.com/pdiddy/orquideira/pkg/types"
)

// DefaultTokenTTL is the session token lifetime when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// Deps are the services behind the API.
type Deps struct {
	Search  browse.Engine
	Catalog *catalog.Store
	Users   *account.Directory
	Prefs   *account.PrefsStore
}

// Server is the HTTP API.
type Server struct {
	e      *echo.Echo
	deps   Deps
	secret []byte
	ttl    time.Duration
}

// New builds the router. A JWT secret is required.
func New(cfg types.ServerConfig, deps Deps) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret not configured (server.jwt_secret or .secrets/jwt-secret)")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger)
	e.Use(requestMetrics)

	s := &Server{e: e, deps: deps, secret: []byte(cfg.JWTSecret), ttl: ttl}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.e.Group("/api")
	api.GET("/search", s.search)
	api.GET("/search/view", s.searchView)

	cat := api.Group("/catalog")
	cat.GET("/papers", s.catalogPapers)
	cat.GET("/researchers", s.catalogResearchers)
	cat.GET("/hot", s.hotPapers)
	api.GET("/researchers/:id", s.researcher)

	auth := api.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/register", s.register)
	auth.POST("/logout", s.logout)

	me := api.Group("/me", s.requireAuth)
	me.GET("", s.me)
	me.GET("/notifications", s.getPrefs)
	me.PUT("/notifications", s.putPrefs)
}

// ServeHTTP lets the server be mounted or tested without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		logger.For(ctx).Infof("listening on %s", addr)
		errc <- s.e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// errorHandler writes every failure as {"error": msg} with a status
// derived from the error.
func errorHandler(err error, c echo.Context) {
	code, msg := statusOf(err)
	entry := logger.For(c.Request().Context()).WithField("status", code).WithError(err)
	if code >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"error": msg})
}

func statusOf(err error) (int, string) {
	var (
		he      *echo.HTTPError
		upErr   *search.UpstreamError
		invalid *account.ValidationError
	)
	switch {
	case errors.As(err, &he):
		return he.Code, fmt.Sprint(he.Message)
	case errors.As(err, &upErr):
		return http.StatusBadGateway, err.Error()
	case errors.As(err, &invalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, search.ErrEmptyQuery), errors.Is(err, search.ErrUnknownMode):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, account.ErrInvalidCredentials), errors.Is(err, account.ErrNotLoggedIn):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, account.ErrDuplicateUser):
		return http.StatusConflict, err.Error()
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, browse.ErrNoSuchItem):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, context.Canceled):
		return 499, "request cancelled"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

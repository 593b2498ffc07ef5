// Package api exposes the search pipeline over HTTP for UI consumers.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joblens/joblens/internal/config"
	"github.com/joblens/joblens/internal/domain/job"
	"github.com/joblens/joblens/pkg/logging"
)

// Server wraps a gin router with an HTTP listener
type Server struct {
	logger *logging.Logger
	config config.Config

	srv     *http.Server
	started atomic.Bool
}

// NewServer constructs the search API server
func NewServer(log *logging.Logger, cfg config.Config, svc job.Service) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	h := newHandler(svc, log)

	apiGroup := router.Group("/api")
	apiGroup.GET("/jobs", h.search)
	apiGroup.GET("/jobs/:id", h.get)

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		logger: log,
		config: cfg,
		srv:    httpSrv,
	}
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("search API listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for search API server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("search API server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("search API server shutdown complete")
	return nil
}

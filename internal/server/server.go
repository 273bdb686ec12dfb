// Package server exposes a dashboard session as a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/colonyops/remark/internal/core/logging"
	"github.com/colonyops/remark/internal/dashboard"
)

// Options configures the API server.
type Options struct {
	Addr        string
	CORSOrigins []string
}

// Server serves the JSON API for one session.
type Server struct {
	session    *dashboard.Session
	httpServer *http.Server
	listener   net.Listener
	addr       string
	log        zerolog.Logger
}

// New builds a server over session.
func New(session *dashboard.Session, opts Options) *Server {
	s := &Server{
		session: session,
		addr:    opts.Addr,
		log:     logging.Component("server"),
	}

	s.httpServer = &http.Server{
		Handler:      s.routes(opts.CORSOrigins),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler returns the router, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) routes(origins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.log))

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Content-Type", "X-Requested-With", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handler{session: s.session}

	api := r.Group("/api")
	{
		api.GET("/view", h.view)
		api.PUT("/search", h.setSearch)
		api.PUT("/page", h.setPage)
		api.POST("/page/next", h.nextPage)
		api.POST("/page/prev", h.prevPage)

		api.POST("/comments/:id/:field/edit", h.edit)
		api.PUT("/comments/:id/:field", h.input)
		api.POST("/comments/:id/:field/commit", h.commit)
		api.POST("/comments/:id/:field/discard", h.discard)

		api.GET("/posts/:id/title", h.postTitle)
	}

	return r
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	s.log.Info().Str("addr", listener.Addr().String()).Msg("starting api server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("api server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down api server")
	return s.httpServer.Shutdown(ctx)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes segmentation, transformation, and the question
// bank over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/oakla/question-maker/internal/source"
	"github.com/oakla/question-maker/internal/store"
	"github.com/oakla/question-maker/internal/transform"
	"github.com/oakla/question-maker/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// Server routes API requests to the transform pipeline and, when one is
// configured, the question bank.
type Server struct {
	cfg    types.ServeConfig
	opts   source.Options
	store  *store.Store
	router *gin.Engine
}

// New builds the router. st may be nil, in which case question-bank
// endpoints answer 404 and transform results are not persisted.
func New(cfg types.ServeConfig, opts source.Options, st *store.Store) *Server {
	s := &Server{cfg: cfg, opts: opts, store: st}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.POST("/segment", s.segment)
		api.POST("/transform", s.transform)
		api.GET("/questions", s.questions)
		api.GET("/documents", s.documents)
	}

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs one line per request through zerolog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// transformer builds the pipeline for the requested processor names.
func transformer(names []string) (*transform.Transformer, error) {
	procs, err := transform.Lookup(names)
	if err != nil {
		return nil, err
	}
	return transform.New(procs...), nil
}

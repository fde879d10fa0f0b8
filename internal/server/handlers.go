// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/oakla/question-maker/internal/segment"
	"github.com/oakla/question-maker/internal/source"
	"github.com/oakla/question-maker/internal/store"
	"github.com/oakla/question-maker/pkg/types"
)

// DocumentIDHeader carries the question-bank ID of a persisted transform.
const DocumentIDHeader = "X-Document-Id"

// SegmentRequest is the body of POST /api/segment.
type SegmentRequest struct {
	Text string `json:"text"`
}

// TransformRequest is the body of POST /api/transform.
type TransformRequest struct {
	Input      string           `json:"input" binding:"required"`
	SourceType types.SourceKind `json:"source_type"`
	Processors []string         `json:"processors"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) segment(c *gin.Context) {
	var req SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, segment.Segment(req.Text))
}

func (s *Server) transform(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	kind := req.SourceType
	if kind == types.SourceAuto {
		kind = source.Detect(req.Input)
		if kind == types.SourceFile && !s.cfg.AllowFiles {
			kind = types.SourceString
		}
	}
	if kind == types.SourceFile && !s.cfg.AllowFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file inputs are disabled on this server"})
		return
	}

	t, err := transformer(req.Processors)
	if err != nil {
		badRequest(c, err)
		return
	}

	src, err := source.New(req.Input, kind, s.opts)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	doc, err := t.Transform(c.Request.Context(), src)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if s.store != nil {
		id, err := s.store.Save(c.Request.Context(), doc)
		if err != nil {
			log.Error().Err(err).Str("source", doc.Source).Msg("storing document")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storing document failed"})
			return
		}
		c.Header(DocumentIDHeader, id)
	}

	c.JSON(http.StatusOK, doc)
}

func (s *Server) questions(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not enabled"})
		return
	}

	opts := store.QueryOptions{
		Query:      c.Query("q"),
		DocumentID: c.Query("document"),
		Label:      c.Query("label"),
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		opts.MaxResults = n
	}

	results, err := s.store.Retrieve(c.Request.Context(), opts)
	if err != nil {
		badRequest(c, err)
		return
	}
	if results == nil {
		results = []store.QueryResult{}
	}
	c.JSON(http.StatusOK, gin.H{"questions": results, "count": len(results)})
}

func (s *Server) documents(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not enabled"})
		return
	}

	docs, err := s.store.Documents(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("listing documents")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing documents failed"})
		return
	}
	if docs == nil {
		docs = []store.DocumentSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// statusFor maps acquisition errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, source.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, source.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

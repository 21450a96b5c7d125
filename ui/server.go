package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goquade/app"
	"goquade/domain/core"
	"goquade/domain/quade"
	"goquade/internal"
	"goquade/internal/errors"
	"goquade/ports"
)

// Server exposes the Quade test as a JSON API
type Server struct {
	router  *gin.Engine
	service *app.QuadeService
	runs    ports.RunRepository // nil when the archive is not configured
	logger  *internal.Logger
}

// NewServer creates a new API server. runs may be nil.
func NewServer(service *app.QuadeService, runs ports.RunRepository, logger *internal.Logger) *Server {
	s := &Server{
		router:  gin.Default(),
		service: service,
		runs:    runs,
		logger:  logger.WithPrefix("Server"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.POST("/quade", s.handleRunTest)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
	}
}

// Run starts the server on the given address
func (s *Server) Run(addr string) error {
	s.logger.Info("API server listening on %s", addr)
	return s.router.Run(addr)
}

// Handler returns the underlying http.Handler (used by tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

// runTestRequest is the JSON body of POST /api/v1/quade. Alpha defaults to
// 0.05 and PostHoc to true when omitted.
type runTestRequest struct {
	Matrix  quade.Matrix `json:"matrix" binding:"required"`
	Alpha   *float64     `json:"alpha"`
	PostHoc *bool        `json:"post_hoc"`
	Dataset string       `json:"dataset"`
}

func (s *Server) handleRunTest(c *gin.Context) {
	var req runTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}

	alpha := 0.05
	if req.Alpha != nil {
		alpha = *req.Alpha
	}
	postHoc := true
	if req.PostHoc != nil {
		postHoc = *req.PostHoc
	}

	run, err := s.service.Run(c.Request.Context(), app.RunRequest{
		Matrix:  req.Matrix,
		Alpha:   alpha,
		PostHoc: postHoc,
		Dataset: req.Dataset,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, run)
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run archive not configured"})
		return
	}

	runs, err := s.runs.ListRuns(c.Request.Context(), 50)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run archive not configured"})
		return
	}

	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := s.runs.GetRun(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps domain errors to HTTP statuses. The error taxonomy is
// small: bad input is the caller's fault, a degenerate statistic is a valid
// request the math cannot answer, everything else is internal.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case core.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errors.CodeInvalidInput})
	case core.IsUndefinedStatistic(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": errors.CodeUndefinedStatistic})
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": errors.CodeNotFound})
	default:
		s.logger.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": errors.GetCode(err)})
	}
}

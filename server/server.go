// Package server exposes the maze engine over HTTP.
//
// Routes:
//
//	POST /v1/solve   - Solve one maze (SolveRequest -> engine.Report)
//	GET  /v1/health  - Liveness probe
//	GET  /metrics    - Prometheus scrape endpoint
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/mazepath/config"
	"github.com/katalvlaran/mazepath/engine"
	"github.com/katalvlaran/mazepath/logging"
	"github.com/katalvlaran/mazepath/maze"
	"github.com/katalvlaran/mazepath/pathset"
)

// ServiceVersion is reported by the health endpoint.
const ServiceVersion = "0.1.0"

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeBodyTooLarge   = "BODY_TOO_LARGE"
	CodeMalformedMaze  = "MALFORMED_MAZE"
	CodeInconsistent   = "INTERNAL_INCONSISTENCY"
	CodeCanceled       = "CANCELED"
	CodeSolveFailed    = "SOLVE_FAILED"
)

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	// Name labels the query in logs and the response.
	Name string `json:"name"`
	// Maze is the maze text, rows separated by newlines.
	Maze string `json:"maze" binding:"required"`
	// Tiles overrides the configured tile extraction when present.
	Tiles *bool `json:"tiles"`
}

// ErrorResponse is returned for every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is the body of GET /v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	engine  *engine.Engine
	logger  *slog.Logger
	maxBody int64
}

// NewHandlers creates handlers backed by eng. A nil logger discards output.
func NewHandlers(eng *engine.Engine, cfg config.Server, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handlers{engine: eng, logger: logger, maxBody: cfg.MaxBodyBytes}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.limitBody)

	v1 := router.Group("/v1")
	v1.POST("/solve", h.HandleSolve)
	v1.GET("/health", h.HandleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// HandleSolve handles POST /v1/solve.
//
// Response:
//
//	200 OK: engine.Report (reachable=false when the goal cannot be reached)
//	400 Bad Request: invalid body or malformed maze
//	413 Request Entity Too Large: body over server.max_body_bytes
//	500 Internal Server Error: solver failure
func (h *Handlers) HandleSolve(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleSolve")

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Request body too large", "limit", tooLarge.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: err.Error(),
				Code:  CodeBodyTooLarge,
			})
			return
		}
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  CodeInvalidRequest,
		})
		return
	}

	rep, err := h.engine.Solve(c.Request.Context(), engine.Query{
		Name:  req.Name,
		Text:  req.Maze,
		Tiles: req.Tiles,
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		errCode := CodeSolveFailed

		if errors.Is(err, maze.ErrMalformedMaze) {
			statusCode = http.StatusBadRequest
			errCode = CodeMalformedMaze
		} else if errors.Is(err, pathset.ErrInternalInconsistency) {
			errCode = CodeInconsistent
		} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			statusCode = http.StatusServiceUnavailable
			errCode = CodeCanceled
		}

		logger.Warn("Solve failed", "error", err, "code", errCode)
		c.JSON(statusCode, ErrorResponse{
			Error: err.Error(),
			Code:  errCode,
		})
		return
	}

	logger.Info("Maze solved",
		"query_id", rep.ID,
		"reachable", rep.Reachable,
		"cost", rep.Cost,
		"tiles", rep.Tiles)

	c.JSON(http.StatusOK, rep)
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: ServiceVersion,
	})
}

// limitBody caps the request body at maxBody bytes.
func (h *Handlers) limitBody(c *gin.Context) {
	if h.maxBody > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	}
	c.Next()
}

// getOrCreateRequestID echoes X-Request-ID, minting one when absent.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

// Run serves handler on addr until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

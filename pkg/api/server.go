// Package api provides the HTTP surface for the generation engine.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/codegend/pkg/config"
	"github.com/codeready-toolchain/codegend/pkg/models"
	"github.com/codeready-toolchain/codegend/pkg/queue"
	"github.com/codeready-toolchain/codegend/pkg/version"
)

// Server is the HTTP API server (spec §6).
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server

	cfg        *config.Config
	processor  queue.Processor
	scheduler  *queue.Scheduler
	healthPing func(ctx context.Context) error // nil disables the LLM leg of /agent/health
	dbPing     func(ctx context.Context) error // nil disables the plain /health liveness check
}

// NewServer constructs a Server and registers its routes. processor drives
// synchronous requests directly; scheduler owns asynchronous submission and
// job-status lookups. healthPing, if non-nil, is called for /agent/health's
// llm_available probe. dbPing, if non-nil, backs the plain /health liveness
// route (spec §6 "503 from /health when backend is unreachable") — kept
// distinct from /agent/health, which always returns 200.
func NewServer(cfg *config.Config, processor queue.Processor, scheduler *queue.Scheduler, healthPing, dbPing func(ctx context.Context) error) *Server {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery(), requestLogger(), securityHeaders())

	s := &Server{
		engine:     e,
		cfg:        cfg,
		processor:  processor,
		scheduler:  scheduler,
		healthPing: healthPing,
		dbPing:     dbPing,
	}
	s.setupRoutes()
	return s
}

// setupRoutes registers every route named in spec §6.
func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.livenessHandler)

	agent := s.engine.Group("/agent")
	agent.POST("/generate", s.generateHandler)
	agent.GET("/jobs/:id", s.jobStatusHandler)
	agent.POST("/jobs/:id/cancel", s.cancelJobHandler)
	agent.POST("/review", s.notImplementedHandler)
	agent.POST("/qa", s.notImplementedHandler)
	agent.GET("/health", s.healthHandler)
	agent.GET("/products", s.productsHandler)
}

// Start starts the HTTP server on addr (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSecs) * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// StartWithListener starts the HTTP server on a pre-created listener. Used
// by tests to serve on a random OS-assigned port.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{Handler: s.engine}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// livenessHandler handles GET /health, a plain infra liveness probe
// distinct from /agent/health: it fails closed with 503 when the database
// is unreachable, for load balancers and orchestrators, not API callers.
func (s *Server) livenessHandler(c *gin.Context) {
	if s.dbPing == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	reqCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	if err := s.dbPing(reqCtx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// healthHandler handles GET /agent/health. Per spec §6, this always
// returns 200 — the "backend unreachable" 503 case applies to /health in
// the teacher's sense of infra health, not this status probe, which is
// deliberately best-effort: a probe failure is reported in the body, not
// the status line, so a caller can distinguish "the engine is up but the
// configured LLM is down" from "the engine is down."
func (s *Server) healthHandler(c *gin.Context) {
	available := s.healthPing == nil
	if s.healthPing != nil {
		reqCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		available = s.healthPing(reqCtx) == nil
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:       "ok",
		LlmAvailable: available,
		Version:      version.Full(),
	})
}

// productsHandler handles GET /agent/products.
func (s *Server) productsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ProductsResponse{
		Products: []models.Product{models.ProductXFrame5UI, models.ProductSpringBackend},
	})
}

// notImplementedHandler backs the secondary endpoints named but not
// detailed by spec §6.1.
func (s *Server) notImplementedHandler(c *gin.Context) {
	writeError(c, http.StatusNotImplemented, "endpoint not implemented")
}

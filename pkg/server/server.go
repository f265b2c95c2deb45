// Package server exposes the automation flow over HTTP with a small
// built-in web UI, a JSON run API, and websocket event streaming.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/webpilot/webpilot/pkg/flow"
	"github.com/webpilot/webpilot/pkg/logging"
	"github.com/webpilot/webpilot/pkg/types"
)

// Config holds web server settings.
type Config struct {
	Host         string
	Port         int
	Debug        bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:        "127.0.0.1",
		Port:        8510,
		ReadTimeout: 30 * time.Second,
		// Long-lived websocket streams manage their own deadlines.
		WriteTimeout: 0,
	}
}

// Server exposes the automation flow over HTTP: a small single-page UI,
// a JSON API for starting and inspecting runs, and a websocket stream
// of run events.
type Server struct {
	flow  *flow.Flow
	runs  *RunStore
	queue chan *Run

	engine     *gin.Engine
	httpServer *http.Server
	upgrader   websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *logging.Logger
}

// New creates a server around the given flow.
func New(f *flow.Flow, cfg Config) *Server {
	log, err := logging.NewLogger("server")
	if err != nil {
		log.Warnf("Failed to initialize server logger, using stderr fallback: %v", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	corsConfig.AllowWebSockets = true
	engine.Use(cors.New(corsConfig))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		flow:  f,
		runs:  NewRunStore(),
		queue: make(chan *Run, 16),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		engine: engine,
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.POST("/runs", s.handleCreateRun)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
		api.GET("/runs/:id/events", s.handleRunEvents)
	}
}

// Start runs the run worker and serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.log.Infof("Web UI listening on http://%s", s.httpServer.Addr)

	// Runs execute sequentially; the flow drives one browser at a time.
	s.wg.Add(1)
	go s.runWorker()

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Shutdown stops accepting requests, waits for the worker to finish
// the current run, and closes the flow's browser driver. The HTTP
// server drains before the queue closes: handleCreateRun may still be
// in flight until then, and must never send on a closed queue.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	err := s.httpServer.Shutdown(ctx)

	close(s.queue)
	s.wg.Wait()

	if closeErr := s.flow.Close(); err == nil {
		err = closeErr
	}
	return err
}

// runWorker processes queued runs one at a time.
func (s *Server) runWorker() {
	defer s.wg.Done()

	for run := range s.queue {
		select {
		case <-s.ctx.Done():
			run.finish(StatusFailed, nil, fmt.Errorf("server shutting down"))
			continue
		default:
		}

		s.executeRun(run)
	}
}

// executeRun drives the flow for one run, streaming events into the
// run's buffer.
func (s *Server) executeRun(run *Run) {
	run.setRunning()

	events := make(chan *types.AgentEvent, 64)
	var consumerWg sync.WaitGroup
	consumerWg.Add(1)
	go func() {
		defer consumerWg.Done()
		for event := range events {
			run.Append(event)
		}
	}()

	result, err := s.flow.RunWithID(s.ctx, run.ID, run.Query, events)
	close(events)
	consumerWg.Wait()

	if err != nil {
		s.log.Errorf("Run %s failed: %v", run.ID, err)
		run.finish(StatusFailed, nil, err)
		return
	}
	run.finish(StatusCompleted, result, nil)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type createRunRequest struct {
	Query string `json:"query" binding:"required"`
}

func (s *Server) handleCreateRun(c *gin.Context) {
	var req createRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	select {
	case <-s.ctx.Done():
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "server is shutting down"})
		return
	default:
	}

	run := s.runs.Create(uuid.New().String(), req.Query)

	select {
	case s.queue <- run:
	default:
		run.finish(StatusFailed, nil, fmt.Errorf("run queue is full"))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run queue is full, try again later"})
		return
	}

	c.JSON(http.StatusAccepted, run.Snapshot())
}

func (s *Server) handleListRuns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"runs": s.runs.List()})
}

func (s *Server) handleGetRun(c *gin.Context) {
	run, err := s.runs.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run.Snapshot())
}

// handleRunEvents upgrades to a websocket and streams the run's events:
// full history first, then live events until the run finishes.
func (s *Server) handleRunEvents(c *gin.Context) {
	run, err := s.runs.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warnf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	history, live, cancel := run.Subscribe()
	defer cancel()

	for _, event := range history {
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-live:
			if !ok {
				// Run finished; send the final state and close.
				conn.WriteJSON(gin.H{"type": "run_finished", "run": run.Snapshot()})
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// Package server exposes the playback controller over HTTP and streams
// frames to browsers over a WebSocket.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/storage"
)

const DefaultFrameInterval = 16 * time.Millisecond

type Options struct {
	// Store is where finished runs are saved and listed from. May be nil.
	Store          *storage.Store
	Record         bool
	Seed           int64
	AllowedOrigins []string
	FrameInterval  time.Duration
}

// Server wires a Controller to gin handlers. Runs started over HTTP outlive
// the request that started them and are bound to the server's context.
type Server struct {
	ctrl     *engine.Controller
	store    *storage.Store
	recorder *storage.Recorder
	opts     Options

	ctx    context.Context
	cancel context.CancelFunc
	runs   sync.WaitGroup

	mu      sync.Mutex
	clients int
}

func New(ctx context.Context, ctrl *engine.Controller, opts Options) *Server {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Server{
		ctrl:   ctrl,
		store:  opts.Store,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
	}
	if s.store != nil && opts.Record {
		s.recorder = storage.NewRecorder(storage.DefaultMaxFrames)
		ctrl.AddObserver(s.recorder)
	}
	return s
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  s.opts.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))
	router.Use(LoggingMiddleware())

	api := router.Group("/api")
	{
		api.GET("/state", s.handleState)
		api.POST("/generate", s.handleGenerate)
		api.POST("/start", s.handleStart)
		api.POST("/pause", s.handlePause)
		api.POST("/reset", s.handleReset)
		api.PUT("/size", s.handleSize)
		api.PUT("/speed", s.handleSpeed)
		api.PUT("/array", s.handleArray)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
		api.GET("/ws", s.handleStream)
	}
	return router
}

// ListenAndServe serves until ctx is done, then cancels any run in flight
// and shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close cancels runs started by the server and waits for them to return.
func (s *Server) Close() {
	s.cancel()
	s.runs.Wait()
}

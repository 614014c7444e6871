// Package server exposes the hydrated site over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/Zachkp/folio/internal/effects"
	"github.com/Zachkp/folio/internal/store"
)

// Hydrator renders the page.
type Hydrator interface {
	Hydrate(ctx context.Context) ([]byte, error)
}

// Options configures a Server.
type Options struct {
	Addr      string
	StaticDir string
	// DataDir is served under /data when set, so the page's own assets
	// (portrait, thumbnails, icons) resolve.
	DataDir string
	// Bounds clamps position writes that do not carry their own.
	Bounds effects.Bounds
	Logger *log.Logger
}

// Server serves the hydrated page and the portrait position API.
type Server struct {
	opts     Options
	hydrator Hydrator
	store    store.PositionStore
	engine   *gin.Engine
	logger   *log.Logger

	mu   sync.Mutex
	page []byte
	gen  uint64 // bumped by Invalidate

	hydrations singleflight.Group
}

// New builds the gin engine and registers routes.
func New(h Hydrator, st store.PositionStore, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{opts: opts, hydrator: h, store: st, logger: opts.Logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}
	if opts.DataDir != "" {
		r.Static("/data", filepath.Join(opts.DataDir, "data"))
	}

	r.GET("/", s.handleIndex)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/portrait-position", s.handleGetPosition)
	api.PUT("/portrait-position", s.handlePutPosition)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Invalidate drops the cached page so the next request hydrates again.
func (s *Server) Invalidate() {
	s.mu.Lock()
	s.page = nil
	s.gen++
	s.mu.Unlock()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.opts.Addr, Handler: s.engine}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving site", "addr", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleIndex(c *gin.Context) {
	body, err := s.cachedPage(c.Request.Context())
	if err != nil {
		s.logger.Error("hydrating page", "err", err)
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// cachedPage returns the cached page, hydrating it when there is none.
// Concurrent misses share one hydration, and a page hydrated across an
// Invalidate is served once but not cached.
func (s *Server) cachedPage(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	body, gen := s.page, s.gen
	s.mu.Unlock()
	if body != nil {
		return body, nil
	}

	v, err, _ := s.hydrations.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		body, err := s.hydrator.Hydrate(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.gen == gen {
			s.page = body
		}
		s.mu.Unlock()
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *Server) handleGetPosition(c *gin.Context) {
	pos, ok, err := s.store.Load(c.Request.Context())
	if err != nil {
		s.logger.Error("loading portrait position", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "position unavailable"})
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, pos)
}

// positionRequest is a drag release reported by the page. Bounds, when
// present, are used to clamp the offset before it is stored.
type positionRequest struct {
	X      *float64 `json:"x" binding:"required"`
	Y      *float64 `json:"y" binding:"required"`
	Bounds *struct {
		ContainerW float64 `json:"container_w"`
		ContainerH float64 `json:"container_h"`
		ElementW   float64 `json:"element_w"`
		ElementH   float64 `json:"element_h"`
	} `json:"bounds"`
}

func (s *Server) handlePutPosition(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x and y are required"})
		return
	}

	bounds := s.opts.Bounds
	if b := req.Bounds; b != nil {
		bounds = effects.Bounds{
			Container: effects.Size{W: b.ContainerW, H: b.ContainerH},
			Element:   effects.Size{W: b.ElementW, H: b.ElementH},
		}
	}

	pos, err := s.release(c.Request.Context(), bounds, store.Position{X: *req.X, Y: *req.Y})
	if err != nil {
		s.logger.Error("saving portrait position", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "position not saved"})
		return
	}
	s.Invalidate()
	c.JSON(http.StatusOK, pos)
}

// release drags a portrait from rest to target and lets go, so the offset
// is clamped and persisted exactly as an interactive drag would be.
func (s *Server) release(ctx context.Context, b effects.Bounds, target store.Position) (store.Position, error) {
	p := effects.NewPortrait(effects.SurfaceFunc(func(tr effects.Transform) {
		s.logger.Debug("portrait moved", "x", tr.X, "y", tr.Y)
	}), effects.PortraitOptions{Bounds: b, Store: s.store, Logger: s.logger})

	p.PointerDown(effects.Pointer{})
	p.PointerMove(effects.Pointer{X: target.X, Y: target.Y})
	if err := p.PointerUp(ctx); err != nil {
		return store.Position{}, err
	}
	return p.Offset(), nil
}

// untracked prefixes are not request-logged.
var untracked = []string{"/static/", "/data/", "/favicon", "/healthz"}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range untracked {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond),
		)
	}
}

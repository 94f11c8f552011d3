// Package server wires the todo GraphQL API into an HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hmans/todos/internal/config"
	"github.com/hmans/todos/internal/graph"
	"github.com/hmans/todos/internal/metrics"
	"github.com/hmans/todos/internal/search"
	"github.com/hmans/todos/internal/todo"
)

// GraphQLPath is where the API is mounted.
const GraphQLPath = "/graphql"

// Server serves the todo API over HTTP.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *todo.Store
	index   *search.Index
	metrics *metrics.Metrics
	engine  *gin.Engine
}

// New builds the HTTP routes around resolver. m may be nil to disable metrics.
func New(cfg *config.Config, resolver *graph.Resolver, logger *zap.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		store:   resolver.Store,
		index:   resolver.Index,
		metrics: m,
	}
	if m != nil {
		m.ObserveStore(s.store.Len)
	}
	s.engine = s.routes(resolver)
	return s
}

// NewFromConfig creates the store, search index and metrics described by cfg
// and returns a server around them.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ids, err := todo.NewIDGenerator(cfg.Store.IDStrategy, cfg.Store.IDLength)
	if err != nil {
		return nil, err
	}
	store := todo.NewStore(todo.WithIDGenerator(ids), todo.WithLogger(logger))
	for _, title := range cfg.Store.Seed {
		if _, err := store.Add(title); err != nil {
			return nil, fmt.Errorf("seeding todo %q: %w", title, err)
		}
	}
	if len(cfg.Store.Seed) > 0 {
		logger.Info("seeded todos", zap.Int("count", len(cfg.Store.Seed)))
	}

	var idx *search.Index
	if cfg.Search.Enabled {
		idx, err = search.NewIndex()
		if err != nil {
			return nil, fmt.Errorf("creating search index: %w", err)
		}
		// Seeded todos go in as one batch, later mutations one by one.
		if err := store.AttachIndexer(idx); err != nil {
			idx.Close()
			return nil, err
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	resolver := &graph.Resolver{
		Store:       store,
		Index:       idx,
		SearchLimit: cfg.Search.Limit,
		Logger:      logger,
	}
	return New(cfg, resolver, logger, m), nil
}

func (s *Server) routes(resolver *graph.Resolver) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))
	if s.metrics != nil {
		r.Use(requestMetrics(s.metrics))
	}
	if c, ok := corsConfig(s.cfg.Server.CORSOrigins); ok {
		r.Use(cors.New(c))
	}

	gql := NewGraphQLHandler(resolver, GraphQLOptions{
		Introspection:   s.cfg.Server.Introspection,
		ComplexityLimit: s.cfg.Server.ComplexityLimit,
		Metrics:         s.metrics,
	}, s.logger)
	r.Any(GraphQLPath, gin.WrapH(gql))

	if s.cfg.Server.Playground {
		r.GET("/", gin.WrapH(playground.Handler("Todos GraphQL", GraphQLPath)))
	}

	r.GET("/healthz", s.health)

	if s.metrics != nil {
		r.GET(s.cfg.Metrics.Path, gin.WrapH(s.metrics.Handler()))
	}

	return r
}

func corsConfig(origins []string) (cors.Config, bool) {
	if len(origins) == 0 {
		return cors.Config{}, false
	}
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c, true
}

func (s *Server) health(c *gin.Context) {
	body := gin.H{
		"status": "ok",
		"todos":  s.store.Len(),
	}
	if s.index != nil {
		n, err := s.index.Count()
		if err != nil {
			s.logger.Warn("counting indexed todos", zap.Error(err))
			body["status"] = "degraded"
		} else {
			body["indexed"] = n
		}
	}
	c.JSON(http.StatusOK, body)
}

// Handler returns the HTTP handler with all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store returns the store the server resolves against.
func (s *Server) Store() *todo.Store {
	return s.store
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			zap.String("addr", ln.Addr().String()),
			zap.String("graphql", GraphQLPath),
			zap.Bool("playground", s.cfg.Server.Playground),
		)
		serverErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	}
}

// Close releases the search index.
func (s *Server) Close() error {
	if s.index == nil {
		return nil
	}
	return s.index.Close()
}

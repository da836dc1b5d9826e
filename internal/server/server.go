// Package server exposes the answer pipeline and the robot command queue
// over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leko-robotics/leko-server/internal/config"
	"github.com/leko-robotics/leko-server/internal/health"
	"github.com/leko-robotics/leko-server/internal/pipeline"
	"github.com/leko-robotics/leko-server/internal/queue"
)

// Server holds the HTTP surface dependencies.
type Server struct {
	pipeline *pipeline.Pipeline
	queue    queue.Queue
	checker  *health.Checker
	cfg      config.ServerConfig
	limiter  *ipLimiter
}

// New assembles a Server over the pipeline and queue.
func New(cfg *config.Config, p *pipeline.Pipeline, q queue.Queue) *Server {
	checker := health.NewChecker()
	checker.Register("queue", q.Ping)
	checker.Register("completion", func(context.Context) error {
		if cfg.OpenAI.Key == "" && cfg.Anthropic.Key == "" {
			return eris.New("no completion credential configured")
		}
		return nil
	})

	return &Server{
		pipeline: p,
		queue:    q,
		checker:  checker,
		cfg:      cfg.Server,
		limiter:  newIPLimiter(cfg.Server.RatePerSecond, cfg.Server.RateBurst),
	}
}

// Router builds the chi route tree with the ambient middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", secretHeader},
	}))
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(recoverer)

	r.Get("/", s.handleHealth)
	r.Get("/health", s.handleHealth)
	r.Get("/health/deep", s.handleHealthDeep)

	r.With(s.rateLimit).Post("/ask", s.handleAsk)

	r.Route("/command", func(r chi.Router) {
		r.Use(s.requireSecret)
		r.Post("/", s.handleCommandCreate)
		r.Get("/next", s.handleCommandNext)
	})

	r.Post("/vision", s.handleVision)

	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", s.cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

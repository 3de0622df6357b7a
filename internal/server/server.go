package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/analysis"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/normalizer"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/ratelimit"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/server/handlers"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Config     *config.Config
	Logger     logger.Logger
	Service    analysis.Service
	Normalizer normalizer.Normalizer
	Limiter    ratelimit.Limiter
}

type Server struct {
	server *http.Server
	logger logger.Logger
}

func New(opts Opts) *Server {
	log := opts.Logger.WithComponent("HTTPServer")

	s := &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
			Handler:           NewRouter(opts.Config.App.CorsOrigins, opts.Service, opts.Normalizer, opts.Limiter, opts.Logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.listen()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server")
			return s.server.Shutdown(ctx)
		},
	})

	return s
}

func (s *Server) listen() {
	s.logger.Info(fmt.Sprintf("Starting server on %s", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server failed", "error", err)
	}
}

// NewRouter builds the HTTP API. Only topic analysis is rate limited since it
// is the one route that fetches and writes.
func NewRouter(
	origins []string,
	service analysis.Service,
	norm normalizer.Normalizer,
	limiter ratelimit.Limiter,
	log logger.Logger,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(log.WithComponent("HTTP")))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	analysisHandler := handlers.NewAnalysisHandler(service, norm, log)

	router.Get("/", handlers.Root)
	router.Get("/health", handlers.Health)

	router.Route("/api/analysis", func(r chi.Router) {
		r.With(rateLimit(limiter)).Post("/topic", analysisHandler.AnalyzeTopic)
		r.Get("/results", analysisHandler.Results)
		r.Get("/trends", analysisHandler.Trends)
		r.Post("/preprocess", analysisHandler.Preprocess)
	})

	return router
}

// Package server provides the HTTP server and routing for the ALM risk
// engine's example driver.
package server

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/alm-risk-engine/internal/aggregate"
	"github.com/aristath/alm-risk-engine/internal/assumptions"
	"github.com/aristath/alm-risk-engine/internal/config"
	"github.com/aristath/alm-risk-engine/internal/dynamicbalance"
	"github.com/aristath/alm-risk-engine/internal/elasticity"
	"github.com/aristath/alm-risk-engine/internal/factor"
	"github.com/aristath/alm-risk-engine/internal/instrument"
	"github.com/aristath/alm-risk-engine/internal/irr"
	"github.com/aristath/alm-risk-engine/internal/loader"
	"github.com/aristath/alm-risk-engine/internal/mockdata"
	"github.com/aristath/alm-risk-engine/internal/scenario"
)

// Config holds server configuration.
type Config struct {
	Log     zerolog.Logger
	Config  *config.Config
	Port    int
	DevMode bool

	Aggregator     *aggregate.Aggregator
	Stressor       *scenario.Stressor
	Elasticity     *elasticity.Engine
	IRR            *irr.Calculator
	Dynamic        *dynamicbalance.Orchestrator
	Decomposer     *factor.Decomposer
	Portfolio      *mockdata.Generator
	Assumptions    *assumptions.Resolver
	LoaderPatterns loader.PatternTable
}

// Server is the example HTTP driver around the risk engine core.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	cfg    Config

	mu     sync.RWMutex
	loaded []instrument.Instrument
}

// New creates a new HTTP server wired to the risk engine components.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log,
		cfg:    cfg,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: s.router,
	}
	return s
}

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/scenarios/run", s.handleRunScenario)
		r.Post("/elasticity/dynamic-balance", s.handleDynamicBalance)
		r.Post("/factor-analysis", s.handleFactorAnalysis)
		r.Post("/portfolio/load", s.handlePortfolioLoad)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

// portfolio returns the most recently loaded CSV portfolio if one has been
// posted to /api/portfolio/load, otherwise the engine's example instrument
// set — used in place of a persistence layer (the core is a pure data
// transform, per §5).
func (s *Server) portfolio() []instrument.Instrument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.loaded) > 0 {
		return s.loaded
	}
	return s.cfg.Portfolio.Portfolio(time.Now().UTC().Truncate(24 * time.Hour))
}

// setLoadedPortfolio replaces the active portfolio with one parsed by
// /api/portfolio/load.
func (s *Server) setLoadedPortfolio(instruments []instrument.Instrument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = instruments
}

// resolveAssumptions builds the per-instrument assumptions map the
// Aggregator and Dynamic-balance Orchestrator require, per §4.3. Each
// instrument's Common attributes are mapped to the Resolver's match-data
// shape (instrument_class, counterparty_type, counterparty_name).
func (s *Server) resolveAssumptions(instruments []instrument.Instrument) map[string]assumptions.Set {
	out := make(map[string]assumptions.Set, len(instruments))
	for _, inst := range instruments {
		c := inst.Common()
		data := map[string]any{
			"instrument_class":  string(inst.Type()),
			"counterparty_type": string(c.CounterpartyType),
			"counterparty_name": c.CounterpartyName,
		}
		out[inst.ID()] = s.cfg.Assumptions.Resolve(data)
	}
	return out
}

package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kisansetu/schemematch/catalog"
	"github.com/kisansetu/schemematch/explain"
	"github.com/kisansetu/schemematch/internal/logger"
	"github.com/kisansetu/schemematch/internal/metrics"
	"github.com/kisansetu/schemematch/match"
)

type Server struct {
	db      *sql.DB // nil for file-backed catalogs
	manager *catalog.Manager
	matcher *match.Matcher
	metrics *metrics.Metrics
	router  *chi.Mux
}

func NewServer(cfg Config) (*Server, error) {
	return newServer(cfg, prometheus.DefaultRegisterer)
}

func newServer(cfg Config, reg prometheus.Registerer) (*Server, error) {
	m := metrics.New(reg)

	var db *sql.DB
	var store catalog.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, err
		}
		store = catalog.NewPostgresStore(db)
	} else {
		store = catalog.NewFileStore(cfg.CatalogPath)
	}

	manager := catalog.NewManager(store)
	snap, err := manager.Reload(context.Background())
	if err != nil {
		return nil, err
	}
	m.ObserveCatalog(len(snap.Schemes), snap.Skipped)

	renderer := explain.NewRenderer(m.IncrementTranslationFallback)
	matcher := match.NewMatcher(manager, renderer, m, cfg.Workers)

	s := &Server{
		db:      db,
		manager: manager,
		matcher: matcher,
		metrics: m,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/v1/health", s.handleHealth)
	r.Post("/api/v1/match", s.handleMatch)
	r.Get("/api/v1/schemes", s.handleListSchemes)
	r.Get("/api/v1/schemes/{schemeID}", s.handleGetScheme)
	r.Post("/api/v1/catalog/reload", s.handleReload)
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "unhealthy",
				Error:  err.Error(),
			})
			return
		}
	}

	snap := s.manager.Snapshot()
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:         "healthy",
		CatalogVersion: snap.Version,
		SchemesLoaded:  len(snap.Schemes),
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req match.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.TopK < 0 {
		respondError(w, http.StatusBadRequest, "top_k must be positive", nil)
		return
	}

	matchID := uuid.NewString()
	resp, err := s.matcher.Match(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "match evaluation failed", err)
		return
	}

	logger.Info("match request served",
		"match_id", matchID,
		"schemes_evaluated", resp.TotalSchemesEvaluated,
		"recommendations", len(resp.Recommendations),
		"processing_time_ms", resp.ProcessingTimeMS)

	w.Header().Set("X-Match-ID", matchID)
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSchemes(w http.ResponseWriter, r *http.Request) {
	snap := s.manager.Snapshot()

	schemes := make([]SchemeSummary, 0, len(snap.Schemes))
	for _, sc := range snap.Schemes {
		schemes = append(schemes, summarize(sc))
	}

	respondJSON(w, http.StatusOK, SchemesListResponse{
		CatalogVersion: snap.Version,
		Schemes:        schemes,
	})
}

func (s *Server) handleGetScheme(w http.ResponseWriter, r *http.Request) {
	schemeID := chi.URLParam(r, "schemeID")

	sc, ok := s.manager.Snapshot().Get(schemeID)
	if !ok {
		respondError(w, http.StatusNotFound, "scheme not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, summarize(sc))
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.manager.Reload(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "catalog reload failed", err)
		return
	}
	s.metrics.ObserveCatalog(len(snap.Schemes), snap.Skipped)

	respondJSON(w, http.StatusOK, ReloadResponse{
		CatalogVersion: snap.Version,
		SchemesLoaded:  len(snap.Schemes),
		SchemesSkipped: snap.Skipped,
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	respondJSON(w, status, resp)
}

// Config carries the environment-derived server settings.
type Config struct {
	Port        string
	CatalogPath string
	DatabaseURL string
	Workers     int
}

func configFromEnv() Config {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		CatalogPath: os.Getenv("CATALOG_PATH"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Workers:     runtime.GOMAXPROCS(0),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = "data/schemes.json"
	}
	if v := os.Getenv("MATCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	return cfg
}

func main() {
	// A local .env is optional; deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := configFromEnv()

	server, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}
	if server.db != nil {
		defer server.db.Close()
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := logger.Shutdown(ctx); err != nil {
		logger.Error("logger shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

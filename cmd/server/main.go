package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/baogia/internal/catalog"
	"github.com/Simplici0/baogia/internal/config"
	"github.com/Simplici0/baogia/internal/db"
	"github.com/Simplici0/baogia/internal/logger"
	"github.com/Simplici0/baogia/internal/metrics"
	"github.com/Simplici0/baogia/internal/migrations"
	"github.com/Simplici0/baogia/internal/quotes"
	"github.com/Simplici0/baogia/internal/seed"
	"github.com/Simplici0/baogia/internal/suggest"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	log           *zap.Logger
	catalog       *catalog.Service
	quotes        *quotes.Store
	suggest       *suggest.Service
	drafts        *draftRegistry
	metrics       *metrics.Metrics
	exposeMetrics bool
}

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.ShouldMigrate() {
		if err := migrations.Up(ctx, database, cfg.MigrationsDir); err != nil {
			return err
		}
	}

	stats, err := seed.Run(ctx, database)
	if err != nil {
		return err
	}
	zl.Info("seed complete", zap.Int("inserts", stats.Inserts))

	catalogSvc := catalog.NewService(catalog.NewStore(database), catalog.NewHolder(catalog.Catalog{}))
	current, err := catalogSvc.Reload(ctx)
	if err != nil {
		return err
	}
	zl.Info("catalog loaded", zap.Int("items", current.Len()))

	var gen suggest.Generator
	gemini, err := suggest.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	switch {
	case errors.Is(err, suggest.ErrNotConfigured):
		zl.Warn("GEMINI_API_KEY is not set, suggestions are disabled")
	case err != nil:
		return err
	default:
		gen = gemini
	}

	srv := &server{
		log:           zl,
		catalog:       catalogSvc,
		quotes:        quotes.NewStore(database),
		suggest:       suggest.NewService(gen, cfg.SuggestTimeout, zl.Named("suggest")),
		drafts:        newDraftRegistry(),
		metrics:       metrics.New(),
		exposeMetrics: cfg.MetricsEnabled,
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			zl.Error("shutdown", zap.Error(err))
		}
	}()

	zl.Info("listening", zap.String("addr", httpSrv.Addr), zap.String("env", cfg.Env))
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Requests(s.log))
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get("/health", s.handleHealth)
	if s.exposeMetrics {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api/materials", func(r chi.Router) {
		r.Get("/", s.handleMaterialsGet)
		r.Post("/", s.handleMaterialsReplace)
		r.Get("/export.xlsx", s.handleMaterialsExport)
		r.Post("/import", s.handleMaterialsImport)

		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", s.handleDraftCreate)
			r.Get("/{id}", s.handleDraftGet)
			r.Delete("/{id}", s.handleDraftAbort)
			r.Post("/{id}/commit", s.handleDraftCommit)
			r.Post("/{id}/{domain}/{category}", s.handleDraftAdd)
			r.Patch("/{id}/{domain}/{category}/{index}", s.handleDraftUpdate)
			r.Delete("/{id}/{domain}/{category}/{index}", s.handleDraftRemove)
		})
	})

	r.Route("/api/quotes", func(r chi.Router) {
		r.Get("/", s.handleQuotesList)
		r.Post("/furniture", s.handleQuoteFurniture)
		r.Post("/signage", s.handleQuoteSignage)
		r.Get("/{id}", s.handleQuoteGet)
		r.Get("/{id}/text", s.handleQuoteText)
		r.Get("/{id}/pdf", s.handleQuotePDF)
	})

	r.Post("/api/suggestions/furniture", s.handleSuggestFurniture)

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

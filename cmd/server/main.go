package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/dealdesk/internal/config"
	"github.com/Simplici0/dealdesk/internal/db"
	"github.com/Simplici0/dealdesk/internal/logger"
	"github.com/Simplici0/dealdesk/internal/migrations"
	"github.com/Simplici0/dealdesk/internal/seed"
	"github.com/Simplici0/dealdesk/internal/store"
)

const serviceName = "dealdesk"

type server struct {
	store *store.Store
	log   *logger.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: serviceName}).Fatal(ctx, "failed to load config", err)
	}

	log := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal(ctx, "failed to open database", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(ctx, database, cfg.MigrationsDir); err != nil {
			log.Fatal(ctx, "failed to run database migrations", err)
		}
	}
	if version, err := migrations.Version(ctx, database); err != nil {
		log.Warn(ctx, "could not read schema version: "+err.Error())
	} else {
		log.Info(log.WithField(ctx, "schema_version", version), "database ready")
	}

	if cfg.SeedPresets {
		stats, err := seed.Run(ctx, database)
		if err != nil {
			log.Fatal(ctx, "failed to seed item presets", err)
		}
		log.Info(log.WithField(ctx, "inserts", stats.Inserts), "item presets seeded")
	}

	srv := &server{store: store.New(database), log: log}
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error(shutdownCtx, "server shutdown", err)
		}
	}()

	log.Info(log.WithField(ctx, "addr", httpServer.Addr), "listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(ctx, "server stopped", err)
	}
	log.Info(context.Background(), "server stopped")
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/compute", s.handleCompute)
		r.Post("/export", s.handleExport)
		r.Post("/items/margin-target", s.handleToggleMarginTarget)
		r.Post("/items/price", s.handleSetPrice)
		r.Get("/presets", s.handlePresets)

		r.Get("/deals", s.handleListDeals)
		r.Post("/deals", s.handleCreateDeal)
		r.Get("/deals/{id}", s.handleGetDeal)
		r.Put("/deals/{id}", s.handleUpdateDeal)
		r.Delete("/deals/{id}", s.handleDeleteDeal)
		r.Get("/deals/{id}/export", s.handleExportDeal)
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := s.log.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		ctx = s.log.WithFields(ctx, map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		s.log.Info(ctx, "request")
	})
}

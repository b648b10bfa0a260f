// Package main is the entry point for the parking API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahmedmasbah72/gestion-parking/internal/config"
	"github.com/ahmedmasbah72/gestion-parking/internal/domain"
	"github.com/ahmedmasbah72/gestion-parking/internal/handler"
	"github.com/ahmedmasbah72/gestion-parking/internal/middleware"
	"github.com/ahmedmasbah72/gestion-parking/internal/service"
	"github.com/ahmedmasbah72/gestion-parking/internal/store"
)

// maxBodyBytes caps incoming request bodies. The largest request is a park
// carrying a single license plate, so 4 KiB is generous.
const maxBodyBytes = 4 << 10

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- State store ------------------------------------------------------
	// bbolt holds the full state as one JSON value under a fixed key:
	// durable, local, no external service.
	kv, err := store.OpenBolt(cfg.DataPath)
	if err != nil {
		slog.Error("failed to open state database", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	defaults := domain.NewParkingState(cfg.TotalSpots, cfg.HourlyRate)
	stateStore := store.NewStateStore(kv, defaults, logger)

	// Load never fails without a usable state: corrupted or unreadable data
	// falls back to an empty lot. Starting fresh beats refusing to start.
	state, err := stateStore.Load(context.Background())
	if err != nil {
		slog.Warn("starting with a fresh parking state", "error", err)
	}
	slog.Info("parking state loaded",
		"total_spots", state.TotalSpots,
		"hourly_rate", state.HourlyRate,
		"vehicles", len(state.Vehicles),
	)

	// --- Service ----------------------------------------------------------
	parkingSvc := service.NewParkingService(stateStore, state, logger, nil)
	instrumented := service.NewInstrumentedParkingService(parkingSvc, prometheus.DefaultRegisterer)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → MaxBodySize.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	srvHandler := handler.NewServer(instrumented, logger)
	r.Mount("/", srvHandler.Routes())
	r.Handle("/metrics", promhttp.Handler())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

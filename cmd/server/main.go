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

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/contry/internal/auth"
	"github.com/mmynk/contry/internal/config"
	"github.com/mmynk/contry/internal/middleware"
	"github.com/mmynk/contry/internal/service"
	"github.com/mmynk/contry/internal/storage"
	"github.com/mmynk/contry/internal/storage/memory"
	"github.com/mmynk/contry/internal/storage/sqlite"
	"github.com/mmynk/contry/pkg/api/apiconnect"
	"github.com/mmynk/contry/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver, "database", cfg.DBPath)

	secret := cfg.SessionSecret
	if secret == "" {
		if secret, err = auth.RandomSecret(); err != nil {
			slog.Error("Failed to generate session secret", "error", err)
			os.Exit(1)
		}
		slog.Warn("SESSION_SECRET not set, using a random secret; tokens end with the process")
	}
	tokens := auth.NewTokenManager(secret, cfg.SessionTTL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	svc := service.NewLedgerService(store, tokens,
		service.WithStrictMembers(cfg.StrictMembers),
		service.WithMetrics(metrics),
	)
	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(svc, connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireSession(tokens, apiconnect.LedgerServiceCreateSessionProcedure),
		middleware.LoggingInterceptor(),
	))

	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Mount(ledgerPath, ledgerHandler)

	// Wrap with h2c for HTTP/2 without TLS
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("Shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", srv.Addr, "strict_members", cfg.StrictMembers)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DBDriver == "sqlite" {
		return sqlite.New(cfg.DBPath)
	}
	return memory.New(), nil
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

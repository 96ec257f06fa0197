// recorder subscribes to the dashboard tick stream and persists ticks
// to the tick store.
//
// Usage: go run ./cmd/recorder -config configs/recorder.yaml
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/rmoran/folio-data/internal/api"
	"github.com/rmoran/folio-data/internal/config"
	"github.com/rmoran/folio-data/internal/database"
	"github.com/rmoran/folio-data/internal/fetch"
	"github.com/rmoran/folio-data/internal/record"
	"github.com/rmoran/folio-data/internal/stream"
	"github.com/rmoran/folio-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/recorder.example.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting recorder",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"stream_endpoint", cfg.Stream.Endpoint,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	// REST lookups go through the cache so repeated reads within the
	// stale window cost one request.
	apiClient := api.NewClientFromConfig(cfg.API, api.WithLogger(logger))
	cache := fetch.New(fetch.PolicyFromConfig(cfg.Cache), logger)

	fetchMarkets := func(ctx context.Context) (any, error) {
		return apiClient.GetAllMarkets(ctx, api.GetMarketsOptions{Limit: 1000})
	}

	// Verify the REST API is reachable before streaming
	if _, err := cache.Get(ctx, "markets", fetchMarkets); err != nil {
		logger.Warn("market check failed, continuing anyway", "error", err)
	}

	// Tick recorder
	recorder := record.NewTickRecorder(cfg.Recorder, pool, logger)
	if err := recorder.Start(ctx); err != nil {
		logger.Error("failed to start recorder", "error", err)
		os.Exit(1)
	}

	// Stream client feeding the recorder
	client := stream.NewClient(stream.Config{
		Endpoint:         cfg.Stream.Endpoint,
		Origin:           cfg.Stream.Origin,
		HandshakeTimeout: cfg.Stream.HandshakeTimeout,
		WriteTimeout:     cfg.Stream.WriteTimeout,
		PingInterval:     cfg.Stream.PingInterval,
	}, logger)
	defer client.Close()

	unsubscribe := client.OnMessage(func(payload any) {
		tick, ok := record.DecodeTick(payload, api.NowMicro())
		if !ok {
			return
		}
		recorder.Enqueue(tick)
	})
	defer unsubscribe()

	client.Connect(ctx)

	// Health server
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: newHealthRouter(pool, client, recorder, cache, fetchMarkets, logger),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting health server", "port", cfg.Server.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				stats := recorder.Stats()
				buf := recorder.BufferStats()
				st := client.Status()
				logger.Info("stats",
					"stream_state", st.State,
					"inserts", stats.Inserts,
					"conflicts", stats.Conflicts,
					"flushes", stats.Flushes,
					"errors", stats.Errors,
					"dropped", stats.Dropped,
					"buffered", buf.Count,
				)
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		healthServer.Shutdown(shutdownCtx)
		client.Disconnect()
		recorder.Stop(shutdownCtx)
		return nil
	})

	logger.Info("recorder running",
		"instance_id", cfg.Instance.ID,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port),
	)

	if err := g.Wait(); err != nil {
		logger.Error("recorder exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("recorder stopped")
}

// newHealthRouter builds the health/debug HTTP routes.
func newHealthRouter(pool *pgxpool.Pool, client *stream.Client, recorder *record.TickRecorder, cache *fetch.Cache, fetchMarkets fetch.FetchFunc, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		if err := pool.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["database"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["database"] = "connected"
		}

		st := client.Status()
		health.Components["stream"] = map[string]any{
			"state": st.State.String(),
			"error": st.Err,
		}
		if st.State != stream.StateConnected && health.Status == "healthy" {
			health.Status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	r.Get("/debug/stats", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"recorder": recorder.Stats(),
			"buffer":   recorder.BufferStats(),
			"cache":    map[string]any{"entries": cache.Len()},
		})
	})

	r.Get("/debug/markets", func(w http.ResponseWriter, req *http.Request) {
		markets, err := cache.Get(req.Context(), "markets", fetchMarkets)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"markets": markets,
		})
	})

	return r
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/vodarr/internal/api/v1"
	"github.com/vmunix/vodarr/internal/catalog"
	"github.com/vmunix/vodarr/internal/config"
	"github.com/vmunix/vodarr/internal/events"
	"github.com/vmunix/vodarr/internal/kv"
	"github.com/vmunix/vodarr/internal/migrations"
	"github.com/vmunix/vodarr/internal/queue"
	"github.com/vmunix/vodarr/internal/vimeo"
	"github.com/vmunix/vodarr/internal/youtube"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === Event bus ===
	bus := events.NewBus(logger.With("component", "bus"))
	defer func() { _ = bus.Close() }()

	// === Clients ===
	vimeoOpts := []vimeo.Option{
		vimeo.WithPageSize(cfg.Vimeo.PageSize),
		vimeo.WithLogger(logger),
	}
	if cfg.Vimeo.BaseURL != "" {
		vimeoOpts = append(vimeoOpts, vimeo.WithBaseURL(cfg.Vimeo.BaseURL))
	}
	sourceClient := vimeo.New(cfg.Vimeo.AccessToken, vimeoOpts...)

	youtubeOpts := []youtube.Option{youtube.WithLogger(logger)}
	if cfg.YouTube.BaseURL != "" {
		youtubeOpts = append(youtubeOpts, youtube.WithBaseURL(cfg.YouTube.BaseURL))
	}
	destClient := youtube.New(cfg.YouTube.APIKey, youtubeOpts...)

	// === Queue ===
	store := queue.NewStore(kv.NewStore(db), logger.With("component", "queue"))
	if err := store.Load(); err != nil {
		return fmt.Errorf("load queue: %w", err)
	}
	orch := queue.NewOrchestrator(store, sourceClient, destClient, bus,
		cfg.Import.PollInterval(), logger.With("component", "orchestrator"))
	defer orch.Shutdown()
	orch.Resume(ctx)

	// === Catalog scanner ===
	fetcher := catalog.NewFetcher(sourceClient, catalog.Config{
		Spacing:      cfg.Vimeo.RequestSpacing(),
		MaxRetries:   cfg.Vimeo.MaxRetries,
		InitialDelay: time.Second,
	}, bus, logger.With("component", "fetcher"))
	scanner := catalog.NewScanner(fetcher, bus, logger.With("component", "scanner"))

	// === HTTP Setup ===
	mux := http.NewServeMux()
	apiV1 := v1.New(ctx, orch, store, scanner, version)
	apiV1.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"queue_items", len(store.List()),
		"poll_interval", cfg.Import.PollInterval(),
		"log_level", cfg.Server.LogLevel,
	)

	srv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig.String())
		case <-ctx.Done():
			return ctx.Err()
		}

		// Stop poll timers before the listener; item state is already
		// persisted.
		cancel()
		orch.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}

	logger.Info("server stopped")
	return nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/msomdec/therapy-admin/internal/config"
	"github.com/msomdec/therapy-admin/internal/domain"
	"github.com/msomdec/therapy-admin/internal/events"
	"github.com/msomdec/therapy-admin/internal/handler"
	"github.com/msomdec/therapy-admin/internal/repository/memory"
	"github.com/msomdec/therapy-admin/internal/repository/redis"
	"github.com/msomdec/therapy-admin/internal/repository/sqlite"
	"github.com/msomdec/therapy-admin/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func run(cfg config.Config) error {
	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	slog.Info("database migrations applied")

	hub := events.NewHub()
	var (
		kv       domain.KVStore
		notifier domain.Notifier = hub
		rdb      *goredis.Client
	)
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		kv = db.KV()
	case config.BackendMemory:
		kv = memory.NewKVStore()
		slog.Warn("using in-memory storage; data is lost on restart")
	case config.BackendRedis:
		rdb, err = redis.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		kv = redis.NewKVStore(rdb, cfg.RedisPrefix)
		// Every instance publishes to Redis and hears its own events back
		// through the forwarder below.
		notifier = events.NewRedisBus(rdb, cfg.RedisChannel)
	}
	slog.Info("storage ready", "backend", cfg.StorageBackend)

	opts := []service.StoreOption{}
	if cfg.CatalogSeedFile != "" {
		seed, err := service.LoadSeedFile(cfg.CatalogSeedFile)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithSeed(seed))
		slog.Info("catalog seed file loaded", "path", cfg.CatalogSeedFile, "modules", len(seed))
	}

	ids := service.UUIDGenerator{}
	authService := service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost)
	catalog := service.NewCatalogStore(kv, cfg.CatalogKey, ids, notifier, opts...)
	content := service.NewContentStore(kv, cfg.ContentKey, ids, notifier, opts...)
	progress := service.NewProgressTracker(kv, cfg.ProgressKey, notifier, opts...)

	if cfg.AdminEmail != "" {
		if _, err := authService.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminDisplayName, cfg.AdminPassword); err != nil {
			return err
		}
	}

	// Five sign-in attempts per client, refilling one every 12 seconds.
	limiter := service.NewLoginLimiter(1.0/12, 5)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, catalog, content, progress, hub, ids, limiter, cfg.CookieSecure)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	if rdb != nil {
		fwd, err := events.NewRedisBus(rdb, cfg.RedisChannel).Listen(gctx)
		if err != nil {
			return err
		}
		g.Go(func() error { return fwd.Run(gctx, hub) })
	}

	g.Go(func() error { return limiter.Run(gctx, 5*time.Minute) })

	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

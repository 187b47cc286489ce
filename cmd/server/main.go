package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/millionaire/internal/config"
	"github.com/playperu/millionaire/internal/database"
	"github.com/playperu/millionaire/internal/handler/health"
	"github.com/playperu/millionaire/internal/leaderboard"
	"github.com/playperu/millionaire/internal/migrations"
	"github.com/playperu/millionaire/internal/millionaire"
	"github.com/playperu/millionaire/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db, logger); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	store := server.NewSQLiteStore(db)
	if err := server.SeedQuestions(ctx, logger, store); err != nil {
		return fmt.Errorf("seeding questions: %w", err)
	}
	if cfg.SeedDemo {
		demo := server.DemoUser{Name: cfg.DemoName, Email: cfg.DemoEmail, Password: cfg.DemoPassword}
		if err := server.SeedDemoUser(ctx, logger, store, demo); err != nil {
			return fmt.Errorf("seeding demo user: %w", err)
		}
	}

	checks := map[string]health.Checker{"sqlite": health.SQL(db)}
	broker := server.NewBroker()
	metrics := server.NewMetrics()
	opts := []millionaire.Option{
		millionaire.WithListener(broker),
		millionaire.WithListener(metrics),
	}

	// --- Redis (optional) ---
	var board server.Leaderboard
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		lb := leaderboard.New(rdb, "millionaire:leaderboard")
		if err := server.SyncLeaderboard(ctx, store, lb); err != nil {
			return fmt.Errorf("syncing leaderboard: %w", err)
		}
		board = lb
		checks["redis"] = health.Redis(rdb)
		opts = append(opts, millionaire.WithListener(server.NewLeaderboardSync(logger, store, lb)))
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	engine := millionaire.NewEngine(store, rng, logger, opts...)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Store:       store,
		Engine:      engine,
		Broker:      broker,
		Metrics:     metrics,
		Leaderboard: board,
		SPADir:      cfg.SPADir,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/resell-pos/internal/adapters/db"
	redis_a "github.com/ammerola/resell-pos/internal/adapters/redis_adapter"
	"github.com/ammerola/resell-pos/internal/adapters/stockstore"
	"github.com/ammerola/resell-pos/internal/core/ports"
	"github.com/ammerola/resell-pos/internal/pkg/config"
	"github.com/ammerola/resell-pos/internal/pkg/logger"
	"github.com/ammerola/resell-pos/internal/workers"
)

func main() {
	var (
		file     = flag.String("file", "./opening_stock.xlsx", "Excel sheet with variant_id and quantity columns")
		backend  = flag.String("backend", "", "Stock backend override (postgres, redis, memory)")
		logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun   = flag.Bool("dry-run", false, "Parse the sheet without writing any quantity")
		enqueue  = flag.Bool("enqueue", false, "Hand the sheet to the worker instead of importing inline")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *backend != "" {
		cfg.Stock.Backend = strings.ToLower(*backend)
	}

	path, err := filepath.Abs(*file)
	if err != nil {
		slogger.Error("invalid file path", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	if *enqueue {
		if err := enqueueImport(ctx, cfg, path, slogger); err != nil {
			slogger.Error("failed to enqueue stock import", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	levels, err := workers.ReadStockSheet(path)
	if err != nil {
		slogger.Error("failed to read stock sheet", slog.String("file", path), slog.String("error", err.Error()))
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("PROGRESS: %d variants read from %s\n", len(levels), filepath.Base(path))

	if *dryRun {
		for _, level := range levels {
			fmt.Printf("  - variant %s: %d\n", level.VariantID, level.Quantity)
		}
		fmt.Println("\n[DRY RUN] No quantities were written")
		return
	}

	store, cache, closeAll, err := openStore(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to open stock store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeAll()

	written, err := workers.NewStockImportProcessor(store, cache, slogger).Import(ctx, levels)

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("OPENING STOCK SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Backend:          %s\n", cfg.Stock.Backend)
	fmt.Printf("Variants read:    %d\n", len(levels))
	fmt.Printf("Variants written: %d\n", written)

	if err != nil {
		slogger.Error("stock import stopped", slog.Int("written", written), slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("seed operation completed", slog.Int("variants", written))
}

// openStore connects only what the selected backend needs. The cache is
// opened whenever Redis is reachable so the API does not serve stale levels.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.VariantStockStore, ports.CacheRepository, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var database *db.Database
	if cfg.Stock.Backend == config.StockBackendPostgres {
		d, err := db.NewDatabase(ctx, &db.Config{
			Host:           cfg.Database.Host,
			Port:           cfg.Database.Port,
			User:           cfg.Database.User,
			Password:       cfg.Database.Password,
			Database:       cfg.Database.Name,
			SSLMode:        cfg.Database.SSLMode,
			MaxConnections: 2,
			MinConnections: 1,
			ConnectTimeout: cfg.Database.ConnectTimeout,
		}, logger)
		if err != nil {
			return nil, nil, closeAll, err
		}
		database = d
		closers = append(closers, d.Close)
	}

	var cache ports.CacheRepository
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddress(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	closers = append(closers, func() { client.Close() })
	if err := client.Ping(ctx).Err(); err != nil {
		if cfg.Stock.Backend == config.StockBackendRedis {
			closeAll()
			return nil, nil, func() {}, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Warn("redis unreachable, stock cache will not be invalidated", slog.String("error", err.Error()))
	} else {
		cache = redis_a.NewCache(client, cfg.Redis.TTL, logger)
	}

	store, err := stockstore.New(cfg.Stock, database, client, logger)
	if err != nil {
		closeAll()
		return nil, nil, func() {}, err
	}
	return store, cache, closeAll, nil
}

func enqueueImport(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) error {
	task, err := workers.NewStockImportTask(path)
	if err != nil {
		return err
	}

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	})
	defer client.Close()

	info, err := client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	logger.Info("stock import enqueued",
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue),
		slog.String("file", path))
	fmt.Printf("SUCCESS: enqueued %s as task %s\n", filepath.Base(path), info.ID)
	return nil
}

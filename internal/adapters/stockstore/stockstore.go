// internal/adapters/stockstore/stockstore.go
package stockstore

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/resell-pos/internal/adapters/db"
	"github.com/ammerola/resell-pos/internal/adapters/memory"
	redis_a "github.com/ammerola/resell-pos/internal/adapters/redis_adapter"
	"github.com/ammerola/resell-pos/internal/core/ports"
	"github.com/ammerola/resell-pos/internal/pkg/config"
)

// ErrUnknownBackend is returned for a STOCK_BACKEND value with no adapter
var ErrUnknownBackend = errors.New("unknown stock backend")

// New opens the variant stock store selected by cfg.Backend.
// database is only needed for postgres and client only for redis.
func New(cfg config.StockConfig, database *db.Database, client redis.UniversalClient, logger *slog.Logger) (ports.VariantStockStore, error) {
	switch cfg.Backend {
	case config.StockBackendPostgres:
		if database == nil {
			return nil, errors.New("postgres stock backend requires a database")
		}
		return db.NewStockStore(database, logger), nil
	case config.StockBackendRedis:
		if client == nil {
			return nil, errors.New("redis stock backend requires a redis client")
		}
		return redis_a.NewStockStore(client, cfg.RedisKey, logger), nil
	case config.StockBackendMemory:
		logger.Warn("using in-memory stock store, quantities are lost on restart")
		return memory.NewStockStore(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// internal/core/ports/database.go
package ports

import (
	"context"
)

// Database is the part of the connection pool the HTTP layer depends on:
// readiness checks and shutdown.
type Database interface {
	Close()
	Ping(ctx context.Context) error
	Health(ctx context.Context) map[string]interface{}
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"localmart/internal/config"
)

// Well-known keys of persisted client state.
const (
	KeyCart           = "cart"
	KeyFoodCart       = "food_cart"
	KeyFoodRestaurant = "food_cart_restaurant"
	KeyUser           = "user"
	KeyToken          = "token"
)

var (
	ErrNotFound = errors.New("storage: key not found")
	ErrClosed   = errors.New("storage: store closed")
)

// Store is a durable key-value store scoped to one client profile.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Watcher is implemented by stores that can notify about writes made by
// other clients sharing the same data.
type Watcher interface {
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

// Open builds the store selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return NewMemory(), nil
	case config.StorageSQLite, "":
		return OpenSQLite(ctx, cfg.StoragePath)
	case config.StorageRedis:
		return OpenRedis(ctx, cfg.RedisURL, "localmart:")
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.StorageDriver)
	}
}

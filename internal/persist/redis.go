package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shoetrack/internal/models"

	"github.com/go-redis/redis/v8"
)

// RedisGateway persists each blob under its own Redis key
type RedisGateway struct {
	rdb *redis.Client
}

// NewRedisGateway connects and pings the Redis server
func NewRedisGateway(addr, password string, db int) (*RedisGateway, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisGateway{rdb: rdb}, nil
}

func (g *RedisGateway) load(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := g.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, models.NewGatewayError("persist.load", true, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, models.NewGatewayError("persist.load", false, err)
	}
	return true, nil
}

func (g *RedisGateway) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return models.NewGatewayError("persist.save", false, err)
	}
	if err := g.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return models.NewGatewayError("persist.save", true, err)
	}
	return nil
}

// LoadCatalog loads the catalog blob
func (g *RedisGateway) LoadCatalog(ctx context.Context) ([]models.Product, bool, error) {
	var catalog []models.Product
	ok, err := g.load(ctx, KeyCatalog, &catalog)
	return catalog, ok, err
}

// SaveCatalog rewrites the catalog blob
func (g *RedisGateway) SaveCatalog(ctx context.Context, catalog []models.Product) error {
	return g.save(ctx, KeyCatalog, catalog)
}

// LoadLedger loads the ledger blob
func (g *RedisGateway) LoadLedger(ctx context.Context) ([]models.SaleRecord, bool, error) {
	var ledger []models.SaleRecord
	ok, err := g.load(ctx, KeyLedger, &ledger)
	return ledger, ok, err
}

// SaveLedger rewrites the ledger blob
func (g *RedisGateway) SaveLedger(ctx context.Context, ledger []models.SaleRecord) error {
	return g.save(ctx, KeyLedger, ledger)
}

// LoadSettings loads the settings blob
func (g *RedisGateway) LoadSettings(ctx context.Context) (models.Settings, bool, error) {
	var settings models.Settings
	ok, err := g.load(ctx, KeySettings, &settings)
	return settings, ok, err
}

// SaveSettings rewrites the settings blob
func (g *RedisGateway) SaveSettings(ctx context.Context, settings models.Settings) error {
	return g.save(ctx, KeySettings, settings)
}

// Close closes the Redis connection
func (g *RedisGateway) Close() error {
	return g.rdb.Close()
}

package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"shoetrack/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresGateway persists each blob as a row in a single key/value table.
// The blob stays opaque to the database; this driver exists for shops that
// already run Postgres and want the state off the terminal's disk.
type PostgresGateway struct {
	db *sqlx.DB
}

// NewPostgresGateway connects and ensures the blob table exists
func NewPostgresGateway(databaseURL string) (*PostgresGateway, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS state_blobs (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure blob table: %w", err)
	}

	return &PostgresGateway{db: db}, nil
}

func (g *PostgresGateway) load(ctx context.Context, key string, out interface{}) (bool, error) {
	var value string
	err := g.db.GetContext(ctx, &value, "SELECT value FROM state_blobs WHERE key = $1", key)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, models.NewGatewayError("persist.load", true, err)
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, models.NewGatewayError("persist.load", false, err)
	}
	return true, nil
}

func (g *PostgresGateway) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return models.NewGatewayError("persist.save", false, err)
	}
	_, err = g.db.ExecContext(ctx, `
		INSERT INTO state_blobs (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, string(data))
	if err != nil {
		return models.NewGatewayError("persist.save", true, err)
	}
	return nil
}

// LoadCatalog loads the catalog blob
func (g *PostgresGateway) LoadCatalog(ctx context.Context) ([]models.Product, bool, error) {
	var catalog []models.Product
	ok, err := g.load(ctx, KeyCatalog, &catalog)
	return catalog, ok, err
}

// SaveCatalog rewrites the catalog blob
func (g *PostgresGateway) SaveCatalog(ctx context.Context, catalog []models.Product) error {
	return g.save(ctx, KeyCatalog, catalog)
}

// LoadLedger loads the ledger blob
func (g *PostgresGateway) LoadLedger(ctx context.Context) ([]models.SaleRecord, bool, error) {
	var ledger []models.SaleRecord
	ok, err := g.load(ctx, KeyLedger, &ledger)
	return ledger, ok, err
}

// SaveLedger rewrites the ledger blob
func (g *PostgresGateway) SaveLedger(ctx context.Context, ledger []models.SaleRecord) error {
	return g.save(ctx, KeyLedger, ledger)
}

// LoadSettings loads the settings blob
func (g *PostgresGateway) LoadSettings(ctx context.Context) (models.Settings, bool, error) {
	var settings models.Settings
	ok, err := g.load(ctx, KeySettings, &settings)
	return settings, ok, err
}

// SaveSettings rewrites the settings blob
func (g *PostgresGateway) SaveSettings(ctx context.Context, settings models.Settings) error {
	return g.save(ctx, KeySettings, settings)
}

// Close closes the database connection
func (g *PostgresGateway) Close() error {
	return g.db.Close()
}

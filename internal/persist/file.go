package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shoetrack/internal/models"
)

// FileGateway persists each blob as a JSON file in a data directory.
// This is the default driver for a single-shop deployment with no
// external services.
type FileGateway struct {
	dir string
}

// NewFileGateway creates the data directory if needed
func NewFileGateway(dir string) (*FileGateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileGateway{dir: dir}, nil
}

func (g *FileGateway) path(key string) string {
	// keys carry a "shoetrack:" prefix; file names drop it
	name := strings.TrimPrefix(key, "shoetrack:")
	return filepath.Join(g.dir, name+".json")
}

func (g *FileGateway) load(key string, out interface{}) (bool, error) {
	data, err := os.ReadFile(g.path(key))
	if os.IsNotExist(err) {
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

func (g *FileGateway) save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return models.NewGatewayError("persist.save", false, err)
	}
	tmp := g.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return models.NewGatewayError("persist.save", true, err)
	}
	if err := os.Rename(tmp, g.path(key)); err != nil {
		return models.NewGatewayError("persist.save", true, err)
	}
	return nil
}

// LoadCatalog loads the catalog blob
func (g *FileGateway) LoadCatalog(_ context.Context) ([]models.Product, bool, error) {
	var catalog []models.Product
	ok, err := g.load(KeyCatalog, &catalog)
	return catalog, ok, err
}

// SaveCatalog rewrites the catalog blob
func (g *FileGateway) SaveCatalog(_ context.Context, catalog []models.Product) error {
	return g.save(KeyCatalog, catalog)
}

// LoadLedger loads the ledger blob
func (g *FileGateway) LoadLedger(_ context.Context) ([]models.SaleRecord, bool, error) {
	var ledger []models.SaleRecord
	ok, err := g.load(KeyLedger, &ledger)
	return ledger, ok, err
}

// SaveLedger rewrites the ledger blob
func (g *FileGateway) SaveLedger(_ context.Context, ledger []models.SaleRecord) error {
	return g.save(KeyLedger, ledger)
}

// LoadSettings loads the settings blob
func (g *FileGateway) LoadSettings(_ context.Context) (models.Settings, bool, error) {
	var settings models.Settings
	ok, err := g.load(KeySettings, &settings)
	return settings, ok, err
}

// SaveSettings rewrites the settings blob
func (g *FileGateway) SaveSettings(_ context.Context, settings models.Settings) error {
	return g.save(KeySettings, settings)
}

// Close is a no-op for the file driver
func (g *FileGateway) Close() error {
	return nil
}

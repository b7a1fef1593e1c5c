// Package persist implements the persistence gateway: three independently
// keyed blobs (catalog, ledger, settings), each serialized as JSON and
// rewritten wholesale on every save. "No stored value" on load means "use
// in-memory defaults" and is reported as ok=false, not as an error.
package persist

import (
	"context"

	"shoetrack/internal/models"
)

// Blob keys
const (
	KeyCatalog  = "shoetrack:catalog"
	KeyLedger   = "shoetrack:ledger"
	KeySettings = "shoetrack:settings"
)

// Gateway loads and saves the three state blobs
type Gateway interface {
	LoadCatalog(ctx context.Context) ([]models.Product, bool, error)
	SaveCatalog(ctx context.Context, catalog []models.Product) error

	LoadLedger(ctx context.Context) ([]models.SaleRecord, bool, error)
	SaveLedger(ctx context.Context, ledger []models.SaleRecord) error

	LoadSettings(ctx context.Context) (models.Settings, bool, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	Close() error
}

package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shoetrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileGatewayAbsentBlobsMeanDefaults(t *testing.T) {
	g, err := NewFileGateway(t.TempDir())
	require.NoError(t, err)
	defer g.Close()

	ctx := context.Background()

	_, ok, err := g.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "missing blob is not an error")

	_, ok, err = g.LoadLedger(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = g.LoadSettings(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileGatewayRoundTrip(t *testing.T) {
	g, err := NewFileGateway(t.TempDir())
	require.NoError(t, err)
	defer g.Close()

	ctx := context.Background()

	catalog := models.DefaultCatalog()
	ledger := []models.SaleRecord{
		{
			ID:          "sale-1",
			ProductID:   catalog[0].ID,
			ProductName: catalog[0].Name,
			Variant:     catalog[0].Variants[0],
			Quantity:    2,
			TotalPrice:  25000,
			Timestamp:   time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		},
	}
	settings := models.DefaultSettings()

	require.NoError(t, g.SaveCatalog(ctx, catalog))
	require.NoError(t, g.SaveLedger(ctx, ledger))
	require.NoError(t, g.SaveSettings(ctx, settings))

	gotCatalog, ok, err := g.LoadCatalog(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assertCatalogEqual(t, catalog, gotCatalog)

	gotLedger, ok, err := g.LoadLedger(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ledger, gotLedger)

	gotSettings, ok, err := g.LoadSettings(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, settings, gotSettings)
}

func TestFileGatewayCorruptBlob(t *testing.T) {
	dir := t.TempDir()
	g, err := NewFileGateway(dir)
	require.NoError(t, err)
	defer g.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.json"), []byte("{not json"), 0o644))

	_, _, err = g.LoadCatalog(context.Background())
	require.Error(t, err)
	assert.False(t, models.IsTransient(err), "corrupt data is not retryable")
}

// assertCatalogEqual compares catalogs field by field; CreatedAt loses its
// monotonic clock reading through JSON, so compare it by instant
func assertCatalogEqual(t *testing.T, want, got []models.Product) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
		want[i].CreatedAt = got[i].CreatedAt
		assert.Equal(t, want[i], got[i])
	}
}

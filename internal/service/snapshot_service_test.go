package service

import (
	"context"
	"encoding/json"
	"testing"

	"shoetrack/internal/models"
	"shoetrack/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotExportImportRoundTrip(t *testing.T) {
	st := newTestStore()
	_, err := st.Sell("shoe-1", "v-1", 2)
	require.NoError(t, err)

	svc := NewSnapshotService(st)
	snap := svc.Export(context.Background())
	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	other := store.New(nil, nil, models.Settings{})
	require.NoError(t, NewSnapshotService(other).Import(context.Background(), raw))

	assert.Len(t, other.Products(), 1)
	assert.Len(t, other.Sales(), 1)
	assert.Equal(t, st.Settings(), other.Settings())

	got, err := other.SaleByID(st.Sales()[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), got.TotalPrice)
}

func TestImportMalformedJSONLeavesStateUntouched(t *testing.T) {
	st := newTestStore()
	svc := NewSnapshotService(st)

	err := svc.Import(context.Background(), []byte("{broken"))
	assert.ErrorIs(t, err, models.ErrImportFormat)

	assert.Len(t, st.Products(), 1, "existing catalog survives a rejected import")
}

func TestImportRejectsMissingSections(t *testing.T) {
	st := newTestStore()
	svc := NewSnapshotService(st)

	err := svc.Import(context.Background(), []byte(`{"settings":{}}`))
	assert.ErrorIs(t, err, models.ErrImportFormat)
}

func TestImportRejectsInvalidRecords(t *testing.T) {
	st := newTestStore()
	svc := NewSnapshotService(st)

	raw, _ := json.Marshal(models.Snapshot{
		Catalog: []models.Product{{ID: "p-1", Name: "X"}},
		Ledger:  []models.SaleRecord{{ID: "s-1", Quantity: 0}},
	})

	err := svc.Import(context.Background(), raw)
	assert.ErrorIs(t, err, models.ErrImportFormat)
	assert.Empty(t, st.Sales())
}

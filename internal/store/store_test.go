package store

import (
	"testing"

	"shoetrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.Product {
	return []models.Product{
		{
			ID:            "shoe-1",
			Name:          "Air Max Pulse",
			Brand:         "Nike",
			RetailerPrice: 12500,
			Variants: []models.Variant{
				{ID: "v-1", Color: "Red/Black", Size: "42", Stock: 12},
				{ID: "v-2", Color: "White/Cyan", Size: "42", Stock: 5},
			},
		},
	}
}

func TestSellDecrementsStockAndAppendsLedger(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())

	record, err := s.Sell("shoe-1", "v-1", 3)
	require.NoError(t, err)

	assert.Equal(t, "shoe-1", record.ProductID)
	assert.Equal(t, "Air Max Pulse", record.ProductName)
	assert.Equal(t, 3, record.Quantity)
	assert.Equal(t, int64(12500*3), record.TotalPrice)

	p, err := s.ProductByID("shoe-1")
	require.NoError(t, err)
	assert.Equal(t, 9, p.Variants[0].Stock)
	assert.Len(t, s.Sales(), 1)
}

func TestSellInsufficientStockIsFullRejection(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())

	_, err := s.Sell("shoe-1", "v-2", 7)
	assert.ErrorIs(t, err, models.ErrStockInsufficient)

	p, err := s.ProductByID("shoe-1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Variants[1].Stock, "stock must be untouched")
	assert.Empty(t, s.Sales(), "no ledger entry on refusal")
}

func TestSellExactStockDrainsVariant(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())

	_, err := s.Sell("shoe-1", "v-2", 5)
	require.NoError(t, err)

	p, _ := s.ProductByID("shoe-1")
	assert.Equal(t, 0, p.Variants[1].Stock)

	_, err = s.Sell("shoe-1", "v-2", 1)
	assert.ErrorIs(t, err, models.ErrStockInsufficient)
}

func TestSellValidatesQuantity(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())

	_, err := s.Sell("shoe-1", "v-1", 0)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = s.Sell("shoe-1", "v-1", -2)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, s.Sales())
}

func TestSellUnknownProductOrVariant(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())

	_, err := s.Sell("missing", "v-1", 1)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.Sell("shoe-1", "missing", 1)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Empty(t, s.Sales(), "a failed match must not record a sale")
}

func TestSaleRecordIsSnapshotNotReference(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())

	record, err := s.Sell("shoe-1", "v-1", 2)
	require.NoError(t, err)

	// mutate and then delete the product; the ledger must not move
	require.NoError(t, s.SetStock("shoe-1", "v-1", 99))
	require.NoError(t, s.DeleteProduct("shoe-1"))

	got, err := s.SaleByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Air Max Pulse", got.ProductName)
	assert.Equal(t, "Red/Black", got.Variant.Color)
	assert.Equal(t, 10, got.Variant.Stock, "snapshot keeps the post-sale stock value")
}

func TestSetStock(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())

	require.NoError(t, s.SetStock("shoe-1", "v-1", 20))
	p, _ := s.ProductByID("shoe-1")
	assert.Equal(t, 20, p.Variants[0].Stock)

	// this layer accepts any value; only the sale path guards stock
	require.NoError(t, s.SetStock("shoe-1", "v-1", -1))
	p, _ = s.ProductByID("shoe-1")
	assert.Equal(t, -1, p.Variants[0].Stock)

	assert.ErrorIs(t, s.SetStock("missing", "v-1", 1), models.ErrNotFound)
	assert.ErrorIs(t, s.SetStock("shoe-1", "missing", 1), models.ErrNotFound)
}

func TestAddVariantAllowsDuplicateColorSize(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())

	v, err := s.AddVariant("shoe-1", models.Variant{Color: "Red/Black", Size: "42", Stock: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)

	p, _ := s.ProductByID("shoe-1")
	require.Len(t, p.Variants, 3)
	assert.NotEqual(t, p.Variants[0].ID, p.Variants[2].ID, "duplicates stay distinct entries")
}

func TestAddProductAssignsIDs(t *testing.T) {
	s := New(nil, nil, models.DefaultSettings())

	p := s.AddProduct(models.Product{
		Name:  "Cloudflow 4",
		Brand: "On",
		Variants: []models.Variant{
			{Color: "White", Size: "40", Stock: 2},
		},
	})

	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.Variants[0].ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, 2, p.TotalStock())
}

func TestAppendSaleSkipsStock(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())

	record := s.AppendSale(models.SaleRecord{
		ID:          "AI-123456",
		ProductID:   "ai-detected",
		ProductName: "Nike Red",
		Variant:     models.Variant{Color: "Red", Size: "42"},
		Quantity:    1,
		TotalPrice:  9000,
	})

	assert.Equal(t, "AI-123456", record.ID)
	assert.False(t, record.Timestamp.IsZero())
	assert.Len(t, s.Sales(), 1)

	p, _ := s.ProductByID("shoe-1")
	assert.Equal(t, 12, p.Variants[0].Stock, "catalog stock untouched")
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())
	_, err := s.Sell("shoe-1", "v-1", 1)
	require.NoError(t, err)

	snap := s.ExportSnapshot()

	other := New(nil, nil, models.Settings{})
	other.ImportSnapshot(snap)

	assert.Equal(t, snap.Catalog, other.Products())
	assert.Equal(t, snap.Ledger, other.Sales())
	assert.Equal(t, snap.Settings, other.Settings())
}

func TestSubscribeReceivesMutations(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())
	ch := s.Subscribe()

	_, err := s.Sell("shoe-1", "v-1", 1)
	require.NoError(t, err)

	scopes := map[Scope]bool{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-ch:
			scopes[m.Scope] = true
		default:
			t.Fatal("expected two mutation notifications")
		}
	}
	assert.True(t, scopes[ScopeCatalog])
	assert.True(t, scopes[ScopeLedger])
}

func TestReadsReturnCopies(t *testing.T) {
	s := New(testCatalog(), nil, models.DefaultSettings())

	p := s.Products()
	p[0].Variants[0].Stock = 999

	fresh, _ := s.ProductByID("shoe-1")
	assert.Equal(t, 12, fresh.Variants[0].Stock, "callers must not reach live state")
}

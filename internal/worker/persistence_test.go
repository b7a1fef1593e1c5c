package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"shoetrack/internal/models"
	"shoetrack/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu       sync.Mutex
	catalogs int
	ledgers  int
	settings int
	saved    chan string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{saved: make(chan string, 16)}
}

func (g *fakeGateway) LoadCatalog(context.Context) ([]models.Product, bool, error) {
	return nil, false, nil
}

func (g *fakeGateway) SaveCatalog(context.Context, []models.Product) error {
	g.mu.Lock()
	g.catalogs++
	g.mu.Unlock()
	g.saved <- "catalog"
	return nil
}

func (g *fakeGateway) LoadLedger(context.Context) ([]models.SaleRecord, bool, error) {
	return nil, false, nil
}

func (g *fakeGateway) SaveLedger(context.Context, []models.SaleRecord) error {
	g.mu.Lock()
	g.ledgers++
	g.mu.Unlock()
	g.saved <- "ledger"
	return nil
}

func (g *fakeGateway) LoadSettings(context.Context) (models.Settings, bool, error) {
	return models.Settings{}, false, nil
}

func (g *fakeGateway) SaveSettings(context.Context, models.Settings) error {
	g.mu.Lock()
	g.settings++
	g.mu.Unlock()
	g.saved <- "settings"
	return nil
}

func (g *fakeGateway) Close() error { return nil }

func seededStore() *store.Store {
	return store.New([]models.Product{
		{
			ID:            "shoe-1",
			Name:          "Air Max Pulse",
			RetailerPrice: 12500,
			Variants:      []models.Variant{{ID: "v-1", Color: "Red/Black", Size: "42", Stock: 5}},
		},
	}, nil, models.DefaultSettings())
}

func waitSaved(t *testing.T, g *fakeGateway, want string) {
	t.Helper()
	select {
	case got := <-g.saved:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s save", want)
	}
}

func TestWorkerSavesOnMutation(t *testing.T) {
	st := seededStore()
	gw := newFakeGateway()
	w := NewPersistenceWorker(st, gw)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	_, err := st.Sell("shoe-1", "v-1", 1)
	require.NoError(t, err)

	// a sale touches catalog stock and the ledger
	waitSaved(t, gw, "catalog")
	waitSaved(t, gw, "ledger")
}

func TestSaveAllFlushesEveryBlob(t *testing.T) {
	st := seededStore()
	gw := newFakeGateway()
	w := NewPersistenceWorker(st, gw)

	w.SaveAll(context.Background())

	assert.Equal(t, 1, gw.catalogs)
	assert.Equal(t, 1, gw.ledgers)
	assert.Equal(t, 1, gw.settings)
}

package store

import (
	"sync"
	"time"

	"shoetrack/internal/models"

	"github.com/google/uuid"
)

// Scope identifies which slice of state a mutation touched
type Scope string

const (
	ScopeCatalog  Scope = "catalog"
	ScopeLedger   Scope = "ledger"
	ScopeSettings Scope = "settings"
)

// Mutation describes a committed state change. Subscribers (persistence,
// event publishing) react after the fact; they are never on the commit
// path.
type Mutation struct {
	Scope Scope
	At    time.Time
}

// Store is the single authority over the catalog, the sale ledger and the
// application settings. All reads return copies; all writes happen under
// one lock so the "match variant, decrement stock, append record" sequence
// commits atomically.
type Store struct {
	mu       sync.RWMutex
	catalog  []models.Product
	ledger   []models.SaleRecord
	settings models.Settings

	subMu sync.Mutex
	subs  []chan Mutation
}

// New creates a store seeded with the given state. Nil catalog or ledger
// means start empty.
func New(catalog []models.Product, ledger []models.SaleRecord, settings models.Settings) *Store {
	return &Store{
		catalog:  cloneCatalog(catalog),
		ledger:   cloneLedger(ledger),
		settings: settings,
	}
}

// Subscribe returns a channel receiving a notification after every
// committed mutation. Slow subscribers drop notifications rather than
// stall writers; a dropped notification only delays a wholesale save that
// the next mutation triggers anyway.
func (s *Store) Subscribe() <-chan Mutation {
	ch := make(chan Mutation, 16)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

func (s *Store) notify(scope Scope) {
	m := Mutation{Scope: scope, At: time.Now()}
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- m:
		default:
		}
	}
}

// Products returns a copy of the full catalog
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCatalog(s.catalog)
}

// ProductByID returns a copy of the product, or ErrNotFound
func (s *Store) ProductByID(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			return cloneProduct(s.catalog[i]), nil
		}
	}
	return models.Product{}, models.ErrNotFound
}

// AddProduct appends a product to the catalog, assigning IDs to the
// product and any variants that lack one
func (s *Store) AddProduct(p models.Product) models.Product {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	for i := range p.Variants {
		if p.Variants[i].ID == "" {
			p.Variants[i].ID = uuid.New().String()
		}
	}

	s.mu.Lock()
	s.catalog = append(s.catalog, cloneProduct(p))
	s.mu.Unlock()

	s.notify(ScopeCatalog)
	return p
}

// DeleteProduct removes a product from the catalog. The ledger is
// untouched; historical sales keep their snapshots.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return models.ErrNotFound
	}
	s.catalog = append(s.catalog[:idx], s.catalog[idx+1:]...)
	s.mu.Unlock()

	s.notify(ScopeCatalog)
	return nil
}

// AddVariant appends a variant to a product and assigns its ID. Duplicate
// (color, size) pairs are allowed and remain distinct entries.
func (s *Store) AddVariant(productID string, v models.Variant) (models.Variant, error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}

	s.mu.Lock()
	p := s.findProduct(productID)
	if p == nil {
		s.mu.Unlock()
		return models.Variant{}, models.ErrNotFound
	}
	p.Variants = append(p.Variants, v)
	s.mu.Unlock()

	s.notify(ScopeCatalog)
	return v, nil
}

// SetStock replaces the stock count of one variant. Negative values are
// accepted here; the sale path is what enforces non-negative stock.
func (s *Store) SetStock(productID, variantID string, newStock int) error {
	s.mu.Lock()
	p := s.findProduct(productID)
	if p == nil {
		s.mu.Unlock()
		return models.ErrNotFound
	}
	v := findVariant(p, variantID)
	if v == nil {
		s.mu.Unlock()
		return models.ErrNotFound
	}
	v.Stock = newStock
	s.mu.Unlock()

	s.notify(ScopeCatalog)
	return nil
}

// Settings returns the current application settings
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings replaces the application settings
func (s *Store) UpdateSettings(settings models.Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	s.notify(ScopeSettings)
}

// findProduct returns a pointer into the catalog; callers hold s.mu
func (s *Store) findProduct(id string) *models.Product {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			return &s.catalog[i]
		}
	}
	return nil
}

// findVariant returns a pointer into the product's variant list
func findVariant(p *models.Product, variantID string) *models.Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

func cloneProduct(p models.Product) models.Product {
	out := p
	out.Variants = make([]models.Variant, len(p.Variants))
	copy(out.Variants, p.Variants)
	return out
}

func cloneCatalog(catalog []models.Product) []models.Product {
	out := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, cloneProduct(p))
	}
	return out
}

func cloneLedger(ledger []models.SaleRecord) []models.SaleRecord {
	out := make([]models.SaleRecord, len(ledger))
	copy(out, ledger)
	return out
}

package store

import (
	"time"

	"shoetrack/internal/models"

	"github.com/google/uuid"
)

// Sell commits a sale: it matches the variant by ID, verifies stock,
// decrements it and appends the ledger record under a single lock
// acquisition. Either both effects happen or neither does.
//
// Failure modes: quantity < 1 returns ErrValidation; missing product or
// variant returns ErrNotFound; stock < quantity returns
// ErrStockInsufficient. In every failure case no stock changes and no
// ledger entry is created.
func (s *Store) Sell(productID, variantID string, quantity int) (models.SaleRecord, error) {
	if quantity < 1 {
		return models.SaleRecord{}, models.ErrValidation
	}

	s.mu.Lock()
	p := s.findProduct(productID)
	if p == nil {
		s.mu.Unlock()
		return models.SaleRecord{}, models.ErrNotFound
	}
	v := findVariant(p, variantID)
	if v == nil {
		s.mu.Unlock()
		return models.SaleRecord{}, models.ErrNotFound
	}
	if v.Stock < quantity {
		s.mu.Unlock()
		return models.SaleRecord{}, models.ErrStockInsufficient
	}

	v.Stock -= quantity

	record := models.SaleRecord{
		ID:          uuid.New().String(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Variant:     *v, // value copy, never a live reference
		Quantity:    quantity,
		TotalPrice:  p.RetailerPrice * int64(quantity),
		Timestamp:   time.Now(),
	}
	s.ledger = append(s.ledger, record)
	s.mu.Unlock()

	s.notify(ScopeCatalog)
	s.notify(ScopeLedger)
	return record, nil
}

// AppendSale appends a pre-built record to the ledger without touching any
// variant stock. Used by the recognition fast path, where the sold item
// may not exist in the catalog at all.
func (s *Store) AppendSale(record models.SaleRecord) models.SaleRecord {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	s.mu.Lock()
	s.ledger = append(s.ledger, record)
	s.mu.Unlock()

	s.notify(ScopeLedger)
	return record
}

// Sales returns a copy of the full ledger in append order
func (s *Store) Sales() []models.SaleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLedger(s.ledger)
}

// SaleByID returns one ledger record, or ErrNotFound
func (s *Store) SaleByID(id string) (models.SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.ledger {
		if s.ledger[i].ID == id {
			return s.ledger[i], nil
		}
	}
	return models.SaleRecord{}, models.ErrNotFound
}

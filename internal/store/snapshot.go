package store

import (
	"time"

	"shoetrack/internal/models"
)

// ExportSnapshot captures the catalog, ledger and settings as one document
func (s *Store) ExportSnapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Snapshot{
		Catalog:    cloneCatalog(s.catalog),
		Ledger:     cloneLedger(s.ledger),
		Settings:   s.settings,
		ExportedAt: time.Now(),
	}
}

// ImportSnapshot replaces all three stores atomically with the snapshot's
// contents. Callers validate the snapshot first; by the time this runs the
// replacement is unconditional.
func (s *Store) ImportSnapshot(snap models.Snapshot) {
	s.mu.Lock()
	s.catalog = cloneCatalog(snap.Catalog)
	s.ledger = cloneLedger(snap.Ledger)
	s.settings = snap.Settings
	s.mu.Unlock()

	s.notify(ScopeCatalog)
	s.notify(ScopeLedger)
	s.notify(ScopeSettings)
}

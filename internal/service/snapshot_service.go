package service

import (
	"context"
	"encoding/json"
	"fmt"

	"shoetrack/internal/models"
	"shoetrack/internal/store"
	"shoetrack/internal/util"

	"go.uber.org/zap"
)

// SnapshotService exports and imports full-state snapshots
type SnapshotService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(st *store.Store) *SnapshotService {
	return &SnapshotService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// Export captures the catalog, ledger and settings as one document
func (s *SnapshotService) Export(_ context.Context) models.Snapshot {
	return s.store.ExportSnapshot()
}

// Import parses and validates a serialized snapshot, then replaces all
// three stores. A malformed document aborts with the existing state left
// untouched.
func (s *SnapshotService) Import(ctx context.Context, raw []byte) error {
	_, span := util.StartSpan(ctx, "SnapshotService.Import")
	defer span.End()

	snap, err := parseSnapshot(raw)
	if err != nil {
		util.SnapshotImportsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	s.store.ImportSnapshot(snap)

	util.SnapshotImportsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Snapshot imported",
		zap.Int("products", len(snap.Catalog)),
		zap.Int("sales", len(snap.Ledger)))
	return nil
}

// parseSnapshot validates the document shape before any state is touched
func parseSnapshot(raw []byte) (models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", models.ErrImportFormat, err)
	}
	if snap.Catalog == nil || snap.Ledger == nil {
		return models.Snapshot{}, fmt.Errorf("%w: missing catalog or ledger", models.ErrImportFormat)
	}
	for i, p := range snap.Catalog {
		if p.ID == "" {
			return models.Snapshot{}, fmt.Errorf("%w: product %d has no id", models.ErrImportFormat, i)
		}
	}
	for i, sale := range snap.Ledger {
		if sale.ID == "" {
			return models.Snapshot{}, fmt.Errorf("%w: sale %d has no id", models.ErrImportFormat, i)
		}
		if sale.Quantity < 1 {
			return models.Snapshot{}, fmt.Errorf("%w: sale %d has non-positive quantity", models.ErrImportFormat, i)
		}
	}
	return snap, nil
}

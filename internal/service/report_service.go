package service

import (
	"context"

	"shoetrack/internal/report"
	"shoetrack/internal/store"
)

// ReportService derives analytics from the current ledger
type ReportService struct {
	store *store.Store
}

// NewReportService creates a new report service
func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

// Summary recomputes the analytics view; the aggregation is pure, so two
// calls over an unchanged ledger yield identical results
func (s *ReportService) Summary(_ context.Context) report.Summary {
	return report.Summarize(s.store.Sales())
}

package service

import (
	"context"
	"errors"
	"fmt"

	"shoetrack/internal/broker"
	"shoetrack/internal/models"
	"shoetrack/internal/store"
	"shoetrack/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaleService handles the point-of-sale flow
type SaleService struct {
	store  *store.Store
	events *broker.EventPublisher
	logger *zap.Logger
}

// NewSaleService creates a new sale service. events may be nil when no
// broker is configured.
func NewSaleService(st *store.Store, events *broker.EventPublisher) *SaleService {
	return &SaleService{
		store:  st,
		events: events,
		logger: util.GetLogger(),
	}
}

// SellRequest represents a catalog sale
type SellRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// Sell commits a catalog sale. Stock decrement and ledger append happen
// atomically in the store; a refused sale leaves both untouched.
func (s *SaleService) Sell(ctx context.Context, req *SellRequest) (models.SaleRecord, error) {
	ctx, span := util.StartSpan(ctx, "SaleService.Sell")
	defer span.End()

	record, err := s.store.Sell(req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		util.SalesRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return models.SaleRecord{}, err
	}

	util.SalesCompletedTotal.Inc()
	util.RevenueTotal.Add(float64(record.TotalPrice))
	s.logger.Info("Sale committed",
		zap.String("sale_id", record.ID),
		zap.String("product_id", record.ProductID),
		zap.Int("quantity", record.Quantity),
		zap.Int64("total_price", record.TotalPrice))

	s.publishSaleCompleted(ctx, record, false)
	return record, nil
}

// RecordRecognizedSale records a sale built from a recognition match. The
// item bypasses the catalog entirely: a synthetic AI-prefixed identifier,
// a zero-stock variant snapshot, and no stock decrement anywhere, since
// the recognized item may not exist in inventory.
func (s *SaleService) RecordRecognizedSale(ctx context.Context, detection models.Detection) (models.SaleRecord, error) {
	ctx, span := util.StartSpan(ctx, "SaleService.RecordRecognizedSale")
	defer span.End()

	if !detection.IsMatch() {
		return models.SaleRecord{}, fmt.Errorf("%w: detection is not a match", models.ErrValidation)
	}

	record := s.store.AppendSale(models.SaleRecord{
		ID:          "AI-" + uuid.New().String(),
		ProductID:   "ai-detected",
		ProductName: detection.Brand + " " + detection.Color,
		Variant:     models.Variant{Color: detection.Color, Size: detection.Size, Stock: 0},
		Quantity:    1,
		TotalPrice:  detection.RetailerPrice,
	})

	util.SalesCompletedTotal.Inc()
	util.RecognizedSalesTotal.Inc()
	util.RevenueTotal.Add(float64(record.TotalPrice))
	s.logger.Info("Recognized sale recorded",
		zap.String("sale_id", record.ID),
		zap.String("product_name", record.ProductName),
		zap.Int64("total_price", record.TotalPrice))

	s.publishSaleCompleted(ctx, record, true)
	return record, nil
}

// ListSales returns the ledger in append order
func (s *SaleService) ListSales(_ context.Context) []models.SaleRecord {
	return s.store.Sales()
}

// GetSale returns one ledger record
func (s *SaleService) GetSale(_ context.Context, id string) (models.SaleRecord, error) {
	return s.store.SaleByID(id)
}

func (s *SaleService) publishSaleCompleted(ctx context.Context, record models.SaleRecord, recognized bool) {
	if s.events == nil {
		return
	}
	event := &models.SaleCompletedEvent{
		BaseEvent:   newBaseEvent(models.EventTypeSaleCompleted),
		SaleID:      record.ID,
		ProductID:   record.ProductID,
		ProductName: record.ProductName,
		Quantity:    record.Quantity,
		TotalPrice:  record.TotalPrice,
		Recognized:  recognized,
	}
	if err := s.events.PublishSaleCompleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish SaleCompleted event", zap.Error(err))
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, models.ErrStockInsufficient):
		return "insufficient_stock"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrValidation):
		return "invalid_input"
	default:
		return "error"
	}
}

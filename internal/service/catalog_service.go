package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shoetrack/internal/broker"
	"shoetrack/internal/models"
	"shoetrack/internal/store"
	"shoetrack/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService handles product catalog business logic
type CatalogService struct {
	store  *store.Store
	events *broker.EventPublisher
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service. events may be nil when
// no broker is configured.
func NewCatalogService(st *store.Store, events *broker.EventPublisher) *CatalogService {
	return &CatalogService{
		store:  st,
		events: events,
		logger: util.GetLogger(),
	}
}

// CreateProductRequest represents the catalog-entry form input
type CreateProductRequest struct {
	Name           string           `json:"name" binding:"required"`
	Brand          string           `json:"brand" binding:"required"`
	WholesalePrice int64            `json:"wholesale_price" binding:"min=0"`
	RetailerPrice  int64            `json:"retailer_price" binding:"required,min=0"`
	ImageURL       string           `json:"image_url"`
	Description    string           `json:"description"`
	Variants       []VariantRequest `json:"variants"`
}

// VariantRequest represents one variant in a create or add-variant call
type VariantRequest struct {
	Color string `json:"color" binding:"required"`
	Size  string `json:"size" binding:"required"`
	Stock int    `json:"stock" binding:"min=0"`
}

// CreateProduct validates the form input and adds the product to the
// catalog
func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Brand) == "" {
		return models.Product{}, fmt.Errorf("%w: name and brand are required", models.ErrValidation)
	}
	if req.WholesalePrice < 0 || req.RetailerPrice < 0 {
		return models.Product{}, fmt.Errorf("%w: prices must not be negative", models.ErrValidation)
	}

	variants := make([]models.Variant, 0, len(req.Variants))
	for _, v := range req.Variants {
		if v.Color == "" || v.Size == "" {
			continue // empty form slots are skipped, not rejected
		}
		variants = append(variants, models.Variant{Color: v.Color, Size: v.Size, Stock: v.Stock})
	}

	product := s.store.AddProduct(models.Product{
		Name:           req.Name,
		Brand:          req.Brand,
		WholesalePrice: req.WholesalePrice,
		RetailerPrice:  req.RetailerPrice,
		ImageURL:       req.ImageURL,
		Description:    req.Description,
		Variants:       variants,
	})

	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("variants", len(product.Variants)))

	s.publishProductCreated(ctx, product)
	return product, nil
}

// ListProducts returns the full catalog
func (s *CatalogService) ListProducts(_ context.Context) []models.Product {
	return s.store.Products()
}

// GetProduct returns one product by ID
func (s *CatalogService) GetProduct(_ context.Context, id string) (models.Product, error) {
	return s.store.ProductByID(id)
}

// DeleteProduct removes a product. Historical sales keep their snapshots.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteProduct")
	defer span.End()

	if err := s.store.DeleteProduct(id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))

	if s.events != nil {
		event := &models.ProductDeletedEvent{
			BaseEvent: newBaseEvent(models.EventTypeProductDeleted),
			ProductID: id,
		}
		if err := s.events.PublishProductDeleted(ctx, event); err != nil {
			s.logger.Error("Failed to publish ProductDeleted event", zap.Error(err))
		}
	}
	return nil
}

// AddVariant appends a variant to a product
func (s *CatalogService) AddVariant(ctx context.Context, productID string, req *VariantRequest) (models.Variant, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.AddVariant")
	defer span.End()

	if req.Color == "" || req.Size == "" {
		return models.Variant{}, fmt.Errorf("%w: color and size are required", models.ErrValidation)
	}
	if req.Stock < 0 {
		return models.Variant{}, fmt.Errorf("%w: stock must not be negative", models.ErrValidation)
	}

	variant, err := s.store.AddVariant(productID, models.Variant{
		Color: req.Color,
		Size:  req.Size,
		Stock: req.Stock,
	})
	if err != nil {
		return models.Variant{}, err
	}

	util.StockAdjustmentsTotal.Inc()
	s.logger.Info("Variant added",
		zap.String("product_id", productID),
		zap.String("variant_id", variant.ID))

	s.publishStockAdjusted(ctx, productID, variant.ID, variant.Stock)
	return variant, nil
}

// SetStock replaces one variant's stock count
func (s *CatalogService) SetStock(ctx context.Context, productID, variantID string, newStock int) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.SetStock")
	defer span.End()

	if err := s.store.SetStock(productID, variantID, newStock); err != nil {
		return err
	}

	util.StockAdjustmentsTotal.Inc()
	s.logger.Info("Stock updated",
		zap.String("product_id", productID),
		zap.String("variant_id", variantID),
		zap.Int("new_stock", newStock))

	s.publishStockAdjusted(ctx, productID, variantID, newStock)
	return nil
}

func (s *CatalogService) publishProductCreated(ctx context.Context, p models.Product) {
	if s.events == nil {
		return
	}
	event := &models.ProductCreatedEvent{
		BaseEvent: newBaseEvent(models.EventTypeProductCreated),
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Variants:  len(p.Variants),
	}
	if err := s.events.PublishProductCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductCreated event", zap.Error(err))
	}
}

func (s *CatalogService) publishStockAdjusted(ctx context.Context, productID, variantID string, newStock int) {
	if s.events == nil {
		return
	}
	event := &models.StockAdjustedEvent{
		BaseEvent: newBaseEvent(models.EventTypeStockAdjusted),
		ProductID: productID,
		VariantID: variantID,
		NewStock:  newStock,
	}
	if err := s.events.PublishStockAdjusted(ctx, event); err != nil {
		s.logger.Error("Failed to publish StockAdjusted event", zap.Error(err))
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

package models

import "time"

// Event types
const (
	EventTypeSaleCompleted   = "SALE_COMPLETED"
	EventTypeProductCreated  = "PRODUCT_CREATED"
	EventTypeProductDeleted  = "PRODUCT_DELETED"
	EventTypeStockAdjusted   = "STOCK_ADJUSTED"
	EventTypeSettingsUpdated = "SETTINGS_UPDATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// SaleCompletedEvent published when a sale is committed to the ledger
type SaleCompletedEvent struct {
	BaseEvent
	SaleID      string `json:"sale_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	TotalPrice  int64  `json:"total_price"`
	Recognized  bool   `json:"recognized"`
}

// ProductCreatedEvent published when a product enters the catalog
type ProductCreatedEvent struct {
	BaseEvent
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Variants  int    `json:"variants"`
}

// ProductDeletedEvent published when a product is removed
type ProductDeletedEvent struct {
	BaseEvent
	ProductID string `json:"product_id"`
}

// StockAdjustedEvent published on manual stock edits and variant additions
type StockAdjustedEvent struct {
	BaseEvent
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	NewStock  int    `json:"new_stock"`
}

// SettingsUpdatedEvent published when application settings change
type SettingsUpdatedEvent struct {
	BaseEvent
	Currency             string `json:"currency"`
	AIRecognitionEnabled bool   `json:"ai_recognition_enabled"`
}

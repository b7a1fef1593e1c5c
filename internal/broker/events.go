package broker

import (
	"context"

	"shoetrack/internal/models"
)

// publisher is the narrow producer surface the event publisher needs;
// tests substitute a recorder
type publisher interface {
	PublishEvent(ctx context.Context, key string, event interface{}) error
}

// EventPublisher publishes domain events for downstream consumers
// (analytics, audit). Publishing is best-effort: a broker outage never
// blocks or fails the triggering operation.
type EventPublisher struct {
	producer publisher
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer publisher) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishSaleCompleted publishes a SaleCompleted event
func (ep *EventPublisher) PublishSaleCompleted(ctx context.Context, event *models.SaleCompletedEvent) error {
	return ep.producer.PublishEvent(ctx, "sale-"+event.SaleID, event)
}

// PublishProductCreated publishes a ProductCreated event
func (ep *EventPublisher) PublishProductCreated(ctx context.Context, event *models.ProductCreatedEvent) error {
	return ep.producer.PublishEvent(ctx, "product-"+event.ProductID, event)
}

// PublishProductDeleted publishes a ProductDeleted event
func (ep *EventPublisher) PublishProductDeleted(ctx context.Context, event *models.ProductDeletedEvent) error {
	return ep.producer.PublishEvent(ctx, "product-"+event.ProductID, event)
}

// PublishStockAdjusted publishes a StockAdjusted event
func (ep *EventPublisher) PublishStockAdjusted(ctx context.Context, event *models.StockAdjustedEvent) error {
	return ep.producer.PublishEvent(ctx, "product-"+event.ProductID, event)
}

// PublishSettingsUpdated publishes a SettingsUpdated event
func (ep *EventPublisher) PublishSettingsUpdated(ctx context.Context, event *models.SettingsUpdatedEvent) error {
	return ep.producer.PublishEvent(ctx, "settings", event)
}

package service

import (
	"context"
	"fmt"

	"shoetrack/internal/broker"
	"shoetrack/internal/models"
	"shoetrack/internal/store"
	"shoetrack/internal/util"

	"go.uber.org/zap"
)

// SettingsService reads and updates the application settings
type SettingsService struct {
	store  *store.Store
	events *broker.EventPublisher
	logger *zap.Logger
}

// NewSettingsService creates a new settings service. events may be nil.
func NewSettingsService(st *store.Store, events *broker.EventPublisher) *SettingsService {
	return &SettingsService{
		store:  st,
		events: events,
		logger: util.GetLogger(),
	}
}

// Get returns the current settings plus the resolved currency symbol
func (s *SettingsService) Get(_ context.Context) (models.Settings, string) {
	settings := s.store.Settings()
	return settings, models.CurrencySymbol(settings.Currency)
}

// Update replaces the application settings
func (s *SettingsService) Update(ctx context.Context, settings models.Settings) error {
	switch settings.Currency {
	case models.CurrencyINR, models.CurrencyEUR, models.CurrencyGBP, models.CurrencyUSD:
	default:
		return fmt.Errorf("%w: unsupported currency %q", models.ErrValidation, settings.Currency)
	}

	s.store.UpdateSettings(settings)
	s.logger.Info("Settings updated",
		zap.String("currency", settings.Currency),
		zap.Bool("ai_recognition", settings.AIRecognitionEnabled))

	if s.events != nil {
		event := &models.SettingsUpdatedEvent{
			BaseEvent:            newBaseEvent(models.EventTypeSettingsUpdated),
			Currency:             settings.Currency,
			AIRecognitionEnabled: settings.AIRecognitionEnabled,
		}
		if err := s.events.PublishSettingsUpdated(ctx, event); err != nil {
			s.logger.Error("Failed to publish SettingsUpdated event", zap.Error(err))
		}
	}
	return nil
}

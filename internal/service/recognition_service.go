package service

import (
	"context"
	"errors"
	"time"

	"shoetrack/internal/models"
	"shoetrack/internal/store"
	"shoetrack/internal/util"

	"go.uber.org/zap"
)

// ErrRecognitionDisabled is returned when AI recognition is switched off
// in the settings
var ErrRecognitionDisabled = errors.New("recognition is disabled")

// Detector is the recognition gateway surface; tests substitute a fake
type Detector interface {
	Detect(ctx context.Context, imageBase64 string) (models.Detection, error)
}

// RecognitionService gates and classifies recognition gateway calls
type RecognitionService struct {
	detector Detector
	store    *store.Store
	logger   *zap.Logger
}

// NewRecognitionService creates a new recognition service
func NewRecognitionService(detector Detector, st *store.Store) *RecognitionService {
	return &RecognitionService{
		detector: detector,
		store:    st,
		logger:   util.GetLogger(),
	}
}

// DetectResult is the classified outcome of one detection call
type DetectResult struct {
	Matched    bool             `json:"matched"`
	Detection  models.Detection `json:"detection"`
	Suggestion *models.Product  `json:"suggestion,omitempty"`
}

// Detect runs one frame through the gateway. A low-confidence or
// no-detection response is a valid unmatched result, not an error;
// transient gateway failures propagate for the caller to retry.
func (s *RecognitionService) Detect(ctx context.Context, imageBase64 string) (DetectResult, error) {
	ctx, span := util.StartSpan(ctx, "RecognitionService.Detect")
	defer span.End()

	if !s.store.Settings().AIRecognitionEnabled {
		return DetectResult{}, ErrRecognitionDisabled
	}

	start := time.Now()
	detection, err := s.detector.Detect(ctx, imageBase64)
	util.RecognitionLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		util.RecognitionRequestsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("Recognition gateway call failed", zap.Error(err))
		return DetectResult{}, err
	}

	if !detection.IsMatch() {
		util.RecognitionRequestsTotal.WithLabelValues("no_match").Inc()
		s.logger.Info("No product detected",
			zap.Float64("confidence", detection.Confidence),
			zap.String("notes", detection.Notes))
		return DetectResult{Matched: false, Detection: detection}, nil
	}

	util.RecognitionRequestsTotal.WithLabelValues("match").Inc()
	s.logger.Info("Product detected",
		zap.String("brand", detection.Brand),
		zap.Float64("confidence", detection.Confidence))

	return DetectResult{
		Matched:    true,
		Detection:  detection,
		Suggestion: suggestionFromDetection(detection),
	}, nil
}

// suggestionFromDetection shapes a detection as a catalog-ready product
// for the attach-to-catalog flow
func suggestionFromDetection(d models.Detection) *models.Product {
	return &models.Product{
		Name:           d.Brand + " " + d.Color,
		Brand:          d.Brand,
		WholesalePrice: d.WholesalePrice,
		RetailerPrice:  d.RetailerPrice,
		Description:    d.Notes,
		Variants: []models.Variant{
			{Color: d.Color, Size: d.Size, Stock: 0},
		},
	}
}

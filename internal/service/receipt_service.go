package service

import (
	"context"

	"shoetrack/internal/models"
	"shoetrack/internal/printer"
	"shoetrack/internal/store"
	"shoetrack/internal/util"

	"go.uber.org/zap"
)

// ReceiptService renders receipts and drives the paired print device
type ReceiptService struct {
	store  *store.Store
	device printer.Device
	logger *zap.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(st *store.Store, device printer.Device) *ReceiptService {
	return &ReceiptService{
		store:  st,
		device: device,
		logger: util.GetLogger(),
	}
}

// Render produces the raw ESC/POS command stream for one sale, for either
// direct device printing or a host print dialog on the client side
func (s *ReceiptService) Render(_ context.Context, saleID string) ([]byte, error) {
	sale, err := s.store.SaleByID(saleID)
	if err != nil {
		return nil, err
	}

	settings := s.store.Settings()
	symbol := models.CurrencySymbol(settings.Currency)
	return printer.RenderReceipt(sale, settings.Company, symbol), nil
}

// Print renders the receipt and writes it to the paired device, holding
// the device only for the duration of the job
func (s *ReceiptService) Print(ctx context.Context, saleID string) error {
	ctx, span := util.StartSpan(ctx, "ReceiptService.Print")
	defer span.End()

	data, err := s.Render(ctx, saleID)
	if err != nil {
		return err
	}

	if err := s.device.Acquire(ctx); err != nil {
		util.PrintJobsTotal.WithLabelValues("error").Inc()
		return models.NewGatewayError("printer.acquire", true, err)
	}
	defer func() {
		if err := s.device.Release(); err != nil {
			s.logger.Warn("Failed to release printer", zap.Error(err))
		}
	}()

	if err := s.device.Write(ctx, data); err != nil {
		util.PrintJobsTotal.WithLabelValues("error").Inc()
		return models.NewGatewayError("printer.write", true, err)
	}

	util.PrintJobsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Receipt printed",
		zap.String("sale_id", saleID),
		zap.Int("bytes", len(data)))
	return nil
}

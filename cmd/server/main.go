package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shoetrack/config"
	"shoetrack/internal/api"
	"shoetrack/internal/broker"
	"shoetrack/internal/models"
	"shoetrack/internal/persist"
	"shoetrack/internal/printer"
	"shoetrack/internal/recognition"
	"shoetrack/internal/service"
	"shoetrack/internal/store"
	"shoetrack/internal/util"
	"shoetrack/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting shoetrack service")

	tp, err := util.InitTracer("shoetrack", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	gateway, err := newGateway(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize persistence gateway: %v", err)
	}
	defer gateway.Close()
	log.Printf("Persistence gateway ready: driver=%s", cfg.Persist.Driver)

	st, err := loadStore(gateway)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	var eventPublisher *broker.EventPublisher
	if cfg.Kafka.Enabled() {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		eventPublisher = broker.NewEventPublisher(producer)
		log.Println("Kafka producer initialized")
	}

	detector := recognition.NewClient(
		cfg.Recognition.Endpoint,
		cfg.Recognition.APIKey,
		time.Duration(cfg.Recognition.TimeoutSeconds)*time.Second,
	)

	var device printer.Device = printer.NopDevice{}
	if cfg.Printer.Mode == "network" && cfg.Printer.Addr != "" {
		device = printer.NewNetworkDevice(cfg.Printer.Addr)
		log.Printf("Network printer configured: %s", cfg.Printer.Addr)
	}

	catalogService := service.NewCatalogService(st, eventPublisher)
	saleService := service.NewSaleService(st, eventPublisher)
	reportService := service.NewReportService(st)
	recognitionService := service.NewRecognitionService(detector, st)
	receiptService := service.NewReceiptService(st, device)
	snapshotService := service.NewSnapshotService(st)
	settingsService := service.NewSettingsService(st, eventPublisher)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	persistWorker := worker.NewPersistenceWorker(st, gateway)
	go func() {
		if err := persistWorker.Start(workerCtx); err != nil && err != context.Canceled {
			log.Printf("Persistence worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(
		catalogService,
		saleService,
		reportService,
		recognitionService,
		receiptService,
		snapshotService,
		settingsService,
	)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	persistWorker.SaveAll(shutdownCtx)

	log.Println("Server exited")
}

// newGateway builds the persistence gateway selected by config
func newGateway(cfg *config.Config) (persist.Gateway, error) {
	switch cfg.Persist.Driver {
	case "redis":
		return persist.NewRedisGateway(cfg.Persist.RedisAddr, cfg.Persist.RedisPassword, cfg.Persist.RedisDB)
	case "postgres":
		return persist.NewPostgresGateway(cfg.Persist.DatabaseURL)
	default:
		return persist.NewFileGateway(cfg.Persist.DataDir)
	}
}

// loadStore loads persisted state, falling back to defaults blob by blob
// when nothing is stored yet
func loadStore(gateway persist.Gateway) (*store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	catalog, ok, err := gateway.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if !ok {
		catalog = models.DefaultCatalog()
		log.Println("No stored catalog, using defaults")
	}

	ledger, _, err := gateway.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	settings, ok, err := gateway.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok {
		settings = models.DefaultSettings()
	}

	log.Printf("State loaded: products=%d, sales=%d", len(catalog), len(ledger))
	return store.New(catalog, ledger, settings), nil
}

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"shoetrack/internal/models"
	"shoetrack/internal/service"
	"shoetrack/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog     *service.CatalogService
	sales       *service.SaleService
	reports     *service.ReportService
	recognition *service.RecognitionService
	receipts    *service.ReceiptService
	snapshots   *service.SnapshotService
	settings    *service.SettingsService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	sales *service.SaleService,
	reports *service.ReportService,
	recognition *service.RecognitionService,
	receipts *service.ReceiptService,
	snapshots *service.SnapshotService,
	settings *service.SettingsService,
) *Handler {
	return &Handler{
		catalog:     catalog,
		sales:       sales,
		reports:     reports,
		recognition: recognition,
		receipts:    receipts,
		snapshots:   snapshots,
		settings:    settings,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.createProduct)
		v1.GET("/products/:id", h.getProduct)
		v1.DELETE("/products/:id", h.deleteProduct)
		v1.POST("/products/:id/variants", h.addVariant)
		v1.PUT("/products/:id/variants/:variantID/stock", h.setStock)

		v1.GET("/sales", h.listSales)
		v1.POST("/sales", h.createSale)
		v1.POST("/sales/recognized", h.createRecognizedSale)
		v1.GET("/sales/:id/receipt", h.renderReceipt)
		v1.POST("/sales/:id/print", h.printReceipt)

		v1.GET("/reports/summary", h.reportSummary)

		v1.GET("/settings", h.getSettings)
		v1.PUT("/settings", h.updateSettings)

		v1.GET("/snapshot", h.exportSnapshot)
		v1.POST("/snapshot", h.importSnapshot)

		v1.POST("/recognition/detect", h.detect)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.catalog.ListProducts(c.Request.Context())})
}

func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addVariant(c *gin.Context) {
	var req service.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	variant, err := h.catalog.AddVariant(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, variant)
}

type setStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

func (h *Handler) setStock(c *gin.Context) {
	var req setStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	err := h.catalog.SetStock(c.Request.Context(), c.Param("id"), c.Param("variantID"), *req.Stock)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listSales(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sales": h.sales.ListSales(c.Request.Context())})
}

func (h *Handler) createSale(c *gin.Context) {
	var req service.SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	record, err := h.sales.Sell(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) createRecognizedSale(c *gin.Context) {
	var detection models.Detection
	if err := c.ShouldBindJSON(&detection); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	record, err := h.sales.RecordRecognizedSale(c.Request.Context(), detection)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) renderReceipt(c *gin.Context) {
	data, err := h.receipts.Render(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (h *Handler) printReceipt(c *gin.Context) {
	if err := h.receipts.Print(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "printed"})
}

func (h *Handler) reportSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.reports.Summary(c.Request.Context()))
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, symbol := h.settings.Get(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"settings": settings, "currency_symbol": symbol})
}

func (h *Handler) updateSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.settings.Update(c.Request.Context(), settings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) exportSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.snapshots.Export(c.Request.Context()))
}

func (h *Handler) importSnapshot(c *gin.Context) {
	// importing replaces all state; require an explicit confirmation
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import replaces all data; pass confirm=true"})
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	if err := h.snapshots.Import(c.Request.Context(), raw); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "imported"})
}

type detectRequest struct {
	Image string `json:"image" binding:"required"`
}

func (h *Handler) detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := h.recognition.Detect(c.Request.Context(), req.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps domain errors onto HTTP statuses. Transient gateway
// failures are flagged retryable so the client can surface a retry
// affordance.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRecognitionDisabled):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrStockInsufficient):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrImportFormat):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case models.IsTransient(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Diaealaoui/agrimanager-sub000/internal/domain/models"
	"github.com/Diaealaoui/agrimanager-sub000/internal/service/importer"
	"github.com/Diaealaoui/agrimanager-sub000/internal/service/inventory"
)

// InventoryHandler serves the CRUD endpoints for products, purchases,
// treatments, parcels and suppliers, plus the spreadsheet import trigger.
type InventoryHandler struct {
	svc         *inventory.Service
	importSvc   *importer.Service
	importRange string
	logger      *zap.Logger
}

// NewInventoryHandler constructs the inventory HTTP adapter. The importer
// may be nil when no spreadsheet source is configured.
func NewInventoryHandler(svc *inventory.Service, importSvc *importer.Service, importRange string, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, importSvc: importSvc, importRange: importRange, logger: logger}
}

// ListProducts returns all products.
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct stores a new product.
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var record models.ProductRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	saved, err := h.svc.CreateProduct(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdateProduct replaces an existing product.
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var record models.ProductRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	record.ID = id

	if err := h.svc.UpdateProduct(c.Request.Context(), record); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteProduct removes a product.
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPurchases returns purchases, optionally filtered by ?year=.
func (h *InventoryHandler) ListPurchases(c *gin.Context) {
	year := 0
	if c.Query("year") != "" {
		parsed, ok := yearQuery(c)
		if !ok {
			return
		}
		year = parsed
	}

	purchases, err := h.svc.ListPurchases(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

// CreatePurchase records a purchase and its stock side effect.
func (h *InventoryHandler) CreatePurchase(c *gin.Context) {
	var record models.PurchaseRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	saved, err := h.svc.RecordPurchase(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeletePurchase removes a purchase record.
func (h *InventoryHandler) DeletePurchase(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePurchase(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportPurchases pulls the configured spreadsheet range into the purchase
// collection. Returns 503 when no spreadsheet source is configured.
func (h *InventoryHandler) ImportPurchases(c *gin.Context) {
	if h.importSvc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet import not configured"})
		return
	}

	result, err := h.importSvc.ImportPurchases(c.Request.Context(), h.importRange)
	if err != nil {
		h.logger.Error("purchase import failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListTreatments returns treatments, optionally filtered by ?year=.
func (h *InventoryHandler) ListTreatments(c *gin.Context) {
	year := 0
	if c.Query("year") != "" {
		parsed, ok := yearQuery(c)
		if !ok {
			return
		}
		year = parsed
	}

	treatments, err := h.svc.ListTreatments(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"treatments": treatments})
}

// CreateTreatment records a treatment and its stock side effect.
func (h *InventoryHandler) CreateTreatment(c *gin.Context) {
	var record models.TreatmentRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	saved, err := h.svc.RecordTreatment(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteTreatment removes a treatment record.
func (h *InventoryHandler) DeleteTreatment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTreatment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListParcels returns all parcels.
func (h *InventoryHandler) ListParcels(c *gin.Context) {
	parcels, err := h.svc.ListParcels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parcels": parcels})
}

// CreateParcel stores a new parcel.
func (h *InventoryHandler) CreateParcel(c *gin.Context) {
	var record models.ParcelRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	saved, err := h.svc.CreateParcel(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdateParcel replaces an existing parcel.
func (h *InventoryHandler) UpdateParcel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var record models.ParcelRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	record.ID = id

	if err := h.svc.UpdateParcel(c.Request.Context(), record); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteParcel removes a parcel.
func (h *InventoryHandler) DeleteParcel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteParcel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSuppliers returns all suppliers.
func (h *InventoryHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.svc.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

// CreateSupplier stores a new supplier.
func (h *InventoryHandler) CreateSupplier(c *gin.Context) {
	var record models.SupplierRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	saved, err := h.svc.CreateSupplier(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteSupplier removes a supplier.
func (h *InventoryHandler) DeleteSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteSupplier(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

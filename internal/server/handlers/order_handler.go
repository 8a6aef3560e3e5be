package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Diaealaoui/agrimanager-sub000/internal/service/orders"
)

// OrderHandler serves the purchase order endpoints.
type OrderHandler struct {
	svc    *orders.Service
	logger *zap.Logger
}

// NewOrderHandler constructs the order HTTP adapter.
func NewOrderHandler(svc *orders.Service, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{svc: svc, logger: logger}
}

// List returns all orders.
func (h *OrderHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": records})
}

// Generate builds draft orders for every low-stock product.
func (h *OrderHandler) Generate(c *gin.Context) {
	generated, err := h.svc.Generate(c.Request.Context())
	if err != nil {
		h.logger.Error("order generation failed", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"orders": generated})
}

// Send marks a draft order as sent.
func (h *OrderHandler) Send(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.MarkSent(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

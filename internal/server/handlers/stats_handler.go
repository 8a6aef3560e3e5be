package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Diaealaoui/agrimanager-sub000/internal/service/dashboard"
)

// StatsHandler serves the dashboard, search and mix-batch endpoints.
type StatsHandler struct {
	svc    *dashboard.Service
	logger *zap.Logger
}

// NewStatsHandler constructs the stats HTTP adapter.
func NewStatsHandler(svc *dashboard.Service, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

// Dashboard returns the aggregated year summary.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	year, ok := yearQuery(c)
	if !ok {
		return
	}

	topN := 0
	if raw := c.Query("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid top"})
			return
		}
		topN = parsed
	}

	summary, err := h.svc.Summarize(c.Request.Context(), year, topN)
	if err != nil {
		h.logger.Error("failed to build dashboard", zap.Int("year", year), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Search runs the free-text matcher over products, suppliers and ingredients.
func (h *StatsHandler) Search(c *gin.Context) {
	results, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("search failed", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// MixBatches returns the year's treatments grouped into tank mixes.
func (h *StatsHandler) MixBatches(c *gin.Context) {
	year, ok := yearQuery(c)
	if !ok {
		return
	}

	batches, err := h.svc.MixBatches(c.Request.Context(), year)
	if err != nil {
		h.logger.Error("failed to group mix batches", zap.Int("year", year), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

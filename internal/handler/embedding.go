package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Allevandrose/realEstate/internal/model"
	"github.com/Allevandrose/realEstate/internal/service"
)

// EmbeddingHandler accepts externally computed listing embeddings, for
// backfills and offline pipelines.
type EmbeddingHandler struct {
	listings *service.ListingService
	log      *zap.Logger
}

// NewEmbeddingHandler creates a new embedding handler.
func NewEmbeddingHandler(listings *service.ListingService, log *zap.Logger) *EmbeddingHandler {
	return &EmbeddingHandler{listings: listings, log: log}
}

// BatchUpdate handles POST /api/v1/embeddings/batch.
func (h *EmbeddingHandler) BatchUpdate(c *gin.Context) {
	var req model.EmbeddingBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if len(req.Embeddings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No embeddings provided"})
		return
	}

	resp := h.listings.BatchUpdateEmbeddings(c.Request.Context(), &req)
	if resp.Failed > 0 {
		h.log.Warn("embedding batch partially failed",
			zap.Int("success", resp.Success),
			zap.Int("failed", resp.Failed))
	}

	c.JSON(http.StatusOK, resp)
}

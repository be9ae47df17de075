package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Allevandrose/realEstate/internal/model"
)

var validFeedbackActions = map[string]bool{
	"click":        true,
	"contact":      true,
	"view_details": true,
}

// FeedbackStore records user feedback on chat results.
type FeedbackStore interface {
	LogFeedback(ctx context.Context, feedback *model.FeedbackRequest) error
}

// FeedbackHandler handles feedback requests.
type FeedbackHandler struct {
	store FeedbackStore
	log   *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(store FeedbackStore, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{store: store, log: log}
}

// Submit handles POST /api/v1/feedback.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if !validFeedbackActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid action, must be one of: click, contact, view_details",
		})
		return
	}

	if err := h.store.LogFeedback(c.Request.Context(), &req); err != nil {
		h.log.Error("failed to log feedback", zap.String("chat_id", req.ChatID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record feedback"})
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{Success: true})
}

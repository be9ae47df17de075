package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Allevandrose/realEstate/internal/model"
	"github.com/Allevandrose/realEstate/internal/service"
)

// ChatHandler handles the conversational search endpoint.
type ChatHandler struct {
	chat *service.ChatService
	log  *zap.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat *service.ChatService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, log: log}
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.chat.Chat(c.Request.Context(), req.Message)
	if err != nil {
		h.log.Error("chat request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Chat failed, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skybook/middleware"
	"skybook/models"
	"skybook/services/assistant"
)

// ChatHandler exposes the conversational assistant over HTTP.
type ChatHandler struct {
	Assistant assistant.Service
	Logger    *zap.Logger
}

func NewChatHandler(svc assistant.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Assistant: svc, Logger: logger}
}

// HandleChat processes one conversation turn.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Assistant.HandleChat(c.Request.Context(), userID, req.SessionID, req.Message)
	if err != nil {
		h.Logger.Error("chat turn failed",
			zap.String("sessionId", req.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetSession discards a conversation so the next message starts fresh.
func (h *ChatHandler) ResetSession(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	sessionID := c.Param("sessionID")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session id"})
		return
	}

	if err := h.Assistant.ResetSession(c.Request.Context(), userID, sessionID); err != nil {
		h.Logger.Error("session reset failed",
			zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

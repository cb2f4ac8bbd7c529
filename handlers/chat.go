// File: handlers/chat.go
package handlers

import (
	"net/http"

	"adeonabot/models"
	"adeonabot/services/chat"
	"adeonabot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler returns the handler for POST /api/chat.
func ChatHandler(svc chat.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
			return
		}

		resp := svc.ProcessMessage(c.Request.Context(), req)

		utils.GetLogger().Debug("chat turn completed",
			zap.String("sessionId", resp.SessionID),
			zap.Int("sources", len(resp.Sources)))
		c.JSON(http.StatusOK, resp)
	}
}

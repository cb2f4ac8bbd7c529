// File: handlers/admin.go
package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"adeonabot/config"
	customerRepo "adeonabot/database/repository/customer"
	"adeonabot/models"
	"adeonabot/services/chat"
	"adeonabot/services/retrieval"
	"adeonabot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginHandler exchanges admin credentials for a JWT used on the
// /api/admin group.
func AdminLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
			return
		}

		cfg := config.AppConfig
		if req.Email != cfg.AdminEmail ||
			bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(req.Password)) != nil {
			utils.GetLogger().Warn("admin login rejected", zap.String("email", req.Email))
			utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", "")
			return
		}

		token, err := utils.GenerateToken("admin", req.Email, 12*time.Hour)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to issue token", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int((12 * time.Hour).Seconds())})
	}
}

// SessionStatsHandler reports live conversation-store counters.
func SessionStatsHandler(svc chat.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Sessions().Stats())
	}
}

// CustomerStatsHandler reports record-store counters.
func CustomerStatsHandler(repo customerRepo.CustomerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := repo.Stats(c.Request.Context())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to compute customer stats", err.Error())
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

type reloadKnowledgeRequest struct {
	// Path to a JSON file holding the scraped site content, an array
	// of {text, page_type, index} objects.
	ContentFile string `json:"contentFile" binding:"required"`
}

// ReloadKnowledgeHandler re-indexes site content into the vector store.
func ReloadKnowledgeHandler(indexer *retrieval.Indexer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reloadKnowledgeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
			return
		}

		data, err := os.ReadFile(req.ContentFile)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Failed to read content file", err.Error())
			return
		}

		var chunks []models.ContentChunk
		if err := json.Unmarshal(data, &chunks); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Malformed content file", err.Error())
			return
		}

		count, err := indexer.LoadChunks(c.Request.Context(), chunks)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Indexing failed", err.Error())
			return
		}

		utils.GetLogger().Info("knowledge base reloaded",
			zap.String("file", req.ContentFile), zap.Int("chunks", count))
		c.JSON(http.StatusOK, gin.H{"indexed": count})
	}
}

// HealthDetailHandler exposes the dependency health snapshot kept by
// the background monitor.
func HealthDetailHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo || !status.Redis {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}

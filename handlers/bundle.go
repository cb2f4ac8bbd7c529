// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct so route
// registration takes a single dependency.
type HandlerBundle struct {
	// Chat endpoints
	ChatHandler gin.HandlerFunc
	STTHandler  gin.HandlerFunc

	// Admin endpoints
	AdminLoginHandler      gin.HandlerFunc
	SessionStatsHandler    gin.HandlerFunc
	CustomerStatsHandler   gin.HandlerFunc
	ReloadKnowledgeHandler gin.HandlerFunc
	HealthDetailHandler    gin.HandlerFunc
}

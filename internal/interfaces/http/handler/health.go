package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tradegate/backend/internal/infrastructure/logger"
	"github.com/tradegate/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	db *persistence.Database
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *persistence.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check responds with the current health of the service
func (h *HealthHandler) Check(c *gin.Context) {
	reqLog := logger.GetGinLogger(c)
	if err := h.db.Ping(); err != nil {
		reqLog.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": "ok",
	})
}

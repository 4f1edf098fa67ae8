package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"kanban-board-api/internal/database"
)

// HealthHandler reports service and dependency status
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
	}
}

// Health godoc
// @Summary      Health check
// @Description  Reports database and redis connectivity.
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      503 {object} map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	overall := "healthy"
	dbStatus := "ok"
	redisStatus := "ok"

	if !database.IsConnected(h.db) {
		dbStatus = "unavailable"
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		redisStatus = "unavailable"
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"database":  dbStatus,
		"redis":     redisStatus,
		"timestamp": time.Now().UTC(),
	})
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ishamahajan23/candidate-referral-system/pkg/database"
)

// HealthHandler reports service liveness and database connectivity
type HealthHandler struct {
	db          *database.MongoDB
	environment string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.MongoDB, environment string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		environment: environment,
	}
}

// Check handles health check requests
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Server is running",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"mongoConnected": h.db.IsConnected(c.Request.Context()),
		"environment":    h.environment,
	})
}

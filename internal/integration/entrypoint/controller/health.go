package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker      func() bool
	sessionHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Sessions  string `json:"sessions"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil sessionHealthChecker means sessions are kept in memory.
func NewHealthController(dbHealthChecker, sessionHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:      dbHealthChecker,
		sessionHealthChecker: sessionHealthChecker,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	sessionStatus := "memory"
	if h.sessionHealthChecker != nil {
		sessionStatus = "disconnected"
		if h.sessionHealthChecker() {
			sessionStatus = "connected"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Sessions:  sessionStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

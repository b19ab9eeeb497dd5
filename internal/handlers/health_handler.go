package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sportstravel/internal/repositories"
)

// HealthHandler reports liveness from an explicit store handle rather than
// ambient connection state.
type HealthHandler struct {
	db      *sql.DB
	leads   *repositories.LeadRepository
	started time.Time
}

func NewHealthHandler(db *sql.DB, leads *repositories.LeadRepository) *HealthHandler {
	return &HealthHandler{db: db, leads: leads, started: time.Now()}
}

func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "connected"
	status := "healthy"
	code := http.StatusOK
	if err := h.db.Ping(); err != nil {
		dbStatus = "disconnected"
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	body := gin.H{
		"status":    status,
		"uptime":    fmt.Sprintf("%d seconds", int(time.Since(h.started).Seconds())),
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if dbStatus == "connected" {
		total, err := h.leads.CountLeads()
		if err == nil {
			byStatus, berr := h.leads.CountByStatus()
			if berr == nil {
				body["metrics"] = gin.H{
					"total_leads":     total,
					"leads_by_status": byStatus,
				}
			}
		}
	}

	c.JSON(code, body)
}

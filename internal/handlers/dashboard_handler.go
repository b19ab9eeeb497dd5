package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sportstravel/internal/services"
)

type DashboardHandler struct {
	Service *services.ReportService
}

func NewDashboardHandler(service *services.ReportService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.Service.GetSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) GetRevenueStats(c *gin.Context) {
	stats, err := h.Service.GetRevenueStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func recentLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 {
		limit = 5
	}
	return limit
}

func (h *DashboardHandler) GetRecentLeads(c *gin.Context) {
	leads, err := h.Service.RecentLeads(recentLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *DashboardHandler) GetRecentQuotes(c *gin.Context) {
	quotes, err := h.Service.RecentQuotes(recentLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quotes)
}

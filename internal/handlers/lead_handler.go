package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sportstravel/internal/authz"
	"sportstravel/internal/models"
	"sportstravel/internal/repositories"
	"sportstravel/internal/services"
)

type LeadHandler struct {
	Service *services.LeadService
}

func NewLeadHandler(service *services.LeadService) *LeadHandler {
	return &LeadHandler{Service: service}
}

type createLeadRequest struct {
	Name              string    `json:"name" binding:"required"`
	Email             string    `json:"email" binding:"required"`
	Phone             string    `json:"phone" binding:"required"`
	EventID           int       `json:"event_id" binding:"required"`
	PackageID         *int      `json:"package_id"`
	NumberOfTravelers int       `json:"number_of_travelers" binding:"required"`
	TravelDate        time.Time `json:"travel_date" binding:"required"`
	Notes             string    `json:"notes"`
}

// Create godoc
// @Summary Submit a new lead
// @Tags leads
// @Accept json
// @Produce json
// @Param body body createLeadRequest true "lead"
// @Success 201 {object} models.Lead
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead := &models.Lead{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		EventID:           req.EventID,
		PackageID:         req.PackageID,
		NumberOfTravelers: req.NumberOfTravelers,
		TravelDate:        req.TravelDate,
		Notes:             req.Notes,
	}
	if err := h.Service.Create(lead); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// List godoc
// @Summary List leads with filters and pagination
// @Tags leads
// @Produce json
// @Param status query string false "lead status"
// @Param event query int false "event id"
// @Param month query int false "travel month (1-12, current year)"
// @Success 200 {object} map[string]interface{}
// @Router /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)

	filter := repositories.LeadFilter{
		Status: models.LeadStatus(c.Query("status")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
		return
	}
	if v, err := strconv.Atoi(c.DefaultQuery("event", "0")); err == nil {
		filter.EventID = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("month", "0")); err == nil && v >= 1 && v <= 12 {
		filter.Month = time.Month(v)
	}

	leads, total, err := h.Service.List(filter, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list leads"})
		return
	}

	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"pagination": gin.H{
			"total": total,
			"page":  offset/limit + 1,
			"pages": pages,
		},
	})
}

// GetByID godoc
// @Summary Get a lead with its status history
// @Tags leads
// @Produce json
// @Param id path int true "lead id"
// @Success 200 {object} map[string]interface{}
// @Router /leads/{id} [get]
func (h *LeadHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	lead, err := h.Service.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	history, err := h.Service.GetHistory(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead, "history": history})
}

func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead := &models.Lead{
		ID:                id,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		EventID:           req.EventID,
		PackageID:         req.PackageID,
		NumberOfTravelers: req.NumberOfTravelers,
		TravelDate:        req.TravelDate,
		Notes:             req.Notes,
	}
	updated, err := h.Service.Update(lead)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type updateLeadStatusRequest struct {
	Status models.LeadStatus `json:"status" binding:"required"`
	Notes  string            `json:"notes"`
}

// UpdateStatus godoc
// @Summary Apply a funnel transition to a lead
// @Tags leads
// @Accept json
// @Produce json
// @Param id path int true "lead id"
// @Param body body updateLeadStatusRequest true "target status"
// @Success 200 {object} models.Lead
// @Router /leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req updateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := getUserAndRole(c)
	changedBy := models.ChangedBySystem
	if userID > 0 {
		changedBy = "user:" + strconv.Itoa(userID)
	}

	lead, err := h.Service.UpdateStatus(id, req.Status, req.Notes, changedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Delete is admin-only; it removes the lead and its audit trail.
func (h *LeadHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	_, roleID := getUserAndRole(c)
	if roleID != authz.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.Service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

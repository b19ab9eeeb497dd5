package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sportstravel/internal/models"
	"sportstravel/internal/services"
)

type EventHandler struct {
	Service *services.EventService
}

func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{Service: service}
}

type eventRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Location    string               `json:"location" binding:"required"`
	StartDate   time.Time            `json:"start_date" binding:"required"`
	EndDate     time.Time            `json:"end_date" binding:"required"`
	ImageURL    string               `json:"image_url"`
	Category    models.EventCategory `json:"category"`
	Featured    bool                 `json:"featured"`
}

func (r *eventRequest) toModel(id int) *models.Event {
	return &models.Event{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Featured:    r.Featured,
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := req.toModel(0)
	if err := h.Service.Create(event); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	event, err := h.Service.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Service.Update(req.toModel(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sportstravel/internal/models"
	"sportstravel/internal/services"
)

type PackageHandler struct {
	Service *services.PackageService
}

func NewPackageHandler(service *services.PackageService) *PackageHandler {
	return &PackageHandler{Service: service}
}

type packageRequest struct {
	EventID           int                `json:"event_id" binding:"required"`
	Name              string             `json:"name" binding:"required"`
	Description       string             `json:"description"`
	BasePrice         float64            `json:"base_price"`
	Inclusions        []string           `json:"inclusions"`
	Tier              models.PackageTier `json:"tier"`
	Duration          int                `json:"duration" binding:"required"`
	AccommodationType string             `json:"accommodation_type"`
	MaxTravelers      int                `json:"max_travelers" binding:"required"`
}

func (r *packageRequest) toModel(id int) *models.Package {
	return &models.Package{
		ID:                id,
		EventID:           r.EventID,
		Name:              r.Name,
		Description:       r.Description,
		BasePrice:         r.BasePrice,
		Inclusions:        r.Inclusions,
		Tier:              r.Tier,
		Duration:          r.Duration,
		AccommodationType: r.AccommodationType,
		MaxTravelers:      r.MaxTravelers,
	}
}

func (h *PackageHandler) Create(c *gin.Context) {
	var req packageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg := req.toModel(0)
	if err := h.Service.Create(pkg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

func (h *PackageHandler) List(c *gin.Context) {
	eventID, _ := strconv.Atoi(c.DefaultQuery("event", "0"))
	packages, err := h.Service.List(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list packages"})
		return
	}
	c.JSON(http.StatusOK, packages)
}

func (h *PackageHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pkg, err := h.Service.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *PackageHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req packageRequest
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

func (h *PackageHandler) Delete(c *gin.Context) {
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

package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sportstravel/internal/models"
	"sportstravel/internal/pdf"
	"sportstravel/internal/services"
)

type QuoteHandler struct {
	Service  *services.QuoteService
	Events   *services.EventService
	Packages *services.PackageService
	Leads    *services.LeadService
	PDF      pdf.Generator
}

func NewQuoteHandler(service *services.QuoteService, events *services.EventService, packages *services.PackageService, leads *services.LeadService, gen pdf.Generator) *QuoteHandler {
	return &QuoteHandler{Service: service, Events: events, Packages: packages, Leads: leads, PDF: gen}
}

type generateQuoteRequest struct {
	LeadID            int        `json:"lead_id" binding:"required"`
	EventID           int        `json:"event_id"`
	PackageID         int        `json:"package_id"`
	NumberOfTravelers int        `json:"number_of_travelers"`
	TravelDate        *time.Time `json:"travel_date"`
}

// Generate godoc
// @Summary Generate a priced quote for a lead
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body generateQuoteRequest true "quote request; omitted fields fall back to the lead record"
// @Success 201 {object} services.GenerateQuoteResult
// @Router /quotes/generate [post]
func (h *QuoteHandler) Generate(c *gin.Context) {
	var req generateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.GenerateQuoteInput{
		LeadID:            req.LeadID,
		EventID:           req.EventID,
		PackageID:         req.PackageID,
		NumberOfTravelers: req.NumberOfTravelers,
	}
	if req.TravelDate != nil {
		in.TravelDate = *req.TravelDate
	}

	result, err := h.Service.Generate(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *QuoteHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	quote, err := h.Service.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *QuoteHandler) ListByLead(c *gin.Context) {
	leadID, err := strconv.Atoi(c.Param("leadid"))
	if err != nil || leadID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead id"})
		return
	}
	quotes, err := h.Service.ListByLead(leadID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list quotes"})
		return
	}
	c.JSON(http.StatusOK, quotes)
}

type updateQuoteStatusRequest struct {
	Status models.QuoteStatus `json:"status" binding:"required"`
}

// UpdateStatus godoc
// @Summary Update a quote's status
// @Description Accepted and Rejected cascade into the lead funnel; the price is never recomputed.
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path int true "quote id"
// @Param body body updateQuoteStatusRequest true "target status"
// @Success 200 {object} models.Quote
// @Router /quotes/{id}/status [patch]
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.Service.UpdateStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

type updateQuoteRequest struct {
	ValidUntil time.Time `json:"valid_until" binding:"required"`
}

// Update handles the plain field update; it has no cascading effects.
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.Service.UpdateValidUntil(id, req.ValidUntil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Download renders the quote as a PDF.
func (h *QuoteHandler) Download(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	quote, err := h.Service.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	lead, err := h.Leads.GetByID(quote.LeadID)
	if err != nil {
		respondError(c, err)
		return
	}
	event, err := h.Events.GetByID(quote.EventID)
	if err != nil {
		respondError(c, err)
		return
	}
	pkg, err := h.Packages.GetByID(quote.PackageID)
	if err != nil {
		respondError(c, err)
		return
	}

	content, err := h.PDF.GenerateQuote(pdf.QuoteData{Lead: lead, Quote: quote, Event: event, Package: pkg})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render quote pdf"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="quote_%d.pdf"`, quote.ID))
	c.Data(http.StatusOK, "application/pdf", content)
}

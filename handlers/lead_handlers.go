package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rymdix/api/models"
	"rymdix/api/utils"
)

type LeadHandlers struct {
	LeadStore LeadRepository
}

func NewLeadHandlers(leadStore LeadRepository) *LeadHandlers {
	return &LeadHandlers{LeadStore: leadStore}
}

// SubmitLead handles the public contact form.
func (h *LeadHandlers) SubmitLead(c *gin.Context) {
	if h.LeadStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Contact form is not available right now"})
		return
	}

	var req models.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var company *string
	if req.Company != "" {
		company = &req.Company
	}

	lead, err := h.LeadStore.CreateLead(c.Request.Context(), req.Name, req.Email, company, req.Message)
	if err != nil {
		log.Printf("ERROR: Failed to save lead from %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit form. Please try again."})
		return
	}

	log.Printf("Lead submitted: ID=%s, Email=%s", lead.ID, lead.Email)
	c.JSON(http.StatusCreated, lead)
}

// ListLeads returns all leads for the admin area. The optional ?q= parameter
// applies the same case-insensitive substring match over name, email,
// company and message that the leads page uses, against the fetched list.
func (h *LeadHandlers) ListLeads(c *gin.Context) {
	if h.LeadStore == nil {
		c.JSON(http.StatusOK, []models.Lead{})
		return
	}

	leads, err := h.LeadStore.ListLeads(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: Failed to list leads: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leads"})
		return
	}

	query := c.Query("q")
	filtered := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		company := ""
		if lead.Company != nil {
			company = *lead.Company
		}
		if utils.MatchesQuery(query, lead.Name, lead.Email, company, lead.Message) {
			filtered = append(filtered, lead)
		}
	}

	c.JSON(http.StatusOK, filtered)
}

func (h *LeadHandlers) DeleteLead(c *gin.Context) {
	if h.LeadStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	id := c.Param("id")
	if err := h.LeadStore.DeleteLead(c.Request.Context(), id); err != nil {
		log.Printf("ERROR: Failed to delete lead %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted"})
}

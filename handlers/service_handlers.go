package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rymdix/api/models"
	"rymdix/api/utils"
)

type ServiceHandlers struct {
	ServiceStore ServiceRepository
}

func NewServiceHandlers(serviceStore ServiceRepository) *ServiceHandlers {
	return &ServiceHandlers{ServiceStore: serviceStore}
}

// ListPublishedServices serves the public service catalog in sort order.
func (h *ServiceHandlers) ListPublishedServices(c *gin.Context) {
	if h.ServiceStore == nil {
		c.JSON(http.StatusOK, []models.Service{})
		return
	}

	services, err := h.ServiceStore.ListServices(c.Request.Context(), true)
	if err != nil {
		log.Printf("ERROR: Failed to list published services: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load services"})
		return
	}
	if services == nil {
		services = []models.Service{}
	}

	c.JSON(http.StatusOK, services)
}

// GetPublishedService serves a public service detail page by slug.
func (h *ServiceHandlers) GetPublishedService(c *gin.Context) {
	if h.ServiceStore == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	svc, err := h.ServiceStore.GetServiceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, svc)
}

// ListServices returns the full catalog, drafts included, for the admin list.
// The optional ?q= parameter matches over title, slug and summary.
func (h *ServiceHandlers) ListServices(c *gin.Context) {
	if h.ServiceStore == nil {
		c.JSON(http.StatusOK, []models.Service{})
		return
	}

	services, err := h.ServiceStore.ListServices(c.Request.Context(), false)
	if err != nil {
		log.Printf("ERROR: Failed to list services: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load services"})
		return
	}

	query := c.Query("q")
	filtered := make([]models.Service, 0, len(services))
	for _, svc := range services {
		if utils.MatchesQuery(query, svc.Title, svc.Slug, svc.Summary) {
			filtered = append(filtered, svc)
		}
	}

	c.JSON(http.StatusOK, filtered)
}

func (h *ServiceHandlers) GetService(c *gin.Context) {
	if h.ServiceStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	svc, err := h.ServiceStore.GetServiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandlers) CreateService(c *gin.Context) {
	if h.ServiceStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !h.prepareSlug(c, &req.Slug, req.Title, "") {
		return
	}
	if req.IconName == "" {
		req.IconName = "Code"
	}

	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	} else {
		next, err := h.ServiceStore.NextSortOrder(c.Request.Context())
		if err != nil {
			log.Printf("ERROR: Failed to compute sort order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
			return
		}
		sortOrder = next
	}

	svc, err := h.ServiceStore.CreateService(c.Request.Context(), &req, sortOrder)
	if err != nil {
		log.Printf("ERROR: Failed to create service '%s': %v", req.Title, err)
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "already exists") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": "Failed to create service"})
		return
	}

	log.Printf("Service created: ID=%s, Slug=%s", svc.ID, svc.Slug)
	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandlers) UpdateService(c *gin.Context) {
	if h.ServiceStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	id := c.Param("id")

	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !h.prepareSlug(c, &req.Slug, req.Title, id) {
		return
	}
	if req.IconName == "" {
		req.IconName = "Code"
	}

	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	svc, err := h.ServiceStore.UpdateService(c.Request.Context(), id, &req, sortOrder)
	if err != nil {
		log.Printf("ERROR: Failed to update service %s: %v", id, err)
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		} else if strings.Contains(err.Error(), "already exists") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandlers) DeleteService(c *gin.Context) {
	if h.ServiceStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	id := c.Param("id")
	if err := h.ServiceStore.DeleteService(c.Request.Context(), id); err != nil {
		log.Printf("ERROR: Failed to delete service %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

func (h *ServiceHandlers) prepareSlug(c *gin.Context, slug *string, title, excludeID string) bool {
	if *slug == "" {
		*slug = utils.GenerateSlug(title)
	}
	if *slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A slug could not be derived from the title"})
		return false
	}

	exists, err := h.ServiceStore.SlugExists(c.Request.Context(), *slug, excludeID)
	if err != nil {
		log.Printf("ERROR: Slug check failed for '%s': %v", *slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify slug"})
		return false
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Slug already exists. Please use a different title or edit the slug."})
		return false
	}
	return true
}

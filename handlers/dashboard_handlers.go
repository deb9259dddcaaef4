package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rymdix/api/models"
)

type DashboardHandlers struct {
	LeadStore LeadRepository
	PostStore PostRepository
}

func NewDashboardHandlers(leadStore LeadRepository, postStore PostRepository) *DashboardHandlers {
	return &DashboardHandlers{LeadStore: leadStore, PostStore: postStore}
}

type dashboardStats struct {
	TotalPosts      int `json:"total_posts"`
	PublishedPosts  int `json:"published_posts"`
	TotalLeads      int `json:"total_leads"`
	LeadsLast30Days int `json:"leads_last_30_days"`
}

type dashboardResponse struct {
	Stats       dashboardStats    `json:"stats"`
	RecentLeads []models.Lead     `json:"recent_leads"`
	RecentPosts []models.BlogPost `json:"recent_posts"`
}

// GetDashboard aggregates the counts and recent activity the admin landing
// page shows: post totals, lead totals (all time and trailing 30 days), and
// the five most recent leads and posts.
func (h *DashboardHandlers) GetDashboard(c *gin.Context) {
	resp := dashboardResponse{
		RecentLeads: []models.Lead{},
		RecentPosts: []models.BlogPost{},
	}

	if h.LeadStore == nil || h.PostStore == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	ctx := c.Request.Context()

	totalPosts, publishedPosts, err := h.PostStore.CountPosts(ctx)
	if err != nil {
		log.Printf("ERROR: Failed to count posts for dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	totalLeads, recentLeadCount, err := h.LeadStore.CountLeads(ctx, thirtyDaysAgo)
	if err != nil {
		log.Printf("ERROR: Failed to count leads for dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	recentLeads, err := h.LeadStore.RecentLeads(ctx, 5)
	if err != nil {
		log.Printf("ERROR: Failed to load recent leads: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	recentPosts, err := h.PostStore.RecentPosts(ctx, 5)
	if err != nil {
		log.Printf("ERROR: Failed to load recent posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	resp.Stats = dashboardStats{
		TotalPosts:      totalPosts,
		PublishedPosts:  publishedPosts,
		TotalLeads:      totalLeads,
		LeadsLast30Days: recentLeadCount,
	}
	if recentLeads != nil {
		resp.RecentLeads = recentLeads
	}
	if recentPosts != nil {
		resp.RecentPosts = recentPosts
	}

	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rymdix/api/models"
)

func dashboardRouter(leads LeadRepository, posts PostRepository) *gin.Engine {
	r := gin.New()
	h := NewDashboardHandlers(leads, posts)
	r.GET("/api/admin/dashboard", h.GetDashboard)
	return r
}

func TestGetDashboard(t *testing.T) {
	now := time.Now()
	leadRepo := &fakeLeadRepo{leads: []models.Lead{
		{ID: "1", Name: "Recent", Email: "recent@example.com", CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "2", Name: "Old", Email: "old@example.com", CreatedAt: now.AddDate(0, 0, -90)},
	}}
	postRepo := &fakePostRepo{posts: []models.BlogPost{
		{ID: "post-1", Title: "Live", Slug: "live", Published: true},
		{ID: "post-2", Title: "Draft", Slug: "draft", Published: false},
		{ID: "post-3", Title: "Also Live", Slug: "also-live", Published: true},
	}}
	r := dashboardRouter(leadRepo, postRepo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Stats struct {
			TotalPosts      int `json:"total_posts"`
			PublishedPosts  int `json:"published_posts"`
			TotalLeads      int `json:"total_leads"`
			LeadsLast30Days int `json:"leads_last_30_days"`
		} `json:"stats"`
		RecentLeads []models.Lead     `json:"recent_leads"`
		RecentPosts []models.BlogPost `json:"recent_posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 3, resp.Stats.TotalPosts)
	assert.Equal(t, 2, resp.Stats.PublishedPosts)
	assert.Equal(t, 2, resp.Stats.TotalLeads)
	assert.Equal(t, 1, resp.Stats.LeadsLast30Days)
	assert.Len(t, resp.RecentLeads, 2)
	assert.Len(t, resp.RecentPosts, 3)
}

func TestGetDashboardWithoutDatabase(t *testing.T) {
	r := dashboardRouter(nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.JSONEq(t, "[]", string(resp["recent_leads"]))
	assert.JSONEq(t, "[]", string(resp["recent_posts"]))
}

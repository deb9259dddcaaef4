package handlers

import (
	"bytes"
	"context"
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

type fakeLeadRepo struct {
	leads   []models.Lead
	created []models.Lead
	deleted []string
}

func (f *fakeLeadRepo) CreateLead(ctx context.Context, name, email string, company *string, message string) (*models.Lead, error) {
	lead := models.Lead{
		ID:        "lead-1",
		Name:      name,
		Email:     email,
		Company:   company,
		Message:   message,
		CreatedAt: time.Now(),
	}
	f.created = append(f.created, lead)
	return &lead, nil
}

func (f *fakeLeadRepo) ListLeads(ctx context.Context) ([]models.Lead, error) {
	return f.leads, nil
}

func (f *fakeLeadRepo) RecentLeads(ctx context.Context, n int) ([]models.Lead, error) {
	if len(f.leads) > n {
		return f.leads[:n], nil
	}
	return f.leads, nil
}

func (f *fakeLeadRepo) CountLeads(ctx context.Context, since time.Time) (int, int, error) {
	recent := 0
	for _, lead := range f.leads {
		if !lead.CreatedAt.Before(since) {
			recent++
		}
	}
	return len(f.leads), recent, nil
}

func (f *fakeLeadRepo) DeleteLead(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func leadRouter(repo LeadRepository) *gin.Engine {
	r := gin.New()
	h := NewLeadHandlers(repo)
	r.POST("/api/leads", h.SubmitLead)
	r.GET("/api/admin/leads", h.ListLeads)
	r.DELETE("/api/admin/leads/:id", h.DeleteLead)
	return r
}

func TestSubmitLead(t *testing.T) {
	repo := &fakeLeadRepo{}
	r := leadRouter(repo)

	body, _ := json.Marshal(map[string]string{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"company": "Analytical Engines Ltd",
		"message": "We need a custom build.",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Ada Lovelace", repo.created[0].Name)
	require.NotNil(t, repo.created[0].Company)
	assert.Equal(t, "Analytical Engines Ltd", *repo.created[0].Company)
}

func TestSubmitLeadOmitsEmptyCompany(t *testing.T) {
	repo := &fakeLeadRepo{}
	r := leadRouter(repo)

	body, _ := json.Marshal(map[string]string{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"message": "Hello.",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)
	assert.Nil(t, repo.created[0].Company)
}

func TestSubmitLeadValidation(t *testing.T) {
	repo := &fakeLeadRepo{}
	r := leadRouter(repo)

	body, _ := json.Marshal(map[string]string{
		"name":    "Ada Lovelace",
		"email":   "not-an-email",
		"message": "Hello.",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.created)
}

func TestSubmitLeadWithoutDatabase(t *testing.T) {
	r := leadRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListLeadsSearch(t *testing.T) {
	company := "Analytical Engines Ltd"
	repo := &fakeLeadRepo{leads: []models.Lead{
		{ID: "1", Name: "Ada Lovelace", Email: "ada@example.com", Company: &company, Message: "Build us a compiler"},
		{ID: "2", Name: "Charles Babbage", Email: "charles@example.net", Message: "Need an engine audit"},
	}}
	r := leadRouter(repo)

	t.Run("no query returns everything", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/leads", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var leads []models.Lead
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &leads))
		assert.Len(t, leads, 2)
	})

	t.Run("matches company case-insensitively", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/leads?q=analytical", nil))

		var leads []models.Lead
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &leads))
		require.Len(t, leads, 1)
		assert.Equal(t, "1", leads[0].ID)
	})

	t.Run("matches message text", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/leads?q=audit", nil))

		var leads []models.Lead
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &leads))
		require.Len(t, leads, 1)
		assert.Equal(t, "2", leads[0].ID)
	})

	t.Run("no matches yields empty list", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/leads?q=turing", nil))

		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestListLeadsWithoutDatabase(t *testing.T) {
	r := leadRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/leads", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestDeleteLead(t *testing.T) {
	repo := &fakeLeadRepo{}
	r := leadRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/leads/lead-9", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"lead-9"}, repo.deleted)
}

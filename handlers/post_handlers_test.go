package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rymdix/api/models"
)

type fakePostRepo struct {
	posts  []models.BlogPost
	nextID int
}

func (f *fakePostRepo) ListPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	if !publishedOnly {
		return f.posts, nil
	}
	var out []models.BlogPost
	for _, p := range f.posts {
		if p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) RecentPosts(ctx context.Context, n int) ([]models.BlogPost, error) {
	if len(f.posts) > n {
		return f.posts[:n], nil
	}
	return f.posts, nil
}

func (f *fakePostRepo) CountPosts(ctx context.Context) (int, int, error) {
	published := 0
	for _, p := range f.posts {
		if p.Published {
			published++
		}
	}
	return len(f.posts), published, nil
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			return &f.posts[i], nil
		}
	}
	return nil, fmt.Errorf("post with id '%s' not found", id)
}

func (f *fakePostRepo) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	for i := range f.posts {
		if f.posts[i].Slug == slug && f.posts[i].Published {
			return &f.posts[i], nil
		}
	}
	return nil, fmt.Errorf("post with slug '%s' not found", slug)
}

func (f *fakePostRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	for _, p := range f.posts {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostRepo) CreatePost(ctx context.Context, req *models.BlogPostRequest) (*models.BlogPost, error) {
	f.nextID++
	post := models.BlogPost{
		ID:        fmt.Sprintf("post-%d", f.nextID),
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Published: req.Published,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.posts = append(f.posts, post)
	return &post, nil
}

func (f *fakePostRepo) UpdatePost(ctx context.Context, id string, req *models.BlogPostRequest) (*models.BlogPost, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].Title = req.Title
			f.posts[i].Slug = req.Slug
			f.posts[i].Excerpt = req.Excerpt
			f.posts[i].Content = req.Content
			f.posts[i].Published = req.Published
			f.posts[i].UpdatedAt = time.Now()
			return &f.posts[i], nil
		}
	}
	return nil, fmt.Errorf("post with id '%s' not found", id)
}

func (f *fakePostRepo) DeletePost(ctx context.Context, id string) error {
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("post with id '%s' not found", id)
}

func postRouter(repo PostRepository) *gin.Engine {
	r := gin.New()
	h := NewPostHandlers(repo)
	r.GET("/api/posts", h.ListPublishedPosts)
	r.GET("/api/posts/:slug", h.GetPublishedPost)
	r.GET("/api/admin/posts", h.ListPosts)
	r.POST("/api/admin/posts", h.CreatePost)
	r.PUT("/api/admin/posts/:id", h.UpdatePost)
	r.DELETE("/api/admin/posts/:id", h.DeletePost)
	return r
}

func TestCreatePostDerivesSlug(t *testing.T) {
	repo := &fakePostRepo{}
	r := postRouter(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"title":     "Shipping an MVP in 30 Days!",
		"content":   "Some content.",
		"published": true,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var post models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "shipping-an-mvp-in-30-days", post.Slug)
}

func TestCreatePostKeepsExplicitSlug(t *testing.T) {
	repo := &fakePostRepo{}
	r := postRouter(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Shipping an MVP",
		"slug":  "mvp-guide",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var post models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "mvp-guide", post.Slug)
}

func TestCreatePostSlugConflict(t *testing.T) {
	repo := &fakePostRepo{posts: []models.BlogPost{
		{ID: "post-0", Title: "Existing", Slug: "mvp-guide"},
	}}
	r := postRouter(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "MVP Guide",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Slug already exists")
}

func TestUpdatePostAllowsOwnSlug(t *testing.T) {
	repo := &fakePostRepo{posts: []models.BlogPost{
		{ID: "post-1", Title: "MVP Guide", Slug: "mvp-guide"},
	}}
	r := postRouter(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "MVP Guide, Revised",
		"slug":  "mvp-guide",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/posts/post-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPublishedPostIncludesReadTime(t *testing.T) {
	content := strings.TrimSpace(strings.Repeat("word ", 401))
	repo := &fakePostRepo{posts: []models.BlogPost{
		{ID: "post-1", Title: "Long Read", Slug: "long-read", Content: content, Published: true},
	}}
	r := postRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/long-read", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Slug     string `json:"slug"`
		ReadTime string `json:"read_time"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "long-read", detail.Slug)
	assert.Equal(t, "3 min read", detail.ReadTime)
}

func TestPublicIndexExcludesDrafts(t *testing.T) {
	repo := &fakePostRepo{posts: []models.BlogPost{
		{ID: "post-1", Title: "Live", Slug: "live", Published: true},
		{ID: "post-2", Title: "Draft", Slug: "draft", Published: false},
	}}
	r := postRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	var posts []models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "live", posts[0].Slug)
}

func TestAdminListFiltersByQuery(t *testing.T) {
	repo := &fakePostRepo{posts: []models.BlogPost{
		{ID: "post-1", Title: "Scaling Postgres", Slug: "scaling-postgres", Excerpt: "Indexes and planners"},
		{ID: "post-2", Title: "Hiring Engineers", Slug: "hiring-engineers", Excerpt: "Interviews that work"},
	}}
	r := postRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/posts?q=postgres", nil))

	var posts []models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "post-1", posts[0].ID)
}

func TestPublicIndexWithoutDatabase(t *testing.T) {
	r := postRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rymdix/api/models"
	"rymdix/api/utils"
)

type PostHandlers struct {
	PostStore PostRepository
}

func NewPostHandlers(postStore PostRepository) *PostHandlers {
	return &PostHandlers{PostStore: postStore}
}

// postDetail decorates a post with its derived reading-time label.
type postDetail struct {
	models.BlogPost
	ReadTime string `json:"read_time"`
}

// ListPublishedPosts serves the public blog index.
func (h *PostHandlers) ListPublishedPosts(c *gin.Context) {
	if h.PostStore == nil {
		c.JSON(http.StatusOK, []models.BlogPost{})
		return
	}

	posts, err := h.PostStore.ListPosts(c.Request.Context(), true)
	if err != nil {
		log.Printf("ERROR: Failed to list published posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}

	c.JSON(http.StatusOK, posts)
}

// GetPublishedPost serves the public post detail page by slug.
func (h *PostHandlers) GetPublishedPost(c *gin.Context) {
	if h.PostStore == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	slug := c.Param("slug")
	post, err := h.PostStore.GetPostBySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, postDetail{BlogPost: *post, ReadTime: utils.ReadTime(post.Content)})
}

// ListPosts returns all posts, drafts included, for the admin list. The
// optional ?q= parameter matches over title, slug and excerpt.
func (h *PostHandlers) ListPosts(c *gin.Context) {
	if h.PostStore == nil {
		c.JSON(http.StatusOK, []models.BlogPost{})
		return
	}

	posts, err := h.PostStore.ListPosts(c.Request.Context(), false)
	if err != nil {
		log.Printf("ERROR: Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	query := c.Query("q")
	filtered := make([]models.BlogPost, 0, len(posts))
	for _, post := range posts {
		if utils.MatchesQuery(query, post.Title, post.Slug, post.Excerpt) {
			filtered = append(filtered, post)
		}
	}

	c.JSON(http.StatusOK, filtered)
}

func (h *PostHandlers) GetPost(c *gin.Context) {
	if h.PostStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	post, err := h.PostStore.GetPostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandlers) CreatePost(c *gin.Context) {
	if h.PostStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	var req models.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !h.prepareSlug(c, &req.Slug, req.Title, "") {
		return
	}

	post, err := h.PostStore.CreatePost(c.Request.Context(), &req)
	if err != nil {
		log.Printf("ERROR: Failed to create post '%s': %v", req.Title, err)
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "already exists") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": "Failed to create post"})
		return
	}

	log.Printf("Post created: ID=%s, Slug=%s", post.ID, post.Slug)
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandlers) UpdatePost(c *gin.Context) {
	if h.PostStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	id := c.Param("id")

	var req models.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !h.prepareSlug(c, &req.Slug, req.Title, id) {
		return
	}

	post, err := h.PostStore.UpdatePost(c.Request.Context(), id, &req)
	if err != nil {
		log.Printf("ERROR: Failed to update post %s: %v", id, err)
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		} else if strings.Contains(err.Error(), "already exists") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandlers) DeletePost(c *gin.Context) {
	if h.PostStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	id := c.Param("id")
	if err := h.PostStore.DeletePost(c.Request.Context(), id); err != nil {
		log.Printf("ERROR: Failed to delete post %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// prepareSlug derives a slug from the title when none was supplied and runs
// the uniqueness pre-check, excluding the record under edit. Returns false
// after writing an error response. The unique index remains the authority if
// two editors race past this check.
func (h *PostHandlers) prepareSlug(c *gin.Context, slug *string, title, excludeID string) bool {
	if *slug == "" {
		*slug = utils.GenerateSlug(title)
	}
	if *slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A slug could not be derived from the title"})
		return false
	}

	exists, err := h.PostStore.SlugExists(c.Request.Context(), *slug, excludeID)
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

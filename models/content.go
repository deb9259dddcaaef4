package models

import "time"

// BlogPost mirrors the blog_posts table.
type BlogPost struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	CoverImageURL *string   `json:"cover_image_url,omitempty"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BlogPostRequest struct {
	Title         string `json:"title" binding:"required"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	CoverImageURL string `json:"cover_image_url"`
	Published     bool   `json:"published"`
}

// Service mirrors the services table (service-catalog entries).
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	Description *string   `json:"description,omitempty"`
	Bullets     []string  `json:"bullets,omitempty"`
	IconName    string    `json:"icon_name"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Published   bool      `json:"published"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ServiceRequest struct {
	Title       string   `json:"title" binding:"required"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets"`
	IconName    string   `json:"icon_name"`
	ImageURL    string   `json:"image_url"`
	Published   bool     `json:"published"`
	SortOrder   *int     `json:"sort_order"`
}

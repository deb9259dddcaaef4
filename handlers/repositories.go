package handlers

import (
	"context"
	"time"

	"rymdix/api/models"
)

// Repository interfaces decouple handlers from the concrete Postgres stores
// so the backing store can be swapped or faked in tests. A nil repository
// means the database is not configured; handlers degrade to empty lists and
// disabled forms instead of failing.

type LeadRepository interface {
	CreateLead(ctx context.Context, name, email string, company *string, message string) (*models.Lead, error)
	ListLeads(ctx context.Context) ([]models.Lead, error)
	RecentLeads(ctx context.Context, n int) ([]models.Lead, error)
	CountLeads(ctx context.Context, since time.Time) (total int, recent int, err error)
	DeleteLead(ctx context.Context, id string) error
}

type PostRepository interface {
	ListPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error)
	RecentPosts(ctx context.Context, n int) ([]models.BlogPost, error)
	CountPosts(ctx context.Context) (total int, published int, err error)
	GetPostByID(ctx context.Context, id string) (*models.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	CreatePost(ctx context.Context, req *models.BlogPostRequest) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, id string, req *models.BlogPostRequest) (*models.BlogPost, error)
	DeletePost(ctx context.Context, id string) error
}

type ServiceRepository interface {
	ListServices(ctx context.Context, publishedOnly bool) ([]models.Service, error)
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	NextSortOrder(ctx context.Context) (int, error)
	CreateService(ctx context.Context, req *models.ServiceRequest, sortOrder int) (*models.Service, error)
	UpdateService(ctx context.Context, id string, req *models.ServiceRequest, sortOrder int) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, email string, hashedPassword []byte) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type TrafficRepository interface {
	InsertTrafficEvents(ctx context.Context, events []models.TrafficEvent) error
	GetDailyTraffic(ctx context.Context, start, end time.Time) ([]models.DailyTraffic, error)
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"rymdix/api/models"
)

type ServiceStore struct {
	db *sql.DB
}

func NewServiceStore(db *sql.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

const serviceColumns = `id, title, slug, summary, description, bullets, icon_name, image_url, published, sort_order, created_at, updated_at`

func scanService(row interface{ Scan(...interface{}) error }) (*models.Service, error) {
	svc := &models.Service{}
	err := row.Scan(
		&svc.ID,
		&svc.Title,
		&svc.Slug,
		&svc.Summary,
		&svc.Description,
		pq.Array(&svc.Bullets),
		&svc.IconName,
		&svc.ImageURL,
		&svc.Published,
		&svc.SortOrder,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// ListServices returns services in catalog order (sort_order ascending).
func (s *ServiceStore) ListServices(ctx context.Context, publishedOnly bool) ([]models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY sort_order ASC, created_at ASC;`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		services = append(services, *svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing services: %w", err)
	}

	return services, nil
}

func (s *ServiceStore) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1;`
	svc, err := scanService(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("service with id '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get service by id: %w", err)
	}
	return svc, nil
}

func (s *ServiceStore) GetServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE slug = $1 AND published = TRUE;`
	svc, err := scanService(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("service with slug '%s' not found", slug)
		}
		return nil, fmt.Errorf("failed to get service by slug: %w", err)
	}
	return svc, nil
}

// SlugExists reports whether another service already uses the slug.
func (s *ServiceStore) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM services WHERE slug = $1 AND id::text <> $2);`
	if err := s.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

// NextSortOrder returns max(sort_order)+1, the default position for a new
// catalog entry.
func (s *ServiceStore) NextSortOrder(ctx context.Context) (int, error) {
	var next int
	query := `SELECT COALESCE(MAX(sort_order), -1) + 1 FROM services;`
	if err := s.db.QueryRowContext(ctx, query).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute next sort order: %w", err)
	}
	return next, nil
}

func (s *ServiceStore) CreateService(ctx context.Context, req *models.ServiceRequest, sortOrder int) (*models.Service, error) {
	query := `
		INSERT INTO services (title, slug, summary, description, bullets, icon_name, image_url, published, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + serviceColumns + `;`
	svc, err := scanService(s.db.QueryRowContext(ctx, query,
		req.Title, req.Slug, req.Summary, nullable(req.Description), pq.Array(req.Bullets),
		req.IconName, nullable(req.ImageURL), req.Published, sortOrder))
	if err != nil {
		if isDuplicateSlug(err) {
			return nil, fmt.Errorf("service with slug '%s' already exists", req.Slug)
		}
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *ServiceStore) UpdateService(ctx context.Context, id string, req *models.ServiceRequest, sortOrder int) (*models.Service, error) {
	query := `
		UPDATE services
		SET title = $2, slug = $3, summary = $4, description = $5, bullets = $6,
		    icon_name = $7, image_url = $8, published = $9, sort_order = $10, updated_at = now()
		WHERE id = $1
		RETURNING ` + serviceColumns + `;`
	svc, err := scanService(s.db.QueryRowContext(ctx, query,
		id, req.Title, req.Slug, req.Summary, nullable(req.Description), pq.Array(req.Bullets),
		req.IconName, nullable(req.ImageURL), req.Published, sortOrder))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("service with id '%s' not found", id)
		}
		if isDuplicateSlug(err) {
			return nil, fmt.Errorf("service with slug '%s' already exists", req.Slug)
		}
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

func (s *ServiceStore) DeleteService(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("service with id '%s' not found", id)
	}
	return nil
}

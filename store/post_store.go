package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"rymdix/api/models"
)

type PostStore struct {
	db *sql.DB
}

func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, excerpt, content, cover_image_url, published, created_at, updated_at`

func scanPost(row interface{ Scan(...interface{}) error }) (*models.BlogPost, error) {
	post := &models.BlogPost{}
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.CoverImageURL,
		&post.Published,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns posts newest first. When publishedOnly is set, drafts are
// excluded (the public blog index).
func (s *PostStore) ListPosts(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing posts: %w", err)
	}

	return posts, nil
}

// RecentPosts returns the n most recently updated posts, drafts included.
func (s *PostStore) RecentPosts(ctx context.Context, n int) ([]models.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts ORDER BY updated_at DESC LIMIT $1;`
	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent posts: %w", err)
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while querying recent posts: %w", err)
	}

	return posts, nil
}

// CountPosts returns total and published post counts.
func (s *PostStore) CountPosts(ctx context.Context) (total int, published int, err error) {
	query := `SELECT count(*), count(*) FILTER (WHERE published) FROM blog_posts;`
	if err = s.db.QueryRowContext(ctx, query).Scan(&total, &published); err != nil {
		return 0, 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return total, published, nil
}

func (s *PostStore) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE id = $1;`
	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("post with id '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return post, nil
}

// GetPostBySlug fetches a single published post for the public detail page.
func (s *PostStore) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE slug = $1 AND published = TRUE;`
	post, err := scanPost(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("post with slug '%s' not found", slug)
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return post, nil
}

// SlugExists reports whether another post already uses the slug. excludeID is
// the post being edited ("" on create). Pre-check only; the unique index on
// blog_posts.slug is the real authority.
func (s *PostStore) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1 AND id::text <> $2);`
	if err := s.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

func (s *PostStore) CreatePost(ctx context.Context, req *models.BlogPostRequest) (*models.BlogPost, error) {
	query := `
		INSERT INTO blog_posts (title, slug, excerpt, content, cover_image_url, published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + postColumns + `;`
	post, err := scanPost(s.db.QueryRowContext(ctx, query,
		req.Title, req.Slug, req.Excerpt, req.Content, nullable(req.CoverImageURL), req.Published))
	if err != nil {
		if isDuplicateSlug(err) {
			return nil, fmt.Errorf("post with slug '%s' already exists", req.Slug)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (s *PostStore) UpdatePost(ctx context.Context, id string, req *models.BlogPostRequest) (*models.BlogPost, error) {
	query := `
		UPDATE blog_posts
		SET title = $2, slug = $3, excerpt = $4, content = $5, cover_image_url = $6, published = $7, updated_at = now()
		WHERE id = $1
		RETURNING ` + postColumns + `;`
	post, err := scanPost(s.db.QueryRowContext(ctx, query,
		id, req.Title, req.Slug, req.Excerpt, req.Content, nullable(req.CoverImageURL), req.Published))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("post with id '%s' not found", id)
		}
		if isDuplicateSlug(err) {
			return nil, fmt.Errorf("post with slug '%s' already exists", req.Slug)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (s *PostStore) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("post with id '%s' not found", id)
	}
	return nil
}

// nullable maps an empty optional form field to SQL NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func isDuplicateSlug(err error) bool {
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

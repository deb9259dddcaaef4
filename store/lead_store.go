package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rymdix/api/models"
)

type LeadStore struct {
	db *sql.DB
}

func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

// CreateLead inserts a contact-form submission.
func (s *LeadStore) CreateLead(ctx context.Context, name, email string, company *string, message string) (*models.Lead, error) {
	lead := &models.Lead{}
	query := `
		INSERT INTO leads (name, email, company, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, company, message, created_at;
	`
	err := s.db.QueryRowContext(ctx, query, name, email, company, message).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Company,
		&lead.Message,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	return lead, nil
}

// ListLeads returns all leads, newest first.
func (s *LeadStore) ListLeads(ctx context.Context) ([]models.Lead, error) {
	query := `
		SELECT id, name, email, company, message, created_at
		FROM leads
		ORDER BY created_at DESC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Company, &lead.Message, &lead.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while listing leads: %w", err)
	}

	return leads, nil
}

// RecentLeads returns the n most recent leads.
func (s *LeadStore) RecentLeads(ctx context.Context, n int) ([]models.Lead, error) {
	query := `
		SELECT id, name, email, company, message, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1;
	`
	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Company, &lead.Message, &lead.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error while querying recent leads: %w", err)
	}

	return leads, nil
}

// CountLeads returns the total lead count and the count created since the
// given cutoff.
func (s *LeadStore) CountLeads(ctx context.Context, since time.Time) (total int, recent int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM leads;`).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("failed to count leads: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM leads WHERE created_at >= $1;`, since).Scan(&recent); err != nil {
		return 0, 0, fmt.Errorf("failed to count recent leads: %w", err)
	}
	return total, recent, nil
}

// DeleteLead removes a lead by ID.
func (s *LeadStore) DeleteLead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lead with id '%s' not found", id)
	}
	return nil
}

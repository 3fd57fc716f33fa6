package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fundline/internal/domain/lead"
	"fundline/pkg/errors"
)

// Compile-time check
var _ lead.Repository = (*LeadRepository)(nil)

// LeadRepository implements lead.Repository using sqlx
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a new lead
func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO leads (id, name, phone, email, loan_type, source, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.Phone, l.Email, l.LoanType, l.Source, l.Notes, l.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "insert lead")
	}

	return nil
}

// GetByID retrieves a lead by ID
func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error) {
	var l lead.Lead

	query := `SELECT * FROM leads WHERE id = $1`

	err := r.db.GetContext(ctx, &l, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNotFound, "lead %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get lead")
	}

	return &l, nil
}

// ListRecent retrieves the newest leads
func (r *LeadRepository) ListRecent(ctx context.Context, limit int) ([]lead.Lead, error) {
	if limit <= 0 {
		limit = 50
	}

	var leads []lead.Lead

	query := `SELECT * FROM leads ORDER BY created_at DESC LIMIT $1`

	if err := r.db.SelectContext(ctx, &leads, query, limit); err != nil {
		return nil, errors.Wrap(err, "list leads")
	}

	return leads, nil
}

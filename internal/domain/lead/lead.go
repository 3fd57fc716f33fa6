package lead

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead is a captured contact waiting for officer follow-up.
type Lead struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	LoanType  string    `db:"loan_type" json:"loanType"`
	Source    string    `db:"source" json:"source"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Repository persists leads.
type Repository interface {
	Create(ctx context.Context, l *Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*Lead, error)
	ListRecent(ctx context.Context, limit int) ([]Lead, error)
}

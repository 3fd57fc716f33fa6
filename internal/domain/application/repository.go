package application

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository stores mid-flow conversation state keyed by session ID.
type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*ConversationState, error)
	Save(ctx context.Context, state *ConversationState, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
	Exists(ctx context.Context, sessionID string) (bool, error)
}

// Archived is a completed application persisted for officers and
// downstream export.
type Archived struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	SessionID   string          `db:"session_id" json:"sessionId"`
	LoanType    string          `db:"loan_type" json:"loanType"`
	Data        ApplicantRecord `db:"-" json:"data"`
	Score       int             `db:"score" json:"score"`
	Probability string          `db:"probability" json:"probability"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

// ArchiveRepository persists completed applications.
type ArchiveRepository interface {
	Save(ctx context.Context, archived *Archived) error
	GetByID(ctx context.Context, id uuid.UUID) (*Archived, error)
	GetBySessionID(ctx context.Context, sessionID string) (*Archived, error)
}

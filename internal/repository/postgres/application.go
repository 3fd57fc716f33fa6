package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fundline/internal/domain/application"
	"fundline/pkg/errors"
)

// Compile-time check
var _ application.ArchiveRepository = (*ApplicationRepository)(nil)

// ApplicationRepository implements application.ArchiveRepository using sqlx
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// archivedRow maps the applications table; applicant data lives in a
// JSONB column.
type archivedRow struct {
	ID          uuid.UUID `db:"id"`
	SessionID   string    `db:"session_id"`
	LoanType    string    `db:"loan_type"`
	Data        []byte    `db:"data"`
	Score       int       `db:"score"`
	Probability string    `db:"probability"`
	CreatedAt   time.Time `db:"created_at"`
}

// Save inserts a completed application
func (r *ApplicationRepository) Save(ctx context.Context, archived *application.Archived) error {
	if archived.ID == uuid.Nil {
		archived.ID = uuid.New()
	}
	if archived.CreatedAt.IsZero() {
		archived.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(archived.Data)
	if err != nil {
		return errors.Wrap(err, "marshal applicant data")
	}

	query := `
		INSERT INTO applications (id, session_id, loan_type, data, score, probability, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (session_id) DO UPDATE SET
			data = EXCLUDED.data,
			score = EXCLUDED.score,
			probability = EXCLUDED.probability`

	_, err = r.db.ExecContext(ctx, query,
		archived.ID, archived.SessionID, archived.LoanType, data,
		archived.Score, archived.Probability, archived.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "insert application")
	}

	return nil
}

// GetByID retrieves a completed application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*application.Archived, error) {
	var row archivedRow

	query := `SELECT * FROM applications WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNotFound, "application %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get application")
	}

	return row.toDomain()
}

// GetBySessionID retrieves a completed application by session ID
func (r *ApplicationRepository) GetBySessionID(ctx context.Context, sessionID string) (*application.Archived, error) {
	var row archivedRow

	query := `SELECT * FROM applications WHERE session_id = $1`

	err := r.db.GetContext(ctx, &row, query, sessionID)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNotFound, "application for session %s", sessionID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get application by session")
	}

	return row.toDomain()
}

func (row archivedRow) toDomain() (*application.Archived, error) {
	archived := &application.Archived{
		ID:          row.ID,
		SessionID:   row.SessionID,
		LoanType:    row.LoanType,
		Score:       row.Score,
		Probability: row.Probability,
		CreatedAt:   row.CreatedAt,
	}

	if err := json.Unmarshal(row.Data, &archived.Data); err != nil {
		return nil, errors.Wrap(err, "unmarshal applicant data")
	}

	return archived, nil
}

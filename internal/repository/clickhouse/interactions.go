package clickhouse

import (
	"context"
	"time"

	"fundline/internal/adapters/clickhouse"
	"fundline/internal/domain/analytics"
	"fundline/pkg/errors"
)

// Compile-time check
var _ analytics.Recorder = (*InteractionRepository)(nil)

// InteractionRepository records step-level interaction events and
// serves drop-off reports from ClickHouse.
type InteractionRepository struct {
	client *clickhouse.Client
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(client *clickhouse.Client) *InteractionRepository {
	return &InteractionRepository{client: client}
}

// RecordStepEvent appends one interaction row
func (r *InteractionRepository) RecordStepEvent(ctx context.Context, event analytics.StepEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	query := `INSERT INTO interaction_events (session_id, step, loan_type, event_type, timestamp)`

	if err := r.client.AsyncInsert(ctx, query, &event); err != nil {
		return errors.Wrap(err, "insert interaction event")
	}
	return nil
}

// DropoffRates aggregates per-step views, completions, and drop-off
// since the given time
func (r *InteractionRepository) DropoffRates(ctx context.Context, since time.Time) ([]analytics.DropoffRow, error) {
	query := `
		SELECT
			step,
			countIf(event_type = 'step_viewed')    AS views,
			countIf(event_type = 'step_completed') AS completions,
			if(views > 0, 1 - completions / views, 0) AS dropoff_rate
		FROM interaction_events
		WHERE timestamp >= ?
		GROUP BY step
		ORDER BY views DESC`

	var rows []analytics.DropoffRow
	if err := r.client.Query(ctx, &rows, query, since); err != nil {
		return nil, errors.Wrap(err, "query dropoff rates")
	}

	return rows, nil
}

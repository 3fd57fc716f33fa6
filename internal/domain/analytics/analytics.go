package analytics

import (
	"context"
	"time"
)

// Event types recorded per dialogue step.
const (
	EventStepViewed    = "step_viewed"
	EventStepCompleted = "step_completed"
)

// StepEvent is one interaction row in the analytics store.
type StepEvent struct {
	SessionID string    `ch:"session_id"`
	Step      string    `ch:"step"`
	LoanType  string    `ch:"loan_type"`
	EventType string    `ch:"event_type"`
	Timestamp time.Time `ch:"timestamp"`
}

// DropoffRow reports per-step completion rates.
type DropoffRow struct {
	Step        string  `ch:"step" json:"step"`
	Views       uint64  `ch:"views" json:"views"`
	Completions uint64  `ch:"completions" json:"completions"`
	DropoffRate float64 `ch:"dropoff_rate" json:"dropoffRate"`
}

// Recorder appends interaction events and serves drop-off reports.
type Recorder interface {
	RecordStepEvent(ctx context.Context, event StepEvent) error
	DropoffRates(ctx context.Context, since time.Time) ([]DropoffRow, error)
}

package leads

import (
	"context"

	"fundline/internal/adapters/kafka"
	"fundline/internal/domain/lead"
	"fundline/internal/metrics"
	"fundline/internal/tools"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

// EventPublisher publishes lead events for downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event interface{}) error
}

// LeadNotifier alerts officers about fresh leads.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, name, phone, loanType string) error
}

// Ensure the service backs the save_lead tool
var _ tools.LeadWriter = (*Service)(nil)

// Service captures leads from forms and from the chat agent.
type Service struct {
	repo      lead.Repository
	publisher EventPublisher
	notifier  LeadNotifier
	log       *logger.Logger
}

// NewService creates the lead service. Publisher and notifier are
// optional.
func NewService(repo lead.Repository, publisher EventPublisher, notifier LeadNotifier) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		notifier:  notifier,
		log:       logger.Get().With("component", "lead_service"),
	}
}

// Capture validates and persists one lead, then broadcasts it.
func (s *Service) Capture(ctx context.Context, l *lead.Lead) error {
	if l.Name == "" || l.Phone == "" {
		return errors.Wrapf(errors.ErrInvalidInput, "lead requires name and phone")
	}
	if l.Source == "" {
		l.Source = "web_form"
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return errors.Wrap(err, "create lead")
	}
	metrics.LeadsCaptured.WithLabelValues(l.Source).Inc()

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, kafka.TopicLeadCreated, l.ID.String(), l); err != nil {
			s.log.Warnw("Failed to publish lead event", "lead_id", l.ID, "error", err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyLead(ctx, l.Name, l.Phone, l.LoanType); err != nil {
			s.log.Warnw("Failed to notify officers about lead", "lead_id", l.ID, "error", err)
		}
	}

	return nil
}

// SaveLead adapts Capture to the save_lead tool contract.
func (s *Service) SaveLead(ctx context.Context, t tools.Lead) (string, error) {
	l := &lead.Lead{
		Name:     t.Name,
		Phone:    t.Phone,
		Email:    t.Email,
		LoanType: t.LoanType,
		Source:   t.Source,
		Notes:    t.Notes,
	}
	if err := s.Capture(ctx, l); err != nil {
		return "", err
	}
	return l.ID.String(), nil
}

// ListRecent returns the newest leads for the dashboard.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]lead.Lead, error) {
	return s.repo.ListRecent(ctx, limit)
}

package intake

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"fundline/internal/adapters/ai"
	"fundline/internal/adapters/kafka"
	"fundline/internal/domain/analytics"
	"fundline/internal/domain/application"
	"fundline/internal/metrics"
	"fundline/internal/orchestrator"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

// EventPublisher publishes lifecycle events for downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event interface{}) error
}

// OfficerNotifier alerts loan officers about completed applications.
type OfficerNotifier interface {
	NotifyApplicationCompleted(ctx context.Context, state application.ConversationState) error
}

// Service drives both chat paths: the deterministic intake dialogue
// and the open-ended tool loop.
type Service struct {
	sessions   application.SessionRepository
	archive    application.ArchiveRepository
	analytics  analytics.Recorder
	publisher  EventPublisher
	notifier   OfficerNotifier
	orch       *orchestrator.Orchestrator
	provider   ai.ChatProvider
	model      string
	sessionTTL time.Duration
	log        *logger.Logger
}

// Options carries the service collaborators. Archive, analytics,
// publisher and notifier are optional; missing ones disable the
// corresponding side effects.
type Options struct {
	Sessions   application.SessionRepository
	Archive    application.ArchiveRepository
	Analytics  analytics.Recorder
	Publisher  EventPublisher
	Notifier   OfficerNotifier
	Orch       *orchestrator.Orchestrator
	Provider   ai.ChatProvider
	Model      string
	SessionTTL time.Duration
}

// NewService creates the intake service.
func NewService(opts Options) *Service {
	if opts.SessionTTL == 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &Service{
		sessions:   opts.Sessions,
		archive:    opts.Archive,
		analytics:  opts.Analytics,
		publisher:  opts.Publisher,
		notifier:   opts.Notifier,
		orch:       opts.Orch,
		provider:   opts.Provider,
		model:      opts.Model,
		sessionTTL: opts.SessionTTL,
		log:        logger.Get().With("component", "intake_service"),
	}
}

// ChatResult is the terminal payload of one assistant-mode message.
type ChatResult struct {
	SessionID     string
	Message       string
	NextStep      application.StepID
	ExtractedData map[string]interface{}
	UIType        application.MessageType
	Options       []string
}

// HandleAssistant advances the deterministic dialogue one turn. The
// robotic engine text is rewritten by one best-effort persona LLM call.
func (s *Service) HandleAssistant(ctx context.Context, sessionID string, message string, emitter *orchestrator.Emitter) (*ChatResult, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	state, err := s.loadOrStart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	emitter.Status("Processing your answer...", 20)

	previousStep := state.Step
	update := application.Transition(*state, message)
	next := application.Apply(*state, update)
	next.SessionID = sessionID

	s.recordStepEvents(ctx, next, previousStep, update)
	metrics.RecordStepTransition(string(previousStep), update.Rejected)

	text := ""
	if msg := application.LastSystemMessage(update.History); msg != nil {
		text = msg.Content
	}
	emitter.Status("Writing a reply...", 60)
	text = s.rewriteInPersona(ctx, text, update)

	if err := s.sessions.Save(ctx, &next, s.sessionTTL); err != nil {
		return nil, errors.Wrap(err, "save session")
	}

	if update.Step == application.StepComplete && !update.Rejected {
		s.finalize(ctx, next)
	}

	return &ChatResult{
		SessionID:     sessionID,
		Message:       text,
		NextStep:      update.Step,
		ExtractedData: recordToMap(next.Data),
		UIType:        update.UIType,
		Options:       update.Options,
	}, nil
}

// HandleAgent runs the full tool loop for open-ended chat modes.
func (s *Service) HandleAgent(ctx context.Context, systemPrompt string, history []ai.Message, message string, emitter *orchestrator.Emitter) (string, error) {
	if systemPrompt == "" {
		systemPrompt = cofounderPersona
	}
	return s.orch.Run(ctx, systemPrompt, history, message, emitter)
}

func (s *Service) loadOrStart(ctx context.Context, sessionID string) (*application.ConversationState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err == nil {
		return state, nil
	}
	if errors.Is(err, errors.ErrSessionNotFound) {
		fresh := application.InitialState()
		fresh.SessionID = sessionID
		return &fresh, nil
	}
	return nil, errors.Wrap(err, "load session")
}

// recordStepEvents appends analytics rows for the turn: completion of
// the answered step, view of the next one. Best effort.
func (s *Service) recordStepEvents(ctx context.Context, state application.ConversationState, previousStep application.StepID, update application.Update) {
	if s.analytics == nil {
		return
	}

	if !update.Rejected {
		s.record(ctx, state, previousStep, analytics.EventStepCompleted)
		s.record(ctx, state, update.Step, analytics.EventStepViewed)
	}
}

func (s *Service) record(ctx context.Context, state application.ConversationState, step application.StepID, eventType string) {
	err := s.analytics.RecordStepEvent(ctx, analytics.StepEvent{
		SessionID: state.SessionID,
		Step:      string(step),
		LoanType:  string(state.LoanType),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.log.Warnw("Failed to record step event", "step", step, "error", err)
	}
}

// finalize persists and broadcasts a completed application. Each side
// effect is best effort; the applicant's flow never fails on them.
func (s *Service) finalize(ctx context.Context, state application.ConversationState) {
	metrics.ApplicationsCompleted.WithLabelValues(string(state.LoanType), string(state.DealScore.Probability)).Inc()

	if s.archive != nil {
		archived := &application.Archived{
			SessionID:   state.SessionID,
			LoanType:    string(state.LoanType),
			Data:        state.Data,
			Score:       state.DealScore.Score,
			Probability: string(state.DealScore.Probability),
		}
		if err := s.archive.Save(ctx, archived); err != nil {
			s.log.Errorw("Failed to archive application", "session_id", state.SessionID, "error", err)
		}
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"sessionId":   state.SessionID,
			"loanType":    string(state.LoanType),
			"score":       state.DealScore.Score,
			"probability": string(state.DealScore.Probability),
			"completedAt": time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.publisher.Publish(ctx, kafka.TopicApplicationCompleted, state.SessionID, event); err != nil {
			s.log.Errorw("Failed to publish completion event", "session_id", state.SessionID, "error", err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyApplicationCompleted(ctx, state); err != nil {
			s.log.Errorw("Failed to notify officers", "session_id", state.SessionID, "error", err)
		}
	}
}

func recordToMap(data application.ApplicantRecord) map[string]interface{} {
	raw, err := json.Marshal(data)
	if err != nil {
		return map[string]interface{}{}
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fundline/internal/domain/application"
	"fundline/pkg/errors"
)

// Compile-time check
var _ application.SessionRepository = (*SessionRepository)(nil)

// SessionRepository implements application.SessionRepository using Redis
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

// Get retrieves a conversation state by session ID
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*application.ConversationState, error) {
	key := r.getKey(sessionID)

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "session_id=%s", sessionID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get session from redis: session_id=%s", sessionID)
	}

	var state application.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session: session_id=%s", sessionID)
	}

	return &state, nil
}

// Save stores a conversation state with TTL
func (r *SessionRepository) Save(ctx context.Context, state *application.ConversationState, ttl time.Duration) error {
	key := r.getKey(state.SessionID)

	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal session: session_id=%s", state.SessionID)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to save session to redis: session_id=%s", state.SessionID)
	}

	return nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := r.getKey(sessionID)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrapf(err, "failed to delete session from redis: session_id=%s", sessionID)
	}

	return nil
}

// Exists checks if a session exists
func (r *SessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	key := r.getKey(sessionID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Wrapf(err, "failed to check session existence: session_id=%s", sessionID)
	}

	return exists > 0, nil
}

// getKey builds the Redis key for a session
func (r *SessionRepository) getKey(sessionID string) string {
	return fmt.Sprintf("intake:session:%s", sessionID)
}

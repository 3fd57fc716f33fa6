package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundline/internal/domain/analytics"
	"fundline/internal/domain/application"
	"fundline/internal/domain/lead"
	"fundline/internal/services/intake"
	"fundline/internal/services/leads"
	"fundline/pkg/errors"
)

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]application.ConversationState
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]application.ConversationState)}
}

func (m *memSessionRepo) Get(_ context.Context, sessionID string) (*application.ConversationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.sessions[sessionID]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return &state, nil
}

func (m *memSessionRepo) Save(_ context.Context, state *application.ConversationState, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[state.SessionID] = *state
	return nil
}

func (m *memSessionRepo) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *memSessionRepo) Exists(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[sessionID]
	return ok, nil
}

type stubArchive struct {
	byID map[uuid.UUID]*application.Archived
}

func (s *stubArchive) Save(context.Context, *application.Archived) error { return nil }

func (s *stubArchive) GetByID(_ context.Context, id uuid.UUID) (*application.Archived, error) {
	archived, ok := s.byID[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return archived, nil
}

func (s *stubArchive) GetBySessionID(_ context.Context, sessionID string) (*application.Archived, error) {
	for _, archived := range s.byID {
		if archived.SessionID == sessionID {
			return archived, nil
		}
	}
	return nil, errors.ErrNotFound
}

type stubRecorder struct {
	rows []analytics.DropoffRow
	err  error
}

func (s *stubRecorder) RecordStepEvent(context.Context, analytics.StepEvent) error { return nil }

func (s *stubRecorder) DropoffRates(context.Context, time.Time) ([]analytics.DropoffRow, error) {
	return s.rows, s.err
}

type memLeadRepo struct {
	mu    sync.Mutex
	leads []lead.Lead
}

func (m *memLeadRepo) Create(_ context.Context, l *lead.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = append(m.leads, *l)
	return nil
}

func (m *memLeadRepo) GetByID(_ context.Context, id uuid.UUID) (*lead.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.leads {
		if m.leads[i].ID == id {
			return &m.leads[i], nil
		}
	}
	return nil, errors.ErrNotFound
}

func (m *memLeadRepo) ListRecent(_ context.Context, limit int) ([]lead.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.leads) {
		limit = len(m.leads)
	}
	out := make([]lead.Lead, limit)
	copy(out, m.leads[len(m.leads)-limit:])
	return out, nil
}

func decodeLines(t *testing.T, body string) []map[string]interface{} {
	t.Helper()
	var events []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		var event map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &event), "line: %s", line)
		events = append(events, event)
	}
	return events
}

func newChatHandler() *ChatHandler {
	svc := intake.NewService(intake.Options{Sessions: newMemSessionRepo()})
	return NewChatHandler(svc)
}

func TestChatHandler_AssistantStreamsNDJSON(t *testing.T) {
	handler := newChatHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"message": "John Smith",
		"mode":    "assistant",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, rec.Flushed)

	events := decodeLines(t, rec.Body.String())
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, "result", last["type"])
	assert.Equal(t, "ASK_PHONE", last["nextStep"])
	assert.NotEmpty(t, last["sessionId"])
	assert.EqualValues(t, 100, last["progress"])

	data, ok := last["extractedData"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "John Smith", data["fullName"])

	sawStatus := false
	for _, event := range events[:len(events)-1] {
		if event["type"] == "status" {
			sawStatus = true
		}
	}
	assert.True(t, sawStatus, "expected at least one status event before the result")
}

func TestChatHandler_SessionPersistsAcrossTurns(t *testing.T) {
	handler := newChatHandler()

	post := func(payload map[string]interface{}) []map[string]interface{} {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		return decodeLines(t, rec.Body.String())
	}

	first := post(map[string]interface{}{"message": "John Smith", "mode": "assistant"})
	sessionID := first[len(first)-1]["sessionId"].(string)
	require.NotEmpty(t, sessionID)

	second := post(map[string]interface{}{
		"sessionId": sessionID,
		"message":   "skip",
		"mode":      "assistant",
	})
	last := second[len(second)-1]
	assert.Equal(t, sessionID, last["sessionId"])
	assert.Equal(t, "ASK_LOAN_TYPE", last["nextStep"])
}

func TestChatHandler_BadRequests(t *testing.T) {
	handler := newChatHandler()

	t.Run("empty message", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{"mode": "assistant"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestLeadsHandler_CreateAndList(t *testing.T) {
	repo := &memLeadRepo{}
	handler := NewLeadsHandler(leads.NewService(repo, nil, nil))

	body, _ := json.Marshal(map[string]string{
		"name":     "Jane Doe",
		"phone":    "555-0100",
		"email":    "jane@example.com",
		"loanType": "mortgage",
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "web_form", created["source"])

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads?limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Leads []lead.Lead `json:"leads"`
		Count int         `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Count)
	assert.Equal(t, "Jane Doe", listed.Leads[0].Name)
}

func TestLeadsHandler_RejectsIncompleteLead(t *testing.T) {
	handler := NewLeadsHandler(leads.NewService(&memLeadRepo{}, nil, nil))

	body, _ := json.Marshal(map[string]string{"name": "No Phone"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "lead requires name and phone")
}

func TestApplicationsHandler_URLAExport(t *testing.T) {
	id := uuid.New()
	archive := &stubArchive{byID: map[uuid.UUID]*application.Archived{
		id: {
			ID:        id,
			SessionID: "session-1",
			LoanType:  "mortgage",
			Data: application.ApplicantRecord{
				FullName: "John Smith",
				Email:    "john@example.com",
				SSN:      "123-45-6789",
			},
		},
	}}
	handler := NewApplicationsHandler(archive)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/applications/"+id.String()+"/urla", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	section2 := report["section2"].(map[string]interface{})
	borrower := section2["borrower"].(map[string]interface{})
	assert.Equal(t, "John Smith", borrower["name"])
	assert.Equal(t, "***-**-6789", borrower["ssn"])
}

func TestApplicationsHandler_NotFound(t *testing.T) {
	handler := NewApplicationsHandler(&stubArchive{byID: map[uuid.UUID]*application.Archived{}})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/applications/"+uuid.NewString()+"/urla", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/applications/garbage", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyticsHandler_Dropoff(t *testing.T) {
	recorder := &stubRecorder{rows: []analytics.DropoffRow{
		{Step: "ASK_NAME", Views: 100, Completions: 80, DropoffRate: 0.2},
		{Step: "ASK_PHONE", Views: 80, Completions: 70, DropoffRate: 0.125},
	}}
	handler := NewAnalyticsHandler(recorder)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analytics/dropoff?days=30", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Since string                 `json:"since"`
		Steps []analytics.DropoffRow `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Steps, 2)
	assert.Equal(t, "ASK_NAME", payload.Steps[0].Step)
	assert.InDelta(t, 0.2, payload.Steps[0].DropoffRate, 1e-9)
}

func TestAnalyticsHandler_RejectsBadDays(t *testing.T) {
	handler := NewAnalyticsHandler(&stubRecorder{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analytics/dropoff?days=soon", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"fundline/internal/adapters/ai"
	"fundline/internal/api/stream"
	"fundline/internal/metrics"
	"fundline/internal/orchestrator"
	"fundline/internal/services/intake"
	"fundline/pkg/logger"
)

// Chat modes. Assistant runs the deterministic intake dialogue; the
// rest run the full tool loop with a mode-specific persona.
const (
	ModeAssistant  = "assistant"
	ModeCofounder  = "co-founder"
	ModeDeveloper  = "developer"
	ModeDevConsole = "dev_console"
)

// chatRequest is one turn of conversation from the client.
type chatRequest struct {
	SessionID string        `json:"sessionId"`
	Message   string        `json:"message"`
	Mode      string        `json:"mode"`
	History   []chatMessage `json:"history"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatHandler streams NDJSON progress events for one chat turn.
type ChatHandler struct {
	intake *intake.Service
	log    *logger.Logger
}

// NewChatHandler creates the chat endpoint handler.
func NewChatHandler(svc *intake.Service) *ChatHandler {
	return &ChatHandler{
		intake: svc,
		log:    logger.Get().With("component", "chat_handler"),
	}
}

// ServeHTTP handles POST /api/chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	if req.Mode == "" {
		req.Mode = ModeAssistant
	}

	writer, err := stream.New(w)
	if err != nil {
		h.log.Errorw("Failed to open event stream", "error", err)
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	started := time.Now()
	emitter := orchestrator.NewEmitter(writer)

	switch req.Mode {
	case ModeAssistant:
		err = h.handleAssistant(r, req, emitter)
	default:
		err = h.handleAgent(r, req, emitter)
	}
	metrics.RecordChatRequest(req.Mode, time.Since(started), err)

	if err != nil {
		h.log.Errorw("Chat turn failed", "mode", req.Mode, "session_id", req.SessionID, "error", err)
		// The stream is already open, so failures surface as a terminal
		// error event instead of an HTTP status. The client only needs
		// to know the turn is retryable.
		emitter.Error("I hit a connection issue. Please try again.")
	}
}

func (h *ChatHandler) handleAssistant(r *http.Request, req chatRequest, emitter *orchestrator.Emitter) error {
	result, err := h.intake.HandleAssistant(r.Context(), req.SessionID, req.Message, emitter)
	if err != nil {
		return err
	}

	emitter.Result(orchestrator.Event{
		Message:       result.Message,
		Progress:      100,
		SessionID:     result.SessionID,
		NextStep:      string(result.NextStep),
		ExtractedData: result.ExtractedData,
		UIType:        string(result.UIType),
		Options:       result.Options,
	})
	return nil
}

func (h *ChatHandler) handleAgent(r *http.Request, req chatRequest, emitter *orchestrator.Emitter) error {
	history := make([]ai.Message, 0, len(req.History))
	for _, msg := range req.History {
		role := ai.RoleUser
		if msg.Role == "assistant" || msg.Role == "model" {
			role = ai.RoleAssistant
		}
		history = append(history, ai.Message{Role: role, Content: msg.Content})
	}

	text, err := h.intake.HandleAgent(r.Context(), personaFor(req.Mode), history, req.Message, emitter)
	if err != nil {
		return err
	}

	emitter.Result(orchestrator.Event{
		Message:   text,
		Progress:  100,
		SessionID: req.SessionID,
	})
	return nil
}

// personaFor maps a chat mode to its system prompt. The empty default
// lets the service fall back to the co-founder persona.
func personaFor(mode string) string {
	switch mode {
	case ModeDeveloper, ModeDevConsole:
		return "You are a senior engineer assisting the lending team. Answer precisely, prefer tool calls over speculation, and keep responses short."
	default:
		return ""
	}
}

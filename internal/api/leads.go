package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fundline/internal/domain/lead"
	"fundline/internal/services/leads"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

// LeadsHandler serves lead capture and listing.
type LeadsHandler struct {
	service *leads.Service
	log     *logger.Logger
}

// NewLeadsHandler creates the leads endpoint handler.
func NewLeadsHandler(svc *leads.Service) *LeadsHandler {
	return &LeadsHandler{
		service: svc,
		log:     logger.Get().With("component", "leads_handler"),
	}
}

type leadRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LoanType string `json:"loanType"`
	Source   string `json:"source"`
	Notes    string `json:"notes"`
}

// ServeHTTP handles POST /api/leads and GET /api/leads.
func (h *LeadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LeadsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrInvalidInput, "invalid request body"))
		return
	}

	l := &lead.Lead{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		LoanType: req.LoanType,
		Source:   req.Source,
		Notes:    req.Notes,
	}
	if err := h.service.Capture(r.Context(), l); err != nil {
		h.log.Warnw("Failed to capture lead", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":     l.ID.String(),
		"source": l.Source,
	})
}

func (h *LeadsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, errors.Wrap(errors.ErrInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	items, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		h.log.Errorw("Failed to list leads", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leads": items,
		"count": len(items),
	})
}

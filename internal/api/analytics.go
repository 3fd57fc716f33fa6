package api

import (
	"net/http"
	"strconv"
	"time"

	"fundline/internal/domain/analytics"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

// AnalyticsHandler serves intake funnel aggregates.
type AnalyticsHandler struct {
	recorder analytics.Recorder
	log      *logger.Logger
}

// NewAnalyticsHandler creates the analytics endpoint handler.
func NewAnalyticsHandler(recorder analytics.Recorder) *AnalyticsHandler {
	return &AnalyticsHandler{
		recorder: recorder,
		log:      logger.Get().With("component", "analytics_handler"),
	}
}

// ServeHTTP handles GET /api/analytics/dropoff?days=N (default 7).
func (h *AnalyticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, errors.Wrap(errors.ErrInvalidInput, "days must be a positive integer"))
			return
		}
		days = parsed
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := h.recorder.DropoffRates(r.Context(), since)
	if err != nil {
		h.log.Errorw("Failed to compute dropoff rates", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"since": since.Format(time.RFC3339),
		"steps": rows,
	})
}

package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"fundline/internal/domain/application"
	"fundline/internal/domain/urla"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

// ApplicationsHandler serves stored application exports.
type ApplicationsHandler struct {
	archive application.ArchiveRepository
	log     *logger.Logger
}

// NewApplicationsHandler creates the applications endpoint handler.
func NewApplicationsHandler(archive application.ArchiveRepository) *ApplicationsHandler {
	return &ApplicationsHandler{
		archive: archive,
		log:     logger.Get().With("component", "applications_handler"),
	}
}

// ServeHTTP handles GET /api/applications/{id}/urla. The id is either
// the archive UUID or the originating session ID.
func (h *ApplicationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/applications/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "urla" {
		http.NotFound(w, r)
		return
	}
	id := parts[0]

	archived, err := h.lookup(r, id)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			h.log.Errorw("Failed to load application", "id", id, "error", err)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, urla.Format1003(archived.Data))
}

func (h *ApplicationsHandler) lookup(r *http.Request, id string) (*application.Archived, error) {
	// Session IDs are UUIDs too, so a miss on the archive ID falls
	// through to the session lookup.
	if parsed, err := uuid.Parse(id); err == nil {
		archived, err := h.archive.GetByID(r.Context(), parsed)
		if err == nil || !errors.Is(err, errors.ErrNotFound) {
			return archived, err
		}
	}
	return h.archive.GetBySessionID(r.Context(), id)
}

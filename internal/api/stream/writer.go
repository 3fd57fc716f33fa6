// Package stream writes newline-delimited JSON events over a chunked
// HTTP response, flushing after every line so clients see progress live.
package stream

import (
	"encoding/json"
	"net/http"

	"fundline/internal/orchestrator"
	"fundline/pkg/errors"
)

// Writer emits orchestrator events as NDJSON lines. It is a Sink for
// exactly one request and must not be used concurrently.
type Writer struct {
	enc     *json.Encoder
	flusher http.Flusher
}

var _ orchestrator.Sink = (*Writer)(nil)

// New prepares the response for NDJSON streaming. Fails if the
// underlying writer cannot flush, since buffered delivery would defeat
// the live status line.
func New(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.Wrap(errors.ErrInternal, "response writer does not support flushing")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Writer{
		enc:     json.NewEncoder(w),
		flusher: flusher,
	}, nil
}

// Emit writes one event line and flushes it to the client.
func (s *Writer) Emit(event orchestrator.Event) {
	// Encode appends the trailing newline that delimits NDJSON lines.
	if err := s.enc.Encode(event); err != nil {
		return
	}
	s.flusher.Flush()
}

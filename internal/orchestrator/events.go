package orchestrator

// EventType tags one streamed progress line.
type EventType string

const (
	EventDebug  EventType = "debug"
	EventStatus EventType = "status"
	EventResult EventType = "result"
	EventError  EventType = "error"
)

// Event is one line of the streamed response. Exactly one terminal
// result or error event closes a request.
type Event struct {
	Type          EventType              `json:"type"`
	Message       string                 `json:"message"`
	Progress      int                    `json:"progress,omitempty"`
	SessionID     string                 `json:"sessionId,omitempty"`
	NextStep      string                 `json:"nextStep,omitempty"`
	ExtractedData map[string]interface{} `json:"extractedData,omitempty"`
	UIType        string                 `json:"uiType,omitempty"`
	Options       []string               `json:"options,omitempty"`
}

// Sink receives events in emission order. Emit must not be called
// concurrently; the loop is strictly serial.
type Sink interface {
	Emit(event Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(event Event)

// Emit calls the wrapped function.
func (f SinkFunc) Emit(event Event) { f(event) }

// Emitter wraps a sink and clamps progress so it never decreases
// within one request.
type Emitter struct {
	sink     Sink
	progress int
}

// NewEmitter creates an emitter for one request.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink}
}

// Debug emits a non-contractual diagnostic line.
func (e *Emitter) Debug(message string) {
	e.sink.Emit(Event{Type: EventDebug, Message: message})
}

// Status emits a progress tick. Progress below the high-water mark is
// raised to it.
func (e *Emitter) Status(message string, progress int) {
	if progress < e.progress {
		progress = e.progress
	}
	if progress > 100 {
		progress = 100
	}
	e.progress = progress
	e.sink.Emit(Event{Type: EventStatus, Message: message, Progress: progress})
}

// Result emits the single terminal success event.
func (e *Emitter) Result(event Event) {
	event.Type = EventResult
	e.sink.Emit(event)
}

// Error emits the single terminal failure event.
func (e *Emitter) Error(message string) {
	e.sink.Emit(Event{Type: EventError, Message: message})
}

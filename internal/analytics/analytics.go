// Package analytics records product events. Recording is always
// fire-and-forget: it never affects control flow and its errors are
// never surfaced.
package analytics

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tOgg1/trackinbox/internal/logging"
)

// Recorder accepts product events.
type Recorder interface {
	Event(name string, attrs map[string]string)
}

// LogRecorder writes events to the structured log. The default
// recorder when no analytics backend is wired.
type LogRecorder struct {
	logger    zerolog.Logger
	sessionID string
}

// NewLogRecorder creates a LogRecorder with a fresh session id.
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{
		logger:    logging.Component("analytics"),
		sessionID: uuid.New().String(),
	}
}

// Event records one event.
func (r *LogRecorder) Event(name string, attrs map[string]string) {
	evt := r.logger.Debug().
		Str("event", name).
		Str("session_id", r.sessionID).
		Str("event_id", uuid.New().String())
	for k, v := range attrs {
		evt = evt.Str(k, v)
	}
	evt.Msg("analytics event")
}

// Noop discards all events.
type Noop struct{}

// Event discards the event.
func (Noop) Event(name string, attrs map[string]string) {}

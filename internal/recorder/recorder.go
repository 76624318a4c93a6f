package recorder

import "time"

// InteractionEvent is one handled command or autocomplete request.
type InteractionEvent struct {
	ID       string
	Time     time.Time
	Command  string
	Option   string // option value the user supplied, if any
	User     string
	ChatID   string
	Outcome  string // "ok", "error" or "unknown"
	Duration time.Duration
}

// Recorder persists interaction history for analysis.
type Recorder interface {
	RecordInteraction(evt *InteractionEvent) error
	Close() error
}

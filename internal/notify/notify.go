// Package notify delivers operator-facing notices. Delivery is fire-and-forget:
// no sink reports failure back to the caller.
package notify

import "time"

type Severity string

const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Success Severity = "success"
	Error   Severity = "error"
)

type Notification struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

type Sink interface {
	Notify(message string, severity Severity)
}

type SinkFunc func(message string, severity Severity)

func (f SinkFunc) Notify(message string, severity Severity) { f(message, severity) }

type fanout []Sink

// Fanout delivers every notice to each non-nil sink in order.
func Fanout(sinks ...Sink) Sink {
	out := make(fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (f fanout) Notify(message string, severity Severity) {
	for _, s := range f {
		s.Notify(message, severity)
	}
}

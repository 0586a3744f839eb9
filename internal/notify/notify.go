// Package notify carries operator diagnostics emitted by the bookkeeping
// core: rejected entries, low stock, partial cascades, integrity breaks.
// Notifications are observational and never gate core logic.
package notify

import (
	"context"
	"log/slog"
)

// Severity classifies a diagnostic event.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Event is a single operator-facing diagnostic.
type Event struct {
	Severity Severity
	Code     string
	Message  string
	Meta     map[string]any
}

// Notifier receives diagnostic events.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Logger routes events to a slog.Logger.
type Logger struct {
	logger *slog.Logger
}

// NewLogger builds a Logger notifier.
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Notify writes the event at a level matching its severity.
func (l *Logger) Notify(ctx context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	attrs := []any{slog.String("code", event.Code)}
	for k, v := range event.Meta {
		attrs = append(attrs, slog.Any(k, v))
	}
	switch event.Severity {
	case SeverityError:
		l.logger.ErrorContext(ctx, event.Message, attrs...)
	case SeverityWarning:
		l.logger.WarnContext(ctx, event.Message, attrs...)
	default:
		l.logger.InfoContext(ctx, event.Message, attrs...)
	}
}

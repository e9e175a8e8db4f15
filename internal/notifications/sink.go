package notifications

import (
	"context"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is a human-readable message for the customer.
type Notice struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Sink receives customer-facing notices. Implementations must not block.
type Sink interface {
	Notify(ctx context.Context, notice Notice)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, notice Notice)

func (f SinkFunc) Notify(ctx context.Context, notice Notice) {
	f(ctx, notice)
}

// Fanout forwards every notice to each non-nil sink in order.
type Fanout []Sink

func (f Fanout) Notify(ctx context.Context, notice Notice) {
	for _, sink := range f {
		if sink != nil {
			sink.Notify(ctx, notice)
		}
	}
}

// LogSink writes notices to the structured logger.
type LogSink struct {
	logg *logger.Logger
}

func NewLogSink(logg *logger.Logger) *LogSink {
	if logg == nil {
		logg = logger.Nop()
	}
	return &LogSink{logg: logg}
}

func (s *LogSink) Notify(ctx context.Context, notice Notice) {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"notice_title":    notice.Title,
		"notice_severity": string(notice.Severity),
	})
	switch notice.Severity {
	case SeverityError, SeverityWarning:
		s.logg.Warn(ctx, notice.Message)
	default:
		s.logg.Info(ctx, notice.Message)
	}
}

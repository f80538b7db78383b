package dataset

import (
	"context"
	"log/slog"
	"time"
)

// EventType represents a lifecycle step of a dataset
type EventType string

const (
	EventSynthesized     EventType = "synthesized"
	EventLoaded          EventType = "loaded"
	EventConstructFailed EventType = "construct_failed"
	EventSplit           EventType = "split"
	EventSaved           EventType = "saved"
	EventExported        EventType = "exported"
)

// Event represents a lifecycle event of one dataset
type Event struct {
	Type      EventType   // Type of event
	RunID     string      // Dataset run ID for tracing
	Dataset   string      // Dataset name
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Step-specific data (row counts, paths, error)
}

// Observer interface for event subscribers
type Observer interface {
	OnEvent(event Event)
}

// LoggingObserver logs every event using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer; nil uses slog.Default()
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface.
// Construction failures are logged at error level, everything else at info.
func (lo *LoggingObserver) OnEvent(event Event) {
	level := slog.LevelInfo
	if event.Type == EventConstructFailed {
		level = slog.LevelError
	}
	lo.logger.Log(context.Background(), level, "dataset_lifecycle",
		"event", event.Type,
		"run_id", event.RunID,
		"dataset", event.Dataset,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}

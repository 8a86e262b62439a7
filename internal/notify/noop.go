package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded reports. It is used
// when no webhook is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards reports with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// NotifyRun logs and discards a run report.
func (n *NoOpNotifier) NotifyRun(_ context.Context, report *RunReport) error {
	n.log.Debug("run notification discarded (no backend configured)",
		"run_id", report.RunID,
		"succeeded", report.Summary.Succeeded,
		"failed", report.Summary.Failed,
	)
	return nil
}

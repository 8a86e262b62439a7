// Package notify defines the notification interface and implementations
// for batch run reports.
package notify

import (
	"context"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// RunReport is the data sent when a batch run finishes.
type RunReport struct {
	RunID   string
	AppID   string
	Summary domain.BatchSummary
	// Err is set when the run could not start, in which case Summary is empty.
	Err string
}

// Notifier sends batch run reports.
type Notifier interface {
	NotifyRun(ctx context.Context, report *RunReport) error
}

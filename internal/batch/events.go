package batch

import domain "github.com/donaldgifford/asc-iap/pkg/types"

// Event is emitted on a run's event channel. It is one of ProgressEvent,
// OutcomeEvent or SummaryEvent.
type Event interface {
	isEvent()
}

// ProgressEvent is sent before an item is processed. Index is 1-based.
type ProgressEvent struct {
	Index  int
	Total  int
	Action string
}

// OutcomeEvent is sent after an item is processed.
type OutcomeEvent struct {
	Index   int
	Outcome domain.BatchOutcome
}

// SummaryEvent is the last event of a run.
type SummaryEvent struct {
	Summary domain.BatchSummary
}

func (ProgressEvent) isEvent() {}
func (OutcomeEvent) isEvent()  {}
func (SummaryEvent) isEvent()  {}

package batch

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/asc-iap/internal/notify"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// ErrRunNotFound is returned for an unknown run ID.
var ErrRunNotFound = errors.New("batch run not found")

const notifyTimeout = 10 * time.Second

// Snapshot is a point-in-time view of a managed run.
type Snapshot struct {
	ID         string                `json:"id"`
	AppID      string                `json:"app_id"`
	State      State                 `json:"state"`
	Total      int                   `json:"total"`
	Processed  int                   `json:"processed"`
	Action     string                `json:"action,omitempty"`
	Outcomes   []domain.BatchOutcome `json:"outcomes"`
	Succeeded  int                   `json:"succeeded"`
	Failed     int                   `json:"failed"`
	Cancelled  bool                  `json:"cancelled"`
	Error      string                `json:"error,omitempty"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt *time.Time            `json:"finished_at,omitempty"`
}

type managedRun struct {
	run *Run

	mu   sync.Mutex
	snap Snapshot
}

func (m *managedRun) snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.snap
	s.Outcomes = slices.Clone(m.snap.Outcomes)
	return s
}

func (m *managedRun) apply(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch e := ev.(type) {
	case ProgressEvent:
		m.snap.Action = e.Action
	case OutcomeEvent:
		m.snap.Processed = e.Index
		m.snap.Outcomes = append(m.snap.Outcomes, e.Outcome)
		if e.Outcome.Succeeded {
			m.snap.Succeeded++
		} else {
			m.snap.Failed++
		}
	case SummaryEvent:
		m.snap.Action = ""
		m.snap.Cancelled = e.Summary.Cancelled
		m.snap.State = StateCompleted
		if e.Summary.Cancelled {
			m.snap.State = StateCancelled
		}
		finished := e.Summary.FinishedAt
		m.snap.FinishedAt = &finished
	}
}

// Manager runs several batches concurrently, one goroutine per run, and keeps
// their snapshots in memory for the life of the process.
type Manager struct {
	orch     *Orchestrator
	log      *slog.Logger
	notifier notify.Notifier
	ctx      context.Context
	newID    func() string
	nowFunc  func() time.Time

	mu   sync.RWMutex
	runs map[string]*managedRun
	wg   sync.WaitGroup
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = l
	}
}

// WithNotifier sends a report for every finished run.
func WithNotifier(n notify.Notifier) ManagerOption {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithIDFunc overrides run ID generation for testing.
func WithIDFunc(f func() string) ManagerOption {
	return func(m *Manager) {
		m.newID = f
	}
}

// NewManager creates a Manager. Runs inherit ctx, so cancelling it stops
// every run between items.
func NewManager(ctx context.Context, orch *Orchestrator, opts ...ManagerOption) *Manager {
	m := &Manager{
		orch:    orch,
		log:     slog.Default(),
		ctx:     ctx,
		newID:   uuid.NewString,
		nowFunc: time.Now,
		runs:    make(map[string]*managedRun),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start launches req in the background and returns its run ID.
func (m *Manager) Start(req Request) (string, error) {
	if req.AppID == "" {
		return "", ErrMissingApp
	}

	id := m.newID()
	mr := &managedRun{
		run: m.orch.NewRun(req),
		snap: Snapshot{
			ID:        id,
			AppID:     req.AppID,
			State:     StateRunning,
			Total:     len(req.Products),
			Outcomes:  []domain.BatchOutcome{},
			StartedAt: m.nowFunc(),
		},
	}

	m.mu.Lock()
	m.runs[id] = mr
	m.mu.Unlock()

	events := make(chan Event, 16)
	m.wg.Add(2)
	go func() {
		defer m.wg.Done()
		for ev := range events {
			mr.apply(ev)
		}
	}()
	go func() {
		defer m.wg.Done()
		summary, err := mr.run.Execute(m.ctx, events)
		report := &notify.RunReport{RunID: id, AppID: req.AppID, Summary: summary}
		if err != nil {
			m.log.Error("batch run failed", "run_id", id, "error", err)
			mr.mu.Lock()
			mr.snap.Error = err.Error()
			mr.snap.State = StateCompleted
			mr.mu.Unlock()
			report.Err = err.Error()
		}
		m.notify(report)
	}()

	m.log.Info("batch run started", "run_id", id, "app_id", req.AppID, "total", len(req.Products))
	return id, nil
}

// Get returns the snapshot of run id.
func (m *Manager) Get(id string) (Snapshot, error) {
	m.mu.RLock()
	mr, ok := m.runs[id]
	m.mu.RUnlock()
	if !ok {
		return Snapshot{}, ErrRunNotFound
	}
	return mr.snapshot(), nil
}

// List returns every run, oldest first.
func (m *Manager) List() []Snapshot {
	m.mu.RLock()
	out := make([]Snapshot, 0, len(m.runs))
	for _, mr := range m.runs {
		out = append(out, mr.snapshot())
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b Snapshot) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Cancel asks run id to stop before its next item.
func (m *Manager) Cancel(id string) error {
	m.mu.RLock()
	mr, ok := m.runs[id]
	m.mu.RUnlock()
	if !ok {
		return ErrRunNotFound
	}
	mr.run.Cancel()
	m.log.Info("batch run cancel requested", "run_id", id)
	return nil
}

// Wait blocks until every started run has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// notify sends report without blocking on the manager context, so runs
// stopped at shutdown are still reported.
func (m *Manager) notify(report *notify.RunReport) {
	if m.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(m.ctx), notifyTimeout)
	defer cancel()
	if err := m.notifier.NotifyRun(ctx, report); err != nil {
		m.log.Warn("run notification failed", "run_id", report.RunID, "error", err)
	}
}

// Package batch provisions lists of in-app purchase products against App
// Store Connect. Each item runs a fixed pipeline: a required create step and
// best-effort pricing, localization, availability and screenshot steps.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/donaldgifford/asc-iap/internal/asc"
	"github.com/donaldgifford/asc-iap/internal/metrics"
	"github.com/donaldgifford/asc-iap/pkg/pricing"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// Step names used in logs and the substep failure metric.
const (
	StepPrice        = "price"
	StepLocalization = "localization"
	StepAvailability = "availability"
	StepScreenshot   = "screenshot"
)

const successMessage = "created"

var (
	// ErrAlreadyStarted is returned when a Run is executed twice.
	ErrAlreadyStarted = errors.New("batch run already started")
	// ErrMissingApp is returned when a request names no app.
	ErrMissingApp = errors.New("app id is required")
)

// Screenshot is a review screenshot shared by every item in a request.
type Screenshot struct {
	Name string
	Data []byte
}

// Request describes one batch run.
type Request struct {
	AppID        string
	Products     []domain.ProductSpec
	ExcludeChina bool
	Screenshot   *Screenshot

	// Locales and BaseTerritory override the orchestrator defaults when set.
	Locales       []string
	BaseTerritory string
}

// StepResult is the result of one best-effort step. It never affects the
// item outcome.
type StepResult struct {
	Step    string
	Skipped bool
	Err     error
}

// State is the lifecycle state of a Run.
type State string

// Run states.
const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Orchestrator runs batch requests through a Gateway.
type Orchestrator struct {
	gateway       asc.Gateway
	log           *slog.Logger
	locales       []string
	baseTerritory string
	nowFunc       func() time.Time
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// WithLocales sets the default localization locales.
func WithLocales(locales []string) Option {
	return func(o *Orchestrator) {
		o.locales = locales
	}
}

// WithBaseTerritory sets the default territory for price lookup and the
// price schedule.
func WithBaseTerritory(t string) Option {
	return func(o *Orchestrator) {
		o.baseTerritory = t
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(o *Orchestrator) {
		o.nowFunc = f
	}
}

// NewOrchestrator creates an Orchestrator backed by gw.
func NewOrchestrator(gw asc.Gateway, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gateway:       gw,
		log:           slog.Default(),
		locales:       []string{"en-US"},
		baseTerritory: "USA",
		nowFunc:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes req synchronously. It is shorthand for NewRun(req).Execute.
func (o *Orchestrator) Run(
	ctx context.Context,
	req Request,
	events chan<- Event,
) (domain.BatchSummary, error) {
	return o.NewRun(req).Execute(ctx, events)
}

// NewRun prepares req for execution. The returned Run may be cancelled from
// any goroutine.
func (o *Orchestrator) NewRun(req Request) *Run {
	return &Run{orch: o, req: req}
}

// Run is a single execution of a Request.
type Run struct {
	orch *Orchestrator
	req  Request

	started   atomic.Bool
	cancelled atomic.Bool

	mu    sync.Mutex
	state State
}

// Cancel asks the run to stop before its next item. The item in flight
// completes.
func (r *Run) Cancel() {
	r.cancelled.Store(true)
}

// State returns the current lifecycle state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == "" {
		return StateIdle
	}
	return r.state
}

func (r *Run) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// Execute processes every item in order and returns the summary. Events are
// sent on events when it is non-nil, and events is closed on return. A
// cancelled context stops the run between items, like Cancel.
func (r *Run) Execute(ctx context.Context, events chan<- Event) (domain.BatchSummary, error) {
	if !r.started.CompareAndSwap(false, true) {
		return domain.BatchSummary{}, ErrAlreadyStarted
	}
	if events != nil {
		defer close(events)
	}
	if r.req.AppID == "" {
		return domain.BatchSummary{}, ErrMissingApp
	}

	o := r.orch
	r.setState(StateRunning)
	metrics.BatchRunsActive.Inc()
	defer metrics.BatchRunsActive.Dec()

	summary := domain.BatchSummary{
		Outcomes:  make([]domain.BatchOutcome, 0, len(r.req.Products)),
		StartedAt: o.nowFunc(),
	}
	total := len(r.req.Products)
	log := o.log.With("app_id", r.req.AppID, "total", total)
	log.Info("batch started")

	for i, spec := range r.req.Products {
		if r.cancelled.Load() || ctx.Err() != nil {
			summary.Cancelled = true
			log.Info("batch cancelled", "remaining", total-i)
			break
		}

		emit(events, ProgressEvent{
			Index:  i + 1,
			Total:  total,
			Action: "Creating: " + spec.DisplayName,
		})

		outcome := r.processItem(ctx, log.With("index", i+1, "product_id", spec.ProductID), spec)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Succeeded {
			summary.Succeeded++
			metrics.BatchItemsTotal.WithLabelValues("succeeded").Inc()
		} else {
			summary.Failed++
			metrics.BatchItemsTotal.WithLabelValues("failed").Inc()
		}

		emit(events, OutcomeEvent{Index: i + 1, Outcome: outcome})
	}

	summary.FinishedAt = o.nowFunc()
	metrics.BatchRunDuration.Observe(summary.FinishedAt.Sub(summary.StartedAt).Seconds())

	if summary.Cancelled {
		r.setState(StateCancelled)
	} else {
		r.setState(StateCompleted)
	}
	log.Info("batch finished",
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"cancelled", summary.Cancelled,
	)

	emit(events, SummaryEvent{Summary: summary})
	return summary, nil
}

func emit(events chan<- Event, ev Event) {
	if events != nil {
		events <- ev
	}
}

func (r *Run) processItem(
	ctx context.Context,
	log *slog.Logger,
	spec domain.ProductSpec,
) domain.BatchOutcome {
	product, err := r.orch.gateway.CreateProduct(ctx, r.req.AppID, spec)
	if err != nil {
		log.Warn("create product failed", "error", err)
		return domain.BatchOutcome{
			ProductID: spec.ProductID,
			Succeeded: false,
			Message:   failureMessage(err),
		}
	}

	steps := []StepResult{
		r.applyPrice(ctx, product.ID, spec),
		r.applyLocalizations(ctx, product.ID, spec),
		r.applyAvailability(ctx, product.ID),
		r.applyScreenshot(ctx, product.ID),
	}
	for _, step := range steps {
		discardStep(log, step)
	}

	return domain.BatchOutcome{
		ProductID: spec.ProductID,
		Succeeded: true,
		Message:   successMessage,
	}
}

// discardStep records a best-effort result without surfacing it.
func discardStep(log *slog.Logger, step StepResult) {
	switch {
	case step.Skipped:
		log.Debug("step skipped", "step", step.Step)
	case step.Err != nil:
		metrics.BatchSubstepFailuresTotal.WithLabelValues(step.Step).Inc()
		log.Warn("step failed", "step", step.Step, "error", step.Err)
	default:
		log.Debug("step done", "step", step.Step)
	}
}

func (r *Run) baseTerritory() string {
	if r.req.BaseTerritory != "" {
		return r.req.BaseTerritory
	}
	return r.orch.baseTerritory
}

func (r *Run) locales() []string {
	if len(r.req.Locales) > 0 {
		return r.req.Locales
	}
	return r.orch.locales
}

func (r *Run) applyPrice(ctx context.Context, productID string, spec domain.ProductSpec) StepResult {
	res := StepResult{Step: StepPrice}
	territory := r.baseTerritory()

	points, err := r.orch.gateway.ListPricePoints(ctx, productID, territory)
	if err != nil {
		res.Err = fmt.Errorf("listing price points: %w", err)
		return res
	}

	point, ok := pricing.Match(spec.Price, points)
	if !ok {
		res.Err = fmt.Errorf("no price point matches %q", spec.Price)
		return res
	}

	if err := r.orch.gateway.CreatePriceSchedule(ctx, productID, point.ID, territory); err != nil {
		res.Err = fmt.Errorf("creating price schedule: %w", err)
	}
	return res
}

func (r *Run) applyLocalizations(ctx context.Context, productID string, spec domain.ProductSpec) StepResult {
	res := StepResult{Step: StepLocalization}

	var errs []error
	for _, locale := range r.locales() {
		_, err := r.orch.gateway.CreateLocalization(ctx, productID, domain.Localization{
			Locale:      locale,
			Name:        spec.DisplayName,
			Description: spec.Description,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("creating %s localization: %w", locale, err))
		}
	}
	res.Err = errors.Join(errs...)
	return res
}

func (r *Run) applyAvailability(ctx context.Context, productID string) StepResult {
	res := StepResult{Step: StepAvailability}

	territories, err := r.orch.gateway.ListTerritories(ctx)
	if err != nil {
		res.Err = fmt.Errorf("listing territories: %w", err)
		return res
	}
	if r.req.ExcludeChina {
		territories = domain.FilterExcludedTerritories(territories)
	}

	ids := make([]string, 0, len(territories))
	for _, t := range territories {
		ids = append(ids, t.ID)
	}
	if err := r.orch.gateway.CreateAvailability(ctx, productID, ids); err != nil {
		res.Err = fmt.Errorf("creating availability: %w", err)
	}
	return res
}

func (r *Run) applyScreenshot(ctx context.Context, productID string) StepResult {
	res := StepResult{Step: StepScreenshot}
	shot := r.req.Screenshot
	if shot == nil || len(shot.Data) == 0 {
		res.Skipped = true
		return res
	}
	if err := r.orch.gateway.UploadScreenshot(ctx, productID, shot.Name, shot.Data); err != nil {
		res.Err = fmt.Errorf("uploading screenshot: %w", err)
	}
	return res
}

// failureMessage is the user-facing text for a failed item.
func failureMessage(err error) string {
	var apiErr *asc.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

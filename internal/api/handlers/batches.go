package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/asc-iap/internal/batch"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// BatchRunner defines the run manager methods required by the batches
// handler.
type BatchRunner interface {
	Start(req batch.Request) (string, error)
	Get(id string) (batch.Snapshot, error)
	List() []batch.Snapshot
	Cancel(id string) error
}

// BatchHandler starts, inspects and cancels batch runs.
type BatchHandler struct {
	runner       BatchRunner
	excludeChina bool
	readFile     func(string) ([]byte, error)
}

// BatchHandlerOption configures the BatchHandler.
type BatchHandlerOption func(*BatchHandler)

// WithDefaultExcludeChina sets exclusion for requests that omit exclude_china.
func WithDefaultExcludeChina(exclude bool) BatchHandlerOption {
	return func(h *BatchHandler) {
		h.excludeChina = exclude
	}
}

// WithReadFile overrides how screenshot paths are read.
func WithReadFile(f func(string) ([]byte, error)) BatchHandlerOption {
	return func(h *BatchHandler) {
		h.readFile = f
	}
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(runner BatchRunner, opts ...BatchHandlerOption) *BatchHandler {
	h := &BatchHandler{
		runner:       runner,
		excludeChina: true,
		readFile:     os.ReadFile,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// StartBatchBody is the request body for starting a batch run.
type StartBatchBody struct {
	AppID          string               `json:"app_id"                    minLength:"1" doc:"App Store Connect app ID"`
	Products       []domain.ProductSpec `json:"products"                  minItems:"1"  doc:"Products to create, in order"`
	ExcludeChina   *bool                `json:"exclude_china,omitempty"   doc:"Remove mainland China, Hong Kong, Macau and Taiwan from availability"`
	ScreenshotPath string               `json:"screenshot_path,omitempty" doc:"Server-local path of a review screenshot shared by every product"`
	Locales        []string             `json:"locales,omitempty"         doc:"Localization locales (defaults to the server config)"`
}

// StartBatchInput is the request for starting a batch run.
type StartBatchInput struct {
	Body StartBatchBody
}

// StartBatchResponse identifies a started run.
type StartBatchResponse struct {
	ID string `json:"id" example:"6f1c2f0e-6a7b-4c1e-9a59-5f7cf4b1e3a2"`
}

// StartBatchOutput is the response for starting a batch run.
type StartBatchOutput struct {
	Body StartBatchResponse
}

// BatchIDInput is the request path for a single run.
type BatchIDInput struct {
	ID string `path:"id" doc:"Batch run ID"`
}

// GetBatchOutput is the response body for a single run.
type GetBatchOutput struct {
	Body batch.Snapshot
}

// ListBatchesOutput is the response body for listing runs.
type ListBatchesOutput struct {
	Body []batch.Snapshot
}

// CancelBatchOutput is the response body for a cancel request.
type CancelBatchOutput struct {
	Body StatusResponse
}

// Start validates the request and launches a run in the background.
func (h *BatchHandler) Start(_ context.Context, input *StartBatchInput) (*StartBatchOutput, error) {
	body := input.Body

	products := make([]domain.ProductSpec, 0, len(body.Products))
	var errs []error
	for _, p := range body.Products {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		products = append(products, p.Normalized())
	}
	if len(errs) > 0 {
		return nil, huma.Error422UnprocessableEntity(errors.Join(errs...).Error())
	}

	for _, loc := range body.Locales {
		if _, ok := domain.SupportedLocales[loc]; !ok {
			return nil, huma.Error422UnprocessableEntity("unsupported locale: " + loc)
		}
	}

	req := batch.Request{
		AppID:        body.AppID,
		Products:     products,
		ExcludeChina: h.excludeChina,
		Locales:      body.Locales,
	}
	if body.ExcludeChina != nil {
		req.ExcludeChina = *body.ExcludeChina
	}

	if body.ScreenshotPath != "" {
		data, err := h.readFile(body.ScreenshotPath)
		if err != nil {
			return nil, huma.Error400BadRequest("reading screenshot failed: " + err.Error())
		}
		req.Screenshot = &batch.Screenshot{Name: filepath.Base(body.ScreenshotPath), Data: data}
	}

	id, err := h.runner.Start(req)
	if err != nil {
		if errors.Is(err, batch.ErrMissingApp) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, huma.Error500InternalServerError("starting batch failed: " + err.Error())
	}

	return &StartBatchOutput{Body: StartBatchResponse{ID: id}}, nil
}

// Get returns the snapshot of one run.
func (h *BatchHandler) Get(_ context.Context, input *BatchIDInput) (*GetBatchOutput, error) {
	snap, err := h.runner.Get(input.ID)
	if err != nil {
		return nil, runError(err)
	}
	return &GetBatchOutput{Body: snap}, nil
}

// List returns every run known to this server, oldest first.
func (h *BatchHandler) List(_ context.Context, _ *struct{}) (*ListBatchesOutput, error) {
	runs := h.runner.List()
	if runs == nil {
		runs = []batch.Snapshot{}
	}
	return &ListBatchesOutput{Body: runs}, nil
}

// Cancel asks a run to stop before its next item.
func (h *BatchHandler) Cancel(_ context.Context, input *BatchIDInput) (*CancelBatchOutput, error) {
	if err := h.runner.Cancel(input.ID); err != nil {
		return nil, runError(err)
	}
	return &CancelBatchOutput{Body: StatusResponse{Status: "cancelling"}}, nil
}

func runError(err error) error {
	if errors.Is(err, batch.ErrRunNotFound) {
		return huma.Error404NotFound("batch run not found")
	}
	return huma.Error500InternalServerError(err.Error())
}

// RegisterBatchRoutes registers batch run endpoints with the Huma API.
func RegisterBatchRoutes(api huma.API, h *BatchHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "start-batch",
		Method:        http.MethodPost,
		Path:          "/api/v1/batches",
		Summary:       "Start a batch run",
		Description:   "Creates the listed products in order in the background. Poll the returned run ID for progress.",
		Tags:          []string{"batches"},
		DefaultStatus: http.StatusAccepted,
		Errors:        []int{http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, h.Start)

	huma.Register(api, huma.Operation{
		OperationID: "list-batches",
		Method:      http.MethodGet,
		Path:        "/api/v1/batches",
		Summary:     "List batch runs",
		Description: "Returns a snapshot of every batch run started since the server came up.",
		Tags:        []string{"batches"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "get-batch",
		Method:      http.MethodGet,
		Path:        "/api/v1/batches/{id}",
		Summary:     "Get a batch run",
		Description: "Returns state, progress and per-item outcomes of a batch run.",
		Tags:        []string{"batches"},
		Errors:      []int{http.StatusNotFound},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID:   "cancel-batch",
		Method:        http.MethodDelete,
		Path:          "/api/v1/batches/{id}",
		Summary:       "Cancel a batch run",
		Description:   "Requests cooperative cancellation. The item in flight finishes first.",
		Tags:          []string{"batches"},
		DefaultStatus: http.StatusAccepted,
		Errors:        []int{http.StatusNotFound},
	}, h.Cancel)
}

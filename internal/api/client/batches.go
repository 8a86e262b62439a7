package client

import (
	"context"
	"net/url"

	"github.com/donaldgifford/asc-iap/internal/batch"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// StartBatchRequest is the body of a start-batch call.
type StartBatchRequest struct {
	AppID          string               `json:"app_id"`
	Products       []domain.ProductSpec `json:"products"`
	ExcludeChina   *bool                `json:"exclude_china,omitempty"`
	ScreenshotPath string               `json:"screenshot_path,omitempty"`
	Locales        []string             `json:"locales,omitempty"`
}

type startBatchResponse struct {
	ID string `json:"id"`
}

// StartBatch starts a batch run on the server and returns its run ID.
func (c *Client) StartBatch(ctx context.Context, req *StartBatchRequest) (string, error) {
	var resp startBatchResponse
	if err := c.post(ctx, "/api/v1/batches", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// GetBatch returns the snapshot of one run.
func (c *Client) GetBatch(ctx context.Context, id string) (*batch.Snapshot, error) {
	var snap batch.Snapshot
	if err := c.get(ctx, "/api/v1/batches/"+url.PathEscape(id), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListBatches returns every run known to the server.
func (c *Client) ListBatches(ctx context.Context) ([]batch.Snapshot, error) {
	var runs []batch.Snapshot
	if err := c.get(ctx, "/api/v1/batches", &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// CancelBatch requests cooperative cancellation of a run.
func (c *Client) CancelBatch(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/batches/"+url.PathEscape(id), nil)
}

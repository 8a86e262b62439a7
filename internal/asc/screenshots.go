package asc

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec // Content-MD5 is an integrity header, not a security control.
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/donaldgifford/asc-iap/internal/metrics"
	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

const defaultUploadTimeout = 60 * time.Second

type uploadHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type uploadOperation struct {
	Method         string         `json:"method"`
	URL            string         `json:"url"`
	Offset         int64          `json:"offset"`
	Length         *int64         `json:"length"`
	RequestHeaders []uploadHeader `json:"requestHeaders"`
}

type screenshotAttributes struct {
	FileName         string            `json:"fileName,omitempty"`
	FileSize         int64             `json:"fileSize,omitempty"`
	Uploaded         *bool             `json:"uploaded,omitempty"`
	UploadOperations []uploadOperation `json:"uploadOperations,omitempty"`
}

// ReserveScreenshot creates the review screenshot record for a product and
// returns the upload operations App Store Connect assigned to it.
func (c *Client) ReserveScreenshot(
	ctx context.Context,
	productID, fileName string,
	size int64,
) (*domain.UploadTicket, error) {
	req := requestDocument{
		Data: resourceObject{
			Type: typeReviewScreenshots,
			Attributes: screenshotAttributes{
				FileName: fileName,
				FileSize: size,
			},
			Relationships: map[string]any{
				"inAppPurchaseV2": relateOne(typeInAppPurchases, productID),
			},
		},
	}

	var resp singleDocument[screenshotAttributes]
	if err := c.Do(ctx, http.MethodPost, "/v1/inAppPurchaseAppStoreReviewScreenshots", req, &resp); err != nil {
		return nil, err
	}

	ops := resp.Data.Attributes.UploadOperations
	if len(ops) == 0 {
		return nil, &APIError{
			Code:   CodeNoUploadOperations,
			Detail: "no upload operations returned for screenshot",
		}
	}

	ticket := &domain.UploadTicket{
		ScreenshotID: resp.Data.ID,
		Operations:   make([]domain.UploadOperation, 0, len(ops)),
	}
	for _, op := range ops {
		length := size - op.Offset
		if op.Length != nil {
			length = *op.Length
		}
		headers := make(map[string]string, len(op.RequestHeaders))
		for _, h := range op.RequestHeaders {
			if h.Name != "" && h.Value != "" {
				headers[h.Name] = h.Value
			}
		}
		ticket.Operations = append(ticket.Operations, domain.UploadOperation{
			URL:     op.URL,
			Method:  op.Method,
			Offset:  op.Offset,
			Length:  length,
			Headers: headers,
		})
	}
	return ticket, nil
}

// CommitScreenshot marks a reserved screenshot as fully uploaded.
func (c *Client) CommitScreenshot(ctx context.Context, screenshotID string) error {
	uploaded := true
	req := requestDocument{
		Data: resourceObject{
			Type:       typeReviewScreenshots,
			ID:         screenshotID,
			Attributes: screenshotAttributes{Uploaded: &uploaded},
		},
	}
	path := "/v1/inAppPurchaseAppStoreReviewScreenshots/" + url.PathEscape(screenshotID)
	return c.Do(ctx, http.MethodPatch, path, req, nil)
}

// UploadScreenshot reserves, uploads and commits a review screenshot.
func (c *Client) UploadScreenshot(
	ctx context.Context,
	productID, fileName string,
	data []byte,
) error {
	ticket, err := c.ReserveScreenshot(ctx, productID, fileName, int64(len(data)))
	if err != nil {
		return err
	}

	parts, err := PrepareUploads(ticket.Operations, data)
	if err != nil {
		return err
	}
	for _, part := range parts {
		if err := c.uploader.Upload(ctx, part); err != nil {
			return err
		}
	}

	if err := c.CommitScreenshot(ctx, ticket.ScreenshotID); err != nil {
		return err
	}
	c.log.Debug("uploaded review screenshot",
		"product", productID,
		"screenshot", ticket.ScreenshotID,
		"bytes", len(data),
		"parts", len(parts),
	)
	return nil
}

// PreparedUpload is one operation with its slice of the file and the headers
// to send with it.
type PreparedUpload struct {
	Method  string
	URL     string
	Body    []byte
	Headers map[string]string
}

// ChunkDigest returns the base64 encoded MD5 digest of chunk, the value of
// the Content-MD5 header.
func ChunkDigest(chunk []byte) string {
	sum := md5.Sum(chunk) //nolint:gosec // see import
	return base64.StdEncoding.EncodeToString(sum[:])
}

// PrepareUploads slices data for each operation and computes its headers. It
// is deterministic, so the same inputs always yield the same digests.
func PrepareUploads(ops []domain.UploadOperation, data []byte) ([]PreparedUpload, error) {
	size := int64(len(data))
	parts := make([]PreparedUpload, 0, len(ops))
	for i, op := range ops {
		if op.Offset < 0 || op.Length < 0 || op.Offset > size || op.Length > size-op.Offset {
			return nil, &APIError{
				Code: CodeUploadFailed,
				Detail: fmt.Sprintf(
					"upload operation %d out of range: offset %d length %d size %d",
					i, op.Offset, op.Length, size,
				),
			}
		}
		chunk := data[op.Offset : op.Offset+op.Length]

		headers := make(map[string]string, len(op.Headers)+1)
		headers["Content-MD5"] = ChunkDigest(chunk)
		for k, v := range op.Headers {
			headers[k] = v
		}

		method := op.Method
		if method == "" {
			method = http.MethodPut
		}
		parts = append(parts, PreparedUpload{
			Method:  method,
			URL:     op.URL,
			Body:    chunk,
			Headers: headers,
		})
	}
	return parts, nil
}

// Uploader sends file slices to the storage URLs App Store Connect hands
// out. Those URLs are pre-authorized, so no bearer token is attached.
type Uploader struct {
	client  *http.Client
	timeout time.Duration
}

// UploaderOption configures the Uploader.
type UploaderOption func(*Uploader)

// WithUploadHTTPClient overrides the HTTP client used for uploads.
func WithUploadHTTPClient(hc *http.Client) UploaderOption {
	return func(u *Uploader) {
		u.client = hc
	}
}

// WithUploadTimeout sets the per-slice upload timeout.
func WithUploadTimeout(d time.Duration) UploaderOption {
	return func(u *Uploader) {
		u.timeout = d
	}
}

// NewUploader creates an Uploader with a 60 second timeout.
func NewUploader(opts ...UploaderOption) *Uploader {
	u := &Uploader{
		client:  &http.Client{},
		timeout: defaultUploadTimeout,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload sends one prepared slice.
func (u *Uploader) Upload(ctx context.Context, part PreparedUpload) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, part.Method, part.URL, bytes.NewReader(part.Body))
	if err != nil {
		return &APIError{Code: CodeUploadFailed, Detail: "creating upload request: " + err.Error(), Err: err}
	}
	for k, v := range part.Headers {
		req.Header.Set(k, v)
	}
	req.ContentLength = int64(len(part.Body))

	resp, err := u.client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{
			Code:       CodeUploadFailed,
			HTTPStatus: resp.StatusCode,
			Detail:     fmt.Sprintf("upload failed: HTTP %d", resp.StatusCode),
		}
	}

	metrics.ScreenshotUploadBytes.Add(float64(len(part.Body)))
	return nil
}

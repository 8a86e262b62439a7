package asc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// Error codes assigned locally. Server-supplied codes pass through unchanged.
const (
	CodeTimeout            = "TIMEOUT"
	CodeConnection         = "CONNECTION"
	CodeRequestFailed      = "REQUEST_FAILED"
	CodeHTTPError          = "HTTP_ERROR"
	CodeUploadFailed       = "UPLOAD_FAILED"
	CodeNoUploadOperations = "NO_UPLOAD_OPERATIONS"
)

// APIError is returned for every failed App Store Connect call.
type APIError struct {
	Code       string
	HTTPStatus int
	Title      string
	Detail     string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Detail
	if e.Title != "" {
		msg = e.Title + ": " + e.Detail
	}
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("%s (status %d, code %s)", msg, e.HTTPStatus, e.Code)
	}
	return fmt.Sprintf("%s (code %s)", msg, e.Code)
}

// Unwrap returns the transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Message returns the text shown to users: the detail, or the title when the
// server sent no detail.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Title != "" {
		return e.Title
	}
	return e.Error()
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

type errorDocument struct {
	Errors []errorObject `json:"errors"`
}

type errorObject struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// parseErrorResponse builds an APIError from a status >= 400 response body.
func parseErrorResponse(status int, body []byte) *APIError {
	var doc errorDocument
	if err := json.Unmarshal(body, &doc); err == nil && len(doc.Errors) > 0 {
		first := doc.Errors[0]
		return &APIError{
			Code:       first.Code,
			HTTPStatus: status,
			Title:      first.Title,
			Detail:     first.Detail,
		}
	}
	return &APIError{
		Code:       CodeHTTPError,
		HTTPStatus: status,
		Detail:     fmt.Sprintf("HTTP error: %d", status),
	}
}

// classifyTransportError maps a failure from http.Client.Do to an APIError.
func classifyTransportError(err error) *APIError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &APIError{
			Code:       CodeTimeout,
			HTTPStatus: http.StatusRequestTimeout,
			Detail:     "request timed out",
			Err:        err,
		}
	case isConnectionError(err):
		return &APIError{
			Code:   CodeConnection,
			Detail: "connection failed: " + err.Error(),
			Err:    err,
		}
	default:
		return &APIError{
			Code:   CodeRequestFailed,
			Detail: "request failed: " + err.Error(),
			Err:    err,
		}
	}
}

func isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}

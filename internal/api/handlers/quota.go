package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/asc-iap/internal/asc"
)

// QuotaHandler reports the App Store Connect hourly request budget.
type QuotaHandler struct {
	rl *asc.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler. A nil limiter reports zeroes.
func NewQuotaHandler(rl *asc.RateLimiter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		HourlyLimit int64     `json:"hourly_limit" example:"3600"                 doc:"Configured hourly API call budget"`
		HourlyUsed  int64     `json:"hourly_used"  example:"142"                  doc:"API calls made in the current window"`
		Remaining   int64     `json:"remaining"    example:"3458"                 doc:"API calls left in the current window"`
		ResetAt     time.Time `json:"reset_at"     example:"2026-06-16T14:30:00Z" doc:"When the current window expires"`
	}
}

// GetQuota returns the current hourly budget status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	if h.rl == nil {
		return resp, nil
	}

	resp.Body.HourlyLimit = h.rl.MaxHourly()
	resp.Body.HourlyUsed = h.rl.HourlyCount()
	resp.Body.Remaining = h.rl.Remaining()
	resp.Body.ResetAt = h.rl.ResetAt()

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get App Store Connect quota status",
		Description: "Returns the API calls used in the current hourly window, the calls remaining, and when the window resets.",
		Tags:        []string{"asc"},
	}, h.GetQuota)
}

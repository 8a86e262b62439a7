package main

import "errors"

// KnownMetrics is the set of metric names exported by asc-iap plus recording
// rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"asciap_http_request_duration_seconds": true,
	"asciap_http_requests_total":           true,

	// Health metrics.
	"asciap_healthz_up": true,
	"asciap_readyz_up":  true,

	// App Store Connect metrics.
	"asciap_asc_api_requests_total":           true,
	"asciap_asc_api_request_duration_seconds": true,
	"asciap_asc_token_renewals_total":         true,
	"asciap_asc_rate_limit_hits_total":        true,
	"asciap_asc_hourly_usage":                 true,
	"asciap_screenshot_upload_bytes_total":    true,

	// Batch metrics.
	"asciap_batch_items_total":            true,
	"asciap_batch_substep_failures_total": true,
	"asciap_batch_runs_active":            true,
	"asciap_batch_run_duration_seconds":   true,

	// Recording rules.
	"asciap:http_requests:rate5m":    true,
	"asciap:http_errors:rate5m":      true,
	"asciap:asc_api_calls:rate5m":    true,
	"asciap:asc_api_errors:rate5m":   true,
	"asciap:asc_api_duration:p95_5m": true,
	"asciap:batch_items:rate5m":      true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}

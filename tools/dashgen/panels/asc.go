package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APICallsRate returns a timeseries panel showing App Store Connect calls
// per second by response status.
func APICallsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Calls Rate").
		Description("App Store Connect API calls per second by status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(asciap_asc_api_requests_total{job="asc-iap"}[5m])) by (status)`,
			"{{status}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// APILatency returns a timeseries panel showing p95 App Store Connect latency
// by HTTP method.
func APILatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Latency (p95)").
		Description("95th percentile App Store Connect request duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`asciap:asc_api_duration:p95_5m`, "{{method}}", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenYellowRed(2, 10)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// HourlyUsage returns a timeseries panel showing requests in the rolling
// hour against the budget.
func HourlyUsage() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Hourly Usage vs Limit").
		Description("Requests issued in the rolling hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`asciap_asc_hourly_usage{job="asc-iap"}`, "usage", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(float64(ASCHourlyLimit)*0.8, float64(ASCHourlyLimit))).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LimitHits returns a stat panel showing how often the hourly budget ran out
// in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Limit Hits (24h)").
		Description("Times the hourly request budget was exhausted in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(8).
		WithTarget(PromQuery(`increase(asciap_asc_rate_limit_hits_total{job="asc-iap"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// TokenRenewals returns a stat panel showing tokens signed in the past 24
// hours.
func TokenRenewals() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Token Renewals (24h)").
		Description("Bearer tokens signed in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(8).
		WithTarget(PromQuery(`increase(asciap_asc_token_renewals_total{job="asc-iap"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}

// UploadThroughput returns a stat panel showing screenshot bytes uploaded
// per second.
func UploadThroughput() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Screenshot Upload Rate").
		Description("Review screenshot bytes uploaded per second").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(8).
		WithTarget(PromQuery(`rate(asciap_screenshot_upload_bytes_total{job="asc-iap"}[5m])`, "", "A")).
		Unit("Bps").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

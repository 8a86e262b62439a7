package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ActiveRuns returns a stat panel showing batch runs in progress.
func ActiveRuns() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Active Runs").
		Description("Batch runs currently in progress").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(asciap_batch_runs_active{job="asc-iap"})`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// ItemSuccessRate returns a stat panel showing the share of batch items
// that were created over the past 24 hours.
func ItemSuccessRate() *stat.PanelBuilder {
	expr := `sum(increase(asciap_batch_items_total{job="asc-iap",result="succeeded"}[24h])) / sum(increase(asciap_batch_items_total{job="asc-iap"}[24h])) * 100`
	return stat.NewPanelBuilder().
		Title("Item Success (24h)").
		Description("Percentage of batch items created in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Unit("percent").
		Thresholds(ThresholdsRedGreen(90)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// ItemsRate returns a timeseries panel showing batch items per minute by
// result.
func ItemsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Items / min").
		Description("Batch items processed per minute by result").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`asciap:batch_items:rate5m * 60`, "{{result}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RunDuration returns a timeseries panel showing p50 and p95 batch run
// durations.
func RunDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Run Duration").
		Description("Batch run duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(asciap_batch_run_duration_seconds_bucket{job="asc-iap"}[1h])) by (le))`,
			"p50", "A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(asciap_batch_run_duration_seconds_bucket{job="asc-iap"}[1h])) by (le))`,
			"p95", "B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SubstepFailures returns a bar gauge panel showing discarded sub-step
// failures by step over the past 24 hours.
func SubstepFailures() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Sub-step Failures (24h)").
		Description("Price, localization, availability and screenshot failures that did not fail the item").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			`sum(increase(asciap_batch_substep_failures_total{job="asc-iap"}[24h])) by (step)`,
			"{{step}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds())
}

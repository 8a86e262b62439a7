// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/asc-iap/tools/dashgen/panels"
)

// BuildOverview constructs the asc-iap overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("ASC IAP Overview").
		Uid("asciap-overview").
		Tags([]string{"asciap", "app-store-connect"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.HourlyBudgetGauge()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("App Store Connect").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.APILatency()).
		WithPanel(panels.HourlyUsage()).
		WithPanel(panels.LimitHits()).
		WithPanel(panels.TokenRenewals()).
		WithPanel(panels.UploadThroughput()))

	b.WithRow(dashboard.NewRowBuilder("Batches").
		WithPanel(panels.ActiveRuns()).
		WithPanel(panels.ItemSuccessRate()).
		WithPanel(panels.ItemsRate()).
		WithPanel(panels.RunDuration()).
		WithPanel(panels.SubstepFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}

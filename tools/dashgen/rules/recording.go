package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "asciap-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "asciap-recording",
					Rules: []Rule{
						{
							Record: "asciap:http_requests:rate5m",
							Expr:   `sum(rate(asciap_http_requests_total[5m]))`,
						},
						{
							Record: "asciap:http_errors:rate5m",
							Expr:   `sum(rate(asciap_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "asciap:asc_api_calls:rate5m",
							Expr:   `sum(rate(asciap_asc_api_requests_total[5m]))`,
						},
						{
							Record: "asciap:asc_api_errors:rate5m",
							Expr:   `sum(rate(asciap_asc_api_requests_total{status=~"5..|TIMEOUT|CONNECTION|REQUEST_FAILED"}[5m]))`,
						},
						{
							Record: "asciap:asc_api_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(asciap_asc_api_request_duration_seconds_bucket[5m])) by (le, method))`,
						},
						{
							Record: "asciap:batch_items:rate5m",
							Expr:   `sum(rate(asciap_batch_items_total[5m])) by (result)`,
						},
					},
				},
			},
		},
	}
}

package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// asc-iap operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "asciap-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "asciap-alerts",
					Rules: []Rule{
						{
							Alert: "AscIapDown",
							Expr:  `absent(up{job="asc-iap"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "asc-iap is down",
								"description": "The asc-iap job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "AscIapReadinessDown",
							Expr:  `asciap_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "asc-iap cannot mint App Store Connect tokens",
								"description": "The readiness probe has been failing for more than 2 minutes. Check the API key and issuer.",
							},
						},
						{
							Alert: "AscIapHighErrorRate",
							Expr:  `asciap:http_errors:rate5m / asciap:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on asc-iap",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "AscIapUpstreamErrors",
							Expr:  `asciap:asc_api_errors:rate5m / asciap:asc_api_calls:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "App Store Connect requests are failing",
								"description": "More than 10% of App Store Connect calls failed with a server or transport error over the last 5 minutes.",
							},
						},
						{
							Alert: "AscIapHourlyBudgetHigh",
							Expr:  `asciap_asc_hourly_usage > 2880`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "App Store Connect hourly usage is above 80% of the budget",
								"description": "Requests in the rolling hour exceeded 2880 (default budget is 3600).",
							},
						},
						{
							Alert: "AscIapHourlyLimitReached",
							Expr:  `increase(asciap_asc_rate_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "App Store Connect hourly limit has been reached",
								"description": "The hourly request budget is exhausted. Batch items fail until the window resets.",
							},
						},
						{
							Alert: "AscIapSubstepFailures",
							Expr:  `sum(increase(asciap_batch_substep_failures_total[15m])) > 10`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "Batch sub-steps are failing",
								"description": "More than 10 price, localization, availability or screenshot steps failed in 15 minutes. Products were created but may be incomplete.",
							},
						},
					},
				},
			},
		},
	}
}

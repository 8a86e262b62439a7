// Package validate checks generated dashboards and rule files for PromQL
// syntax errors and references to metrics the server does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/asc-iap/tools/dashgen/rules"
)

// Histogram series suffixes that map back to their base metric name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors fail generation; warnings do
// not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Merge appends the findings of o to r.
func (r *Result) Merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Dashboard validates every query expression in dash.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	exprs := collectExprs(tree, nil)
	if len(exprs) == 0 {
		res.Warnings = append(res.Warnings, "dashboard has no query expressions")
	}
	for _, expr := range exprs {
		res.Merge(Expr(expr, known))
	}
	return res
}

// Rules validates every rule expression in cr. Recording rule names must be
// known so dashboards can reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, group := range cr.Spec.Groups {
		for _, rule := range group.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			if name == "" {
				res.Errors = append(res.Errors, fmt.Sprintf("group %s: rule without record or alert name", group.Name))
			}
			if rule.Record != "" && !known[rule.Record] {
				res.Warnings = append(res.Warnings, fmt.Sprintf("recording rule %s is not in the known metric set", rule.Record))
			}
			sub := Expr(rule.Expr, known)
			for i, e := range sub.Errors {
				sub.Errors[i] = name + ": " + e
			}
			res.Merge(sub)
		}
	}
	return res
}

// Expr parses expr and checks that every selected metric is known.
func Expr(expr string, known map[string]bool) Result {
	var res Result

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid PromQL %q: %v", expr, err))
		return res
	}

	seen := map[string]bool{}
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" || seen[vs.Name] {
			return nil
		}
		seen[vs.Name] = true
		if !known[baseMetric(vs.Name)] {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown metric %q in %q", vs.Name, expr))
		}
		return nil
	})
	return res
}

func baseMetric(name string) string {
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			return base
		}
	}
	return name
}

// collectExprs walks a decoded JSON tree and returns the values of all
// "expr" keys in a stable order.
func collectExprs(node any, out []string) []string {
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := v[k].(string); ok && k == "expr" {
				out = append(out, s)
				continue
			}
			out = collectExprs(v[k], out)
		}
	case []any:
		for _, item := range v {
			out = collectExprs(item, out)
		}
	}
	return out
}

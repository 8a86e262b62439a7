// Package pricing maps requested prices onto App Store Connect price points.
package pricing

import (
	"math"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// Match returns the price point that best fits requested.
//
// A candidate whose display price contains requested verbatim wins first,
// which keeps locale-formatted prices like "$1.99" exact. Otherwise the
// numerically nearest candidate is returned, comparing against the display
// price with everything but digits and '.' stripped. The second return value
// is false when requested is not a decimal or no candidate carries a
// parseable price.
func Match(requested string, candidates []domain.PricePoint) (domain.PricePoint, bool) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return domain.PricePoint{}, false
	}

	for i := range candidates {
		if strings.Contains(candidates[i].CustomerPrice, requested) {
			return candidates[i], true
		}
	}

	target, ok := parseDecimal(requested)
	if !ok {
		return domain.PricePoint{}, false
	}

	best := -1
	bestDiff := math.Inf(1)
	for i := range candidates {
		value, ok := parseDecimal(numericPart(candidates[i].CustomerPrice))
		if !ok {
			continue
		}
		if diff := math.Abs(value - target); diff < bestDiff {
			bestDiff = diff
			best = i
		}
	}

	if best < 0 {
		return domain.PricePoint{}, false
	}
	return candidates[best], true
}

// numericPart keeps only ASCII digits and decimal points.
func numericPart(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseDecimal(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Package chart prepares chart points for bar and line renderers.
package chart

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// CategoryTotal is the summed value of all points sharing a category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Label    string  `json:"label"`
}

// GroupByCategory sums point values per category and returns the totals
// sorted by category.
func GroupByCategory(points []tabular.ChartPoint) []CategoryTotal {
	groups := make(map[string][]float64)
	var order []string
	for _, p := range points {
		if _, ok := groups[p.Category]; !ok {
			order = append(order, p.Category)
		}
		groups[p.Category] = append(groups[p.Category], p.Value)
	}
	slices.SortStableFunc(order, func(a, b string) int {
		return strings.Compare(a, b)
	})

	totals := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		sum := floats.Sum(groups[c])
		totals = append(totals, CategoryTotal{Category: c, Value: sum, Label: FormatAxisValue(sum)})
	}
	return totals
}

// FormatAxisValue abbreviates v for axis ticks: billions as "$1.23B",
// anything smaller in millions as "$4.56M".
func FormatAxisValue(v float64) string {
	if v >= 1e9 {
		return fmt.Sprintf("$%.2fB", v/1e9)
	}
	return fmt.Sprintf("$%.2fM", v/1e6)
}

// Summary holds descriptive statistics for a series.
type Summary struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summarize computes statistics over the totals. An empty series yields a
// zero Summary.
func Summarize(totals []CategoryTotal) Summary {
	if len(totals) == 0 {
		return Summary{}
	}
	values := make([]float64, len(totals))
	for i, t := range totals {
		values[i] = t.Value
	}
	sum := floats.Sum(values)
	return Summary{
		Count: len(values),
		Total: sum,
		Min:   floats.Min(values),
		Max:   floats.Max(values),
		Mean:  sum / float64(len(values)),
	}
}

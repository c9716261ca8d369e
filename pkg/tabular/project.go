package tabular

import (
	"cmp"
	"slices"
)

// Project reduces rows to (Period, Value) chart points, one per row in row
// order. Without a Period or value column it returns an empty, non-nil slice.
func Project(pd ParsedData) []ChartPoint {
	period := slices.Index(pd.Headers, PeriodColumn)
	if period < 0 || !slices.Contains(pd.Headers, ValueColumn) {
		return []ChartPoint{}
	}

	points := make([]ChartPoint, 0, len(pd.Rows))
	for _, row := range pd.Rows {
		category := Placeholder
		if period < len(row.Dimensions) {
			category = row.Dimensions[period]
		}
		points = append(points, ChartPoint{Category: category, Value: row.Value})
	}
	return points
}

// SortRows returns a copy of rows ordered by their dimension cells, compared
// left to right. The value does not take part and equal rows keep their
// relative order.
func SortRows(rows []Row) []Row {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b Row) int {
		n := min(len(a.Dimensions), len(b.Dimensions))
		for i := range n {
			if c := cmp.Compare(a.Dimensions[i], b.Dimensions[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(a.Dimensions), len(b.Dimensions))
	})
	return sorted
}

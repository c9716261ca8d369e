package tabular

import "strings"

// convention is a fixed column layout observed in backend payloads.
type convention struct {
	name    Convention
	depth   int
	columns []string
}

// knownConventions is ordered by priority: the first convention with any
// leaf of its depth wins.
var knownConventions = []convention{
	{
		name:    ConventionEight,
		depth:   8,
		columns: []string{"Channel", "Year", "Scenario", "Classification", PeriodColumn, "Metric", "Profit Center", "Cluster"},
	},
	{
		name:    ConventionSeven,
		depth:   7,
		columns: []string{"Channel", "Year", "Scenario", PeriodColumn, "Metric", "Profit Center", "Cluster"},
	},
	{
		name:    ConventionRegional,
		depth:   6,
		columns: []string{"Channel", "Year", "Scenario", PeriodColumn, "Metric", "Region"},
	},
}

func (c convention) schema() Schema {
	cols := make([]Column, 0, len(c.columns)+1)
	for i, name := range c.columns {
		cols = append(cols, Column{Name: name, Role: RoleDimension, Segments: []int{i}})
	}
	cols = append(cols, Column{Name: ValueColumn, Role: RoleValue})
	return Schema{Convention: c.name, Depth: c.depth, Columns: cols}
}

// InferSchema chooses the column layout for a set of leaves.
//
// A known convention is used when any leaf has its depth, checked in the
// order eight, seven, regional. Otherwise the generic fallback retains the
// most common path length (ties to the longer) and derives Channel, Period
// and Metric columns from it. No leaves yields an empty schema.
func InferSchema(leaves []Leaf) Schema {
	if len(leaves) == 0 {
		return Schema{Convention: ConventionNone}
	}

	counts := depthCounts(leaves)
	for _, c := range knownConventions {
		if counts[c.depth] > 0 {
			return c.schema()
		}
	}
	return genericSchema(leaves, dominantDepth(counts))
}

func depthCounts(leaves []Leaf) map[int]int {
	counts := make(map[int]int)
	for _, l := range leaves {
		counts[l.Depth()]++
	}
	return counts
}

// dominantDepth returns the most common depth, preferring the longer one on
// ties.
func dominantDepth(counts map[int]int) int {
	best, bestCount := 0, 0
	for depth, n := range counts {
		if n > bestCount || (n == bestCount && depth > best) {
			best, bestCount = depth, n
		}
	}
	return best
}

func genericSchema(leaves []Leaf, depth int) Schema {
	s := Schema{Convention: ConventionGeneric, Depth: depth}
	if depth == 1 {
		s.Columns = []Column{
			{Name: PeriodColumn, Role: RoleDimension, Segments: []int{0}},
			{Name: ValueColumn, Role: RoleValue},
		}
		return s
	}

	distinct := distinctBySegment(leaves, depth)
	period := 1
	for i := 2; i < depth; i++ {
		if distinct[i] > distinct[period] {
			period = i
		}
	}

	s.Columns = []Column{
		{Name: "Channel", Role: RoleDimension, Segments: []int{0}},
		{Name: PeriodColumn, Role: RoleDimension, Segments: []int{period}},
	}
	if depth >= 3 {
		var rest []int
		for i := 1; i < depth; i++ {
			if i != period {
				rest = append(rest, i)
			}
		}
		s.Columns = append(s.Columns, Column{Name: "Metric", Role: RoleDimension, Segments: rest})
	}
	s.Columns = append(s.Columns, Column{Name: ValueColumn, Role: RoleValue})
	return s
}

// distinctBySegment counts distinct labels per segment index among leaves of
// exactly depth segments.
func distinctBySegment(leaves []Leaf, depth int) []int {
	seen := make([]map[string]struct{}, depth)
	for i := range seen {
		seen[i] = make(map[string]struct{})
	}
	for _, l := range leaves {
		if l.Depth() != depth {
			continue
		}
		for i, seg := range l.Path {
			seen[i][seg] = struct{}{}
		}
	}
	counts := make([]int, depth)
	for i, m := range seen {
		counts[i] = len(m)
	}
	return counts
}

// cell joins the path segments a column reads. Missing segments yield the
// placeholder.
func (c Column) cell(path []string) string {
	if len(c.Segments) == 0 {
		return Placeholder
	}
	parts := make([]string, 0, len(c.Segments))
	for _, i := range c.Segments {
		if i < 0 || i >= len(path) {
			return Placeholder
		}
		parts = append(parts, path[i])
	}
	return strings.Join(parts, MetricSeparator)
}

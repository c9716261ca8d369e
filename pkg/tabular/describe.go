package tabular

import (
	"slices"

	"github.com/usestring/salesdash-mcp/pkg/payload"
)

// DepthCount is one bucket of the leaf path length histogram.
type DepthCount struct {
	Depth int `json:"depth"`
	Count int `json:"count"`
}

// Description summarizes the leaf shape of a payload.
type Description struct {
	TextOnly   bool         `json:"text_only"`
	Chartable  bool         `json:"chartable"`
	LeafCount  int          `json:"leaf_count"`
	Depths     []DepthCount `json:"depths,omitempty"`
	Convention Convention   `json:"convention"`
	Depth      int          `json:"depth"`
	Headers    []string     `json:"headers,omitempty"`
	// Distinct holds the number of distinct labels per segment index among
	// leaves of the retained depth.
	Distinct []int `json:"distinct,omitempty"`
	Retained int   `json:"retained"`
	Dropped  int   `json:"dropped"`
}

// Describe reports how v would be materialized.
func Describe(v payload.Value) (Description, error) {
	return DescribeWithOptions(v, nil)
}

// DescribeWithOptions is Describe with explicit options.
func DescribeWithOptions(v payload.Value, opts *Options) (Description, error) {
	d := Description{
		TextOnly:   IsTextOnly(v),
		Convention: ConventionNone,
	}
	leaves, err := CollectLeavesWithOptions(v, opts)
	if err != nil {
		return d, err
	}
	d.LeafCount = len(leaves)
	d.Chartable = len(leaves) > 0 && !d.TextOnly
	if len(leaves) == 0 {
		return d, nil
	}

	counts := depthCounts(leaves)
	for depth, n := range counts {
		d.Depths = append(d.Depths, DepthCount{Depth: depth, Count: n})
	}
	slices.SortFunc(d.Depths, func(a, b DepthCount) int { return a.Depth - b.Depth })

	schema := InferSchema(leaves)
	d.Convention = schema.Convention
	d.Depth = schema.Depth
	d.Headers = schema.Headers()
	d.Distinct = distinctBySegment(leaves, schema.Depth)
	d.Retained = counts[schema.Depth]
	d.Dropped = len(leaves) - d.Retained
	return d, nil
}

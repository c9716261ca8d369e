package tabular

import (
	"github.com/usestring/salesdash-mcp/pkg/payload"
)

// Materialize turns a payload into rows. It fails only on malformed input;
// payloads without numeric leaves produce HasData false.
func Materialize(v payload.Value) (ParsedData, error) {
	return MaterializeWithOptions(v, nil)
}

// MaterializeWithOptions is Materialize with explicit options.
func MaterializeWithOptions(v payload.Value, opts *Options) (ParsedData, error) {
	leaves, err := CollectLeavesWithOptions(v, opts)
	if err != nil {
		return Empty(), err
	}
	return Build(InferSchema(leaves), leaves), nil
}

// Parse decodes raw JSON and materializes it.
func Parse(data []byte, opts *Options) (ParsedData, error) {
	var decodeOpts *payload.DecodeOptions
	if opts != nil {
		decodeOpts = &payload.DecodeOptions{MaxDepth: opts.MaxDepth}
	}
	v, err := payload.Decode(data, decodeOpts)
	if err != nil {
		return Empty(), err
	}
	return MaterializeWithOptions(v, opts)
}

// Build materializes the leaves whose depth matches the schema, in leaf
// order. Other leaves are counted in Dropped.
func Build(schema Schema, leaves []Leaf) ParsedData {
	if schema.IsEmpty() {
		pd := Empty()
		pd.Dropped = len(leaves)
		return pd
	}

	headers := schema.Headers()
	dims := schema.Columns[:len(schema.Columns)-1]
	pd := ParsedData{
		Rows:       make([]Row, 0, len(leaves)),
		Headers:    headers,
		Convention: schema.Convention,
	}
	for _, leaf := range leaves {
		if leaf.Depth() != schema.Depth {
			pd.Dropped++
			continue
		}
		cells := make([]string, len(dims))
		for i, col := range dims {
			cells[i] = col.cell(leaf.Path)
		}
		pd.Rows = append(pd.Rows, Row{Columns: headers, Dimensions: cells, Value: leaf.Value})
	}
	pd.HasData = len(pd.Rows) > 0
	return pd
}

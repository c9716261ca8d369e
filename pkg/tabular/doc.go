// Package tabular turns hierarchical analytics payloads into flat rows.
//
// A payload is a nested object whose numeric leaves carry revenue figures and
// whose key paths carry dimension labels (channel, year, scenario, period and
// so on). The package works in four steps:
//
//   - CollectLeaves walks the payload in document order and emits one Leaf per
//     numeric value, collapsing single-number wrapper objects.
//   - InferSchema picks a column layout from the leaf path lengths: a known
//     eight, seven or six segment convention, or a generic fallback.
//   - Build materializes rows from leaves under a schema.
//   - Project reduces rows to (Period, Value) chart points.
//
// Materialize chains the first three steps and IsChartable reports whether
// they would produce any row.
package tabular

package tabular

import (
	"github.com/usestring/salesdash-mcp/pkg/payload"
)

// TextResponseKey is the only key of a text-only payload.
const TextResponseKey = "response"

// IsTextOnly reports whether v is an object with exactly one key, "response",
// holding a string.
func IsTextOnly(v payload.Value) bool {
	obj, ok := v.Object()
	if !ok || obj.Len() != 1 {
		return false
	}
	resp, ok := obj.Get(TextResponseKey)
	return ok && resp.Kind() == payload.KindString
}

// TextResponse returns the message of a text-only payload.
func TextResponse(v payload.Value) (string, bool) {
	if !IsTextOnly(v) {
		return "", false
	}
	obj, _ := v.Object()
	resp, _ := obj.Get(TextResponseKey)
	return resp.Text()
}

// IsChartable reports whether materializing v would yield at least one leaf.
// Malformed payloads are not chartable.
func IsChartable(v payload.Value) bool {
	return IsChartableWithOptions(v, nil)
}

// IsChartableWithOptions is IsChartable with explicit options.
func IsChartableWithOptions(v payload.Value, opts *Options) bool {
	if _, ok := v.Object(); !ok || IsTextOnly(v) {
		return false
	}
	leaves, err := CollectLeavesWithOptions(v, opts)
	return err == nil && len(leaves) > 0
}

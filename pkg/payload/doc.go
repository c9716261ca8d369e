// Package payload decodes backend analytics payloads into an order-preserving
// value tree.
//
// Object keys keep the order in which they appear in the source document.
// Everything downstream (leaf collection, row materialization, chart
// projection) depends on that order, so payloads should always be decoded
// through Decode rather than encoding/json's map-based decoding:
//
//	v, err := payload.Decode(body, nil)
//	if errors.Is(err, payload.ErrMalformed) {
//	    // payload too deep or not JSON
//	}
//
// Only numbers, strings and objects are modeled. Arrays, booleans and null
// decode as KindOther and are skipped by consumers.
package payload

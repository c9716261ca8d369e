package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/buger/jsonparser"
)

// DefaultMaxDepth is the object nesting ceiling applied when none is given.
const DefaultMaxDepth = 64

// DecodeOptions controls decoding.
type DecodeOptions struct {
	// MaxDepth bounds object nesting. The root object is depth 1.
	// Zero or negative means DefaultMaxDepth.
	MaxDepth int
}

func (o *DecodeOptions) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Decode parses a JSON document into a Value, keeping object keys in document
// order. Empty input decodes to KindOther without error. Duplicate keys keep
// their first position and the last value.
func Decode(data []byte, opts *DecodeOptions) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Other(), nil
	}
	if !json.Valid(data) {
		return Value{}, &MalformedError{Reason: "invalid JSON"}
	}

	raw, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return Value{}, &MalformedError{Reason: err.Error()}
	}
	return decodeValue(raw, typ, nil, 0, opts.maxDepth())
}

func decodeValue(raw []byte, typ jsonparser.ValueType, path []string, depth, maxDepth int) (Value, error) {
	switch typ {
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(raw)
		if err != nil {
			return Value{}, &MalformedError{Reason: fmt.Sprintf("invalid number %q", raw), Path: path}
		}
		return Number(f), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, &MalformedError{Reason: "invalid string", Path: path}
		}
		return String(s), nil
	case jsonparser.Object:
		return decodeObject(raw, path, depth+1, maxDepth)
	default:
		return Other(), nil
	}
}

func decodeObject(raw []byte, path []string, depth, maxDepth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, TooDeep(path, maxDepth)
	}
	obj := NewObject()
	err := jsonparser.ObjectEach(raw, func(key, val []byte, typ jsonparser.ValueType, _ int) error {
		k := string(key)
		child, err := decodeValue(val, typ, append(slices.Clip(path), k), depth, maxDepth)
		if err != nil {
			return err
		}
		obj.Set(k, child)
		return nil
	})
	if err != nil {
		if _, ok := err.(*MalformedError); ok {
			return Value{}, err
		}
		return Value{}, &MalformedError{Reason: err.Error(), Path: path}
	}
	return ObjectValue(obj), nil
}

// FromAny converts an already-decoded Go value (as produced by
// encoding/json into an any) into a Value. Map keys have no inherent order
// and are sorted. Non-finite numbers and unsupported Go types are malformed.
func FromAny(v any, opts *DecodeOptions) (Value, error) {
	return fromAny(v, nil, 0, opts.maxDepth())
}

func fromAny(v any, path []string, depth, maxDepth int) (Value, error) {
	switch x := v.(type) {
	case nil, bool, []any:
		return Other(), nil
	case string:
		return String(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, &MalformedError{Reason: fmt.Sprintf("invalid number %q", x.String()), Path: path}
		}
		return finite(f, path)
	case float64:
		return finite(x, path)
	case float32:
		return finite(float64(x), path)
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case Value:
		return x, nil
	case map[string]any:
		depth++
		if depth > maxDepth {
			return Value{}, TooDeep(path, maxDepth)
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := NewObject()
		for _, k := range keys {
			child, err := fromAny(x[k], append(slices.Clip(path), k), depth, maxDepth)
			if err != nil {
				return Value{}, err
			}
			obj.Set(k, child)
		}
		return ObjectValue(obj), nil
	default:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return Other(), nil
		}
		return Value{}, &MalformedError{Reason: fmt.Sprintf("unsupported type %T", v), Path: path}
	}
}

func finite(f float64, path []string) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, &MalformedError{Reason: "non-finite number", Path: path}
	}
	return Number(f), nil
}

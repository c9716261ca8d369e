package payload

import (
	"encoding/json"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind classifies a decoded value.
type Kind uint8

const (
	// KindOther covers arrays, booleans, null and anything else without a
	// meaning in analytics payloads.
	KindOther Kind = iota
	KindNumber
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "other"
	}
}

// Value is a node of a decoded payload.
type Value struct {
	kind Kind
	num  float64
	str  string
	obj  *Object
}

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a text value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Other returns a value of KindOther.
func Other() Value { return Value{} }

// ObjectValue wraps an object. A nil object yields an empty one.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Number returns the numeric content and whether v is a number.
func (v Value) Number() (float64, bool) { return v.num, v.kind == KindNumber }

// Text returns the string content and whether v is a string.
func (v Value) Text() (string, bool) { return v.str, v.kind == KindString }

// Object returns the object content and whether v is an object.
func (v Value) Object() (*Object, bool) { return v.obj, v.kind == KindObject }

// MarshalJSON encodes the value back to JSON, keeping key order.
// KindOther encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return json.Marshal(v.str)
	case KindObject:
		return v.obj.m.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// Object is an insertion-ordered mapping from keys to values.
type Object struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, Value]()}
}

// Set stores a value under key. Re-setting an existing key replaces the value
// but keeps the key at its original position. Set returns o for chaining.
func (o *Object) Set(key string, v Value) *Object {
	o.m.Set(key, v)
	return o
}

// Get looks up a key.
func (o *Object) Get(key string) (Value, bool) {
	return o.m.Get(key)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return o.m.Len()
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for k := range o.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates over key/value pairs in document order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

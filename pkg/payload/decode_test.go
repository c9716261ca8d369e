package payload

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesKeyOrder(t *testing.T) {
	v, err := Decode([]byte(`{"zeta":1,"alpha":{"b":2,"a":3},"mid":"x"}`), nil)
	require.NoError(t, err)

	obj, ok := v.Object()
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	alpha, ok := obj.Get("alpha")
	require.True(t, ok)
	inner, ok := alpha.Object()
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, inner.Keys())
}

func TestDecode_Kinds(t *testing.T) {
	v, err := Decode([]byte(`{"n":536963416.6231,"s":"hi","a":[1,2],"b":true,"z":null,"o":{}}`), nil)
	require.NoError(t, err)
	obj, _ := v.Object()

	tests := []struct {
		key  string
		kind Kind
	}{
		{"n", KindNumber},
		{"s", KindString},
		{"a", KindOther},
		{"b", KindOther},
		{"z", KindOther},
		{"o", KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := obj.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.kind, got.Kind())
		})
	}

	n, _ := obj.Get("n")
	f, ok := n.Number()
	require.True(t, ok)
	assert.Equal(t, 536963416.6231, f)
}

func TestDecode_EscapedKeysAndStrings(t *testing.T) {
	v, err := Decode([]byte(`{"café":"line\nbreak"}`), nil)
	require.NoError(t, err)
	obj, _ := v.Object()
	got, ok := obj.Get("café")
	require.True(t, ok)
	s, _ := got.Text()
	assert.Equal(t, "line\nbreak", s)
}

func TestDecode_DuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	v, err := Decode([]byte(`{"a":1,"b":2,"a":3}`), nil)
	require.NoError(t, err)
	obj, _ := v.Object()
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	a, _ := obj.Get("a")
	n, _ := a.Number()
	assert.Equal(t, 3.0, n)
}

func TestDecode_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n"} {
		v, err := Decode([]byte(in), nil)
		require.NoError(t, err)
		assert.Equal(t, KindOther, v.Kind())
	}
}

func TestDecode_Scalars(t *testing.T) {
	v, err := Decode([]byte(`42`), nil)
	require.NoError(t, err)
	assert.Equal(t, KindNumber, v.Kind())

	v, err = Decode([]byte(`"hello"`), nil)
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind())

	v, err = Decode([]byte(`null`), nil)
	require.NoError(t, err)
	assert.Equal(t, KindOther, v.Kind())
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"a":`), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestDecode_DepthCeiling(t *testing.T) {
	doc := strings.Repeat(`{"k":`, 5) + "1" + strings.Repeat("}", 5)

	_, err := Decode([]byte(doc), &DecodeOptions{MaxDepth: 5})
	require.NoError(t, err)

	_, err = Decode([]byte(doc), &DecodeOptions{MaxDepth: 4})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)

	var me *MalformedError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, []string{"k", "k", "k", "k"}, me.Path)
	assert.Contains(t, me.Error(), "nesting exceeds 4 levels")
}

func TestDecode_DefaultDepthCeiling(t *testing.T) {
	doc := strings.Repeat(`{"k":`, DefaultMaxDepth+1) + "1" + strings.Repeat("}", DefaultMaxDepth+1)
	_, err := Decode([]byte(doc), nil)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestValue_MarshalJSONKeepsOrder(t *testing.T) {
	in := `{"z":1,"a":{"y":"t","b":2},"arr":[1,2]}`
	v, err := Decode([]byte(in), nil)
	require.NoError(t, err)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"y":"t","b":2},"arr":null}`, string(out))
}

func TestFromAny(t *testing.T) {
	var decoded any
	require.NoError(t, json.Unmarshal([]byte(`{"b":{"y":2,"x":1},"a":"t","c":[1],"d":false}`), &decoded))

	v, err := FromAny(decoded, nil)
	require.NoError(t, err)
	obj, _ := v.Object()
	assert.Equal(t, []string{"a", "b", "c", "d"}, obj.Keys())

	b, _ := obj.Get("b")
	bo, _ := b.Object()
	assert.Equal(t, []string{"x", "y"}, bo.Keys())

	c, _ := obj.Get("c")
	assert.Equal(t, KindOther, c.Kind())
}

func TestFromAny_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"nan", map[string]any{"x": math.NaN()}},
		{"inf", map[string]any{"x": math.Inf(1)}},
		{"unsupported type", map[string]any{"x": struct{}{}}},
		{"bad json number", map[string]any{"x": json.Number("abc")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromAny(tt.in, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestFromAny_CyclicMapHitsDepthCeiling(t *testing.T) {
	m := map[string]any{}
	m["self"] = m
	_, err := FromAny(m, &DecodeOptions{MaxDepth: 8})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestObject_Chaining(t *testing.T) {
	obj := NewObject().Set("b", Number(1)).Set("a", String("x"))
	assert.Equal(t, 2, obj.Len())
	assert.Equal(t, []string{"b", "a"}, obj.Keys())

	var nilObj *Object
	assert.Equal(t, 0, nilObj.Len())
	assert.Empty(t, nilObj.Keys())
}

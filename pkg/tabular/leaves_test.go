package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/salesdash-mcp/pkg/payload"
)

func TestCollectLeaves(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []Leaf
	}{
		{
			name: "single numeric object collapses",
			doc:  `{"A":{"B":{"C":5}}}`,
			want: []Leaf{{Path: []string{"A", "B", "C"}, Value: 5}},
		},
		{
			name: "multi key object recurses",
			doc:  `{"A":{"x":1,"y":2}}`,
			want: []Leaf{
				{Path: []string{"A", "x"}, Value: 1},
				{Path: []string{"A", "y"}, Value: 2},
			},
		},
		{
			name: "top level numbers",
			doc:  `{"JAN":1,"FEB":2}`,
			want: []Leaf{
				{Path: []string{"JAN"}, Value: 1},
				{Path: []string{"FEB"}, Value: 2},
			},
		},
		{
			name: "strings and arrays ignored",
			doc:  `{"a":"x","b":[1,2],"c":true,"d":null,"e":{"f":"y"},"g":3}`,
			want: []Leaf{{Path: []string{"g"}, Value: 3}},
		},
		{
			name: "single string key not collapsed",
			doc:  `{"A":{"B":"text"}}`,
			want: nil,
		},
		{
			name: "single object key recurses",
			doc:  `{"A":{"B":{"C":1,"D":2}}}`,
			want: []Leaf{
				{Path: []string{"A", "B", "C"}, Value: 1},
				{Path: []string{"A", "B", "D"}, Value: 2},
			},
		},
		{
			name: "empty object",
			doc:  `{}`,
			want: nil,
		},
		{
			name: "document order kept",
			doc:  `{"z":{"b":1,"a":2},"m":3}`,
			want: []Leaf{
				{Path: []string{"z", "b"}, Value: 1},
				{Path: []string{"z", "a"}, Value: 2},
				{Path: []string{"m"}, Value: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaves, err := CollectLeaves(decode(t, tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, leaves)
		})
	}
}

func TestCollectLeaves_NonObject(t *testing.T) {
	for _, v := range []payload.Value{payload.Number(3), payload.String("x"), payload.Other()} {
		leaves, err := CollectLeaves(v)
		require.NoError(t, err)
		assert.Empty(t, leaves)
	}
}

func TestCollectLeaves_PathsDoNotAlias(t *testing.T) {
	leaves, err := CollectLeaves(decode(t, `{"A":{"x":1,"y":2,"z":3}}`))
	require.NoError(t, err)
	require.Len(t, leaves, 3)

	leaves[0].Path[0] = "mutated"
	assert.Equal(t, "A", leaves[1].Path[0])
	assert.Equal(t, "A", leaves[2].Path[0])
}

func TestCollectLeaves_DepthCeiling(t *testing.T) {
	obj := payload.NewObject().Set("leaf", payload.Number(1)).Set("other", payload.Number(2))
	root := payload.ObjectValue(obj)
	for range 10 {
		root = payload.ObjectValue(payload.NewObject().Set("k", root))
	}

	_, err := CollectLeavesWithOptions(root, &Options{MaxDepth: 11})
	require.NoError(t, err)

	_, err = CollectLeavesWithOptions(root, &Options{MaxDepth: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, payload.ErrMalformed)
	var me *payload.MalformedError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, strings.Split(strings.Repeat("k,", 10), ",")[:10], me.Path)
}

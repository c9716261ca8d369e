package tabular

import (
	"github.com/usestring/salesdash-mcp/pkg/payload"
)

// Options controls leaf collection.
type Options struct {
	// MaxDepth bounds object nesting while walking. Zero or negative means
	// payload.DefaultMaxDepth.
	MaxDepth int
}

// DefaultOptions returns the default walking options.
func DefaultOptions() *Options {
	return &Options{MaxDepth: payload.DefaultMaxDepth}
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return payload.DefaultMaxDepth
	}
	return o.MaxDepth
}

// CollectLeaves returns the numeric leaves of v in document order.
//
// An object holding exactly one key whose value is a number is collapsed:
// its key becomes the last path segment and its number the leaf value.
// Strings, arrays and other scalars are ignored. A non-object v yields no
// leaves. Nesting past the depth ceiling is reported as a
// *payload.MalformedError.
func CollectLeaves(v payload.Value) ([]Leaf, error) {
	return CollectLeavesWithOptions(v, nil)
}

// CollectLeavesWithOptions is CollectLeaves with explicit options.
func CollectLeavesWithOptions(v payload.Value, opts *Options) ([]Leaf, error) {
	obj, ok := v.Object()
	if !ok {
		return nil, nil
	}
	var leaves []Leaf
	if err := collect(obj, nil, 1, opts.maxDepth(), &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

func collect(obj *payload.Object, path []string, depth, maxDepth int, out *[]Leaf) error {
	if depth > maxDepth {
		return payload.TooDeep(path, maxDepth)
	}
	for key, val := range obj.All() {
		switch val.Kind() {
		case payload.KindNumber:
			n, _ := val.Number()
			*out = append(*out, Leaf{Path: extend(path, key), Value: n})
		case payload.KindObject:
			child, _ := val.Object()
			if inner, n, ok := singleNumber(child); ok {
				*out = append(*out, Leaf{Path: extend(path, key, inner), Value: n})
				continue
			}
			if err := collect(child, extend(path, key), depth+1, maxDepth, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// singleNumber reports whether obj has exactly one key and that key holds a
// number.
func singleNumber(obj *payload.Object) (string, float64, bool) {
	if obj.Len() != 1 {
		return "", 0, false
	}
	for k, v := range obj.All() {
		if n, ok := v.Number(); ok {
			return k, n, true
		}
	}
	return "", 0, false
}

// extend returns a fresh slice so sibling leaves never share backing arrays.
func extend(path []string, keys ...string) []string {
	p := make([]string, 0, len(path)+len(keys))
	p = append(p, path...)
	return append(p, keys...)
}

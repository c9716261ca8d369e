// Package rowindex provides bitmap indexes over materialized rows so tools
// can filter rows by dimension labels.
package rowindex

import (
	"fmt"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// Index maps (column, label) pairs to the rows carrying them. Label matching
// is case-insensitive.
type Index struct {
	rows    []tabular.Row
	columns []string
	// postings[column][lower(label)] = row positions
	postings map[string]map[string]*roaring.Bitmap
	labels   map[string][]string
}

// New indexes every dimension column of pd.
func New(pd tabular.ParsedData) *Index {
	idx := &Index{
		rows:     pd.Rows,
		postings: make(map[string]map[string]*roaring.Bitmap),
		labels:   make(map[string][]string),
	}
	for _, h := range pd.Headers {
		if h != tabular.ValueColumn {
			idx.columns = append(idx.columns, h)
			idx.postings[h] = make(map[string]*roaring.Bitmap)
		}
	}

	for pos, row := range pd.Rows {
		for i, col := range idx.columns {
			if i >= len(row.Dimensions) {
				break
			}
			label := row.Dimensions[i]
			key := strings.ToLower(label)
			bm, ok := idx.postings[col][key]
			if !ok {
				bm = roaring.New()
				idx.postings[col][key] = bm
				idx.labels[col] = append(idx.labels[col], label)
			}
			bm.Add(uint32(pos))
		}
	}
	for _, labels := range idx.labels {
		slices.Sort(labels)
	}
	return idx
}

// Len returns the number of indexed rows.
func (x *Index) Len() int { return len(x.rows) }

// Columns returns the filterable dimension columns in header order.
func (x *Index) Columns() []string { return x.columns }

// Values returns the distinct labels of a column, sorted.
func (x *Index) Values(column string) ([]string, error) {
	if _, ok := x.postings[column]; !ok {
		return nil, x.unknown(column)
	}
	return slices.Clone(x.labels[column]), nil
}

// Filter returns rows matching every column filter, in row order. Within a
// column any of the given labels matches. No filters returns all rows.
func (x *Index) Filter(filters map[string][]string) ([]tabular.Row, error) {
	bm, err := x.match(filters)
	if err != nil {
		return nil, err
	}
	if bm == nil {
		return slices.Clone(x.rows), nil
	}
	out := make([]tabular.Row, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, x.rows[it.Next()])
	}
	return out, nil
}

// Count returns how many rows match filters.
func (x *Index) Count(filters map[string][]string) (int, error) {
	bm, err := x.match(filters)
	if err != nil {
		return 0, err
	}
	if bm == nil {
		return len(x.rows), nil
	}
	return int(bm.GetCardinality()), nil
}

// match returns nil when no filter applies.
func (x *Index) match(filters map[string][]string) (*roaring.Bitmap, error) {
	cols := make([]string, 0, len(filters))
	for col, labels := range filters {
		if len(labels) > 0 {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return nil, nil
	}
	slices.Sort(cols)

	var result *roaring.Bitmap
	for _, col := range cols {
		posting, ok := x.postings[col]
		if !ok {
			return nil, x.unknown(col)
		}
		union := roaring.New()
		for _, label := range filters[col] {
			if bm, ok := posting[strings.ToLower(label)]; ok {
				union.Or(bm)
			}
		}
		if result == nil {
			result = union
		} else {
			result = roaring.And(result, union)
		}
		if result.IsEmpty() {
			return result, nil
		}
	}
	return result, nil
}

func (x *Index) unknown(column string) error {
	return fmt.Errorf("unknown column %q (filterable: %s)", column, strings.Join(x.columns, ", "))
}

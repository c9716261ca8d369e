package tabular

import (
	"bytes"
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Well-known column names and cell texts.
const (
	PeriodColumn    = "Period"
	ValueColumn     = "Value (USD)"
	Placeholder     = "—"
	MetricSeparator = " > "
)

// Leaf is a numeric value together with the key path leading to it.
type Leaf struct {
	Path  []string `json:"path"`
	Value float64  `json:"value"`
}

// Depth returns the number of path segments.
func (l Leaf) Depth() int { return len(l.Path) }

// Convention names the column layout a schema was inferred with.
type Convention string

const (
	ConventionNone     Convention = "none"
	ConventionEight    Convention = "eight"
	ConventionSeven    Convention = "seven"
	ConventionRegional Convention = "regional"
	ConventionGeneric  Convention = "generic"
)

// Role tells whether a column holds a dimension label or the numeric value.
type Role uint8

const (
	RoleDimension Role = iota
	RoleValue
)

func (r Role) String() string {
	if r == RoleValue {
		return "value"
	}
	return "dimension"
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	switch string(b) {
	case "value":
		*r = RoleValue
	case "dimension":
		*r = RoleDimension
	default:
		return fmt.Errorf("unknown column role %q", b)
	}
	return nil
}

// Column describes one output column. Segments lists the leaf path indices
// whose labels form a dimension cell, joined with MetricSeparator.
type Column struct {
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Segments []int  `json:"segments,omitempty"`
}

// Schema is an ordered column layout for leaves of exactly Depth segments.
// The value column is always last.
type Schema struct {
	Convention Convention `json:"convention"`
	Depth      int        `json:"depth"`
	Columns    []Column   `json:"columns,omitempty"`
}

// IsEmpty reports whether the schema has no columns.
func (s Schema) IsEmpty() bool { return len(s.Columns) == 0 }

// Headers returns the column names in order.
func (s Schema) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		headers[i] = c.Name
	}
	return headers
}

// Row is one materialized leaf. Dimensions align with Columns minus the
// trailing value column.
type Row struct {
	Columns    []string `json:"-"`
	Dimensions []string `json:"-"`
	Value      float64  `json:"-"`
}

// Dimension returns the label in the named dimension column.
func (r Row) Dimension(column string) (string, bool) {
	i := slices.Index(r.Columns, column)
	if i < 0 || i >= len(r.Dimensions) {
		return "", false
	}
	return r.Dimensions[i], true
}

// Get returns the cell under column: a string for dimensions, a float64 for
// the value column.
func (r Row) Get(column string) (any, bool) {
	if column == ValueColumn {
		return r.Value, slices.Contains(r.Columns, ValueColumn)
	}
	return r.Dimension(column)
}

// Cells returns the row as strings in column order, with the value formatted
// by format.
func (r Row) Cells(format func(float64) string) []string {
	cells := make([]string, 0, len(r.Dimensions)+1)
	cells = append(cells, r.Dimensions...)
	return append(cells, format(r.Value))
}

// MarshalJSON encodes the row as an object whose keys follow column order.
// Cell text is written as is, so metric paths keep their literal " > ".
func (r Row) MarshalJSON() ([]byte, error) {
	m := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(r.Columns)))
	for i, name := range r.Columns {
		var cell any = Placeholder
		if name == ValueColumn {
			cell = r.Value
		} else if i < len(r.Dimensions) {
			cell = r.Dimensions[i]
		}
		m.Set(name, cell)
	}
	b, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return unescapeHTML(b), nil
}

// unescapeHTML reverts the \u003c, \u003e and \u0026 escapes encoding/json
// applies inside strings. Other escapes are copied through untouched.
func unescapeHTML(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u00`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '\\' || i+1 >= len(b) {
			out = append(out, c)
			continue
		}
		if b[i+1] == 'u' && i+5 < len(b) {
			switch string(b[i+2 : i+6]) {
			case "003c":
				out = append(out, '<')
				i += 5
				continue
			case "003e":
				out = append(out, '>')
				i += 5
				continue
			case "0026":
				out = append(out, '&')
				i += 5
				continue
			}
		}
		out = append(out, c, b[i+1])
		i++
	}
	return out
}

// ParsedData is the tabular result of materializing a payload.
type ParsedData struct {
	Rows       []Row      `json:"rows"`
	Headers    []string   `json:"headers"`
	HasData    bool       `json:"hasData"`
	Convention Convention `json:"convention"`
	// Dropped counts leaves whose path length did not match the schema.
	Dropped int `json:"dropped"`
}

// Empty returns a ParsedData with no rows and no headers.
func Empty() ParsedData {
	return ParsedData{
		Rows:       []Row{},
		Headers:    []string{},
		Convention: ConventionNone,
	}
}

// ChartPoint is a (category, value) pair for charting.
type ChartPoint struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// Package export serializes materialized rows for download.
package export

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ErrNoData is returned when there are no rows to export.
var ErrNoData = errors.New("no data to export")

// ParseFormat validates a format name, defaulting to CSV when empty.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatXML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Filename returns a timestamped file name for an export.
func Filename(f Format, at time.Time) string {
	return fmt.Sprintf("salesdash_export_%s.%s", at.UTC().Format("20060102T150405"), f)
}

// Write serializes pd in the given format.
func Write(w io.Writer, f Format, pd tabular.ParsedData) error {
	switch f {
	case FormatCSV:
		return CSV(w, pd)
	case FormatJSON:
		return JSON(w, pd)
	case FormatXML:
		return XML(w, pd)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// CSV writes a header line followed by one line per row. Dimension cells are
// always quoted; the value is written in full precision.
func CSV(w io.Writer, pd tabular.ParsedData) error {
	if !pd.HasData {
		return ErrNoData
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(pd.Headers, ","))
	sb.WriteByte('\n')
	for _, row := range pd.Rows {
		for _, cell := range row.Dimensions {
			sb.WriteString(quote(cell))
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(row.Value, 'f', -1, 64))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// JSON writes the rows as an indented array of column-ordered objects.
// Cell text is not HTML-escaped.
func JSON(w io.Writer, pd tabular.ParsedData) error {
	if !pd.HasData {
		return ErrNoData
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(pd.Rows)
}

type xmlRows struct {
	XMLName xml.Name `xml:"rows"`
	Rows    []xmlRow `xml:"row"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"cell"`
	Value string    `xml:"value"`
}

type xmlCell struct {
	Column string `xml:"column,attr"`
	Text   string `xml:",chardata"`
}

// XML writes the rows as <rows><row><cell column="...">...</cell><value>...</value></row></rows>.
func XML(w io.Writer, pd tabular.ParsedData) error {
	if !pd.HasData {
		return ErrNoData
	}
	doc := xmlRows{Rows: make([]xmlRow, 0, len(pd.Rows))}
	for _, row := range pd.Rows {
		xr := xmlRow{Value: strconv.FormatFloat(row.Value, 'f', -1, 64)}
		for i, cell := range row.Dimensions {
			xr.Cells = append(xr.Cells, xmlCell{Column: pd.Headers[i], Text: cell})
		}
		doc.Rows = append(doc.Rows, xr)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

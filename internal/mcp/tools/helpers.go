// Package tools contains MCP tool implementations for salesdash.
package tools

import (
	"fmt"

	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// MIME type constants.
const (
	MimeJSON = "application/json"
	MimeText = "text/plain"
	MimeHTML = "text/html"
	MimeCSV  = "text/csv"
	MimeXML  = "application/xml"
)

// PayloadURITemplate is the resource template for stored payloads.
const PayloadURITemplate = "salesdash://payload/{id}"

// PayloadURI returns the resource URI of a stored payload.
func PayloadURI(id string) string {
	return fmt.Sprintf("salesdash://payload/%s", id)
}

// mimeType maps a table or export format name to its MIME type.
func mimeType(format string) string {
	switch format {
	case "html":
		return MimeHTML
	case "csv":
		return MimeCSV
	case "json":
		return MimeJSON
	case "xml":
		return MimeXML
	default:
		return MimeText
	}
}

// rowCells returns a row's cells in header order: labels for dimensions and
// the number for the value column.
func rowCells(headers []string, row tabular.Row) []any {
	cells := make([]any, len(headers))
	for i, h := range headers {
		v, ok := row.Get(h)
		if !ok {
			v = tabular.Placeholder
		}
		cells[i] = v
	}
	return cells
}

// page applies offset and limit to rows.
func page(rows []tabular.Row, offset, limit int) []tabular.Row {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func tableRows(headers []string, rows []tabular.Row) [][]any {
	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = rowCells(headers, r)
	}
	return out
}

package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// NoDataMessage is shown in place of a table without rows.
const NoDataMessage = "No data available"

// Table is a display-ready grid: sorted rows, formatted values.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// BuildTable sorts rows per tabular.SortRows and formats the value column as
// currency.
func BuildTable(pd tabular.ParsedData) Table {
	t := Table{Headers: pd.Headers, Rows: make([][]string, 0, len(pd.Rows))}
	for _, row := range tabular.SortRows(pd.Rows) {
		t.Rows = append(t.Rows, row.Cells(FormatCurrency))
	}
	return t
}

// Empty reports whether the table has nothing to show.
func (t Table) Empty() bool {
	return len(t.Headers) == 0 || len(t.Rows) == 0
}

// Text writes pd as an aligned plain-text table.
func Text(w io.Writer, pd tabular.ParsedData) error {
	t := BuildTable(pd)
	if !pd.HasData || t.Empty() {
		_, err := fmt.Fprintln(w, NoDataMessage)
		return err
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Headers)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	align := make([]int, len(t.Headers))
	for i := range align {
		align[i] = tablewriter.ALIGN_LEFT
	}
	align[len(align)-1] = tablewriter.ALIGN_RIGHT
	tw.SetColumnAlignment(align)
	tw.AppendBulk(t.Rows)
	tw.Render()
	return nil
}

var htmlTemplate = template.Must(template.New("table").Parse(
	`{{if .NoData}}<div class="no-data">{{.Message}}</div>
{{else}}<table class="data-table">
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range $i, $c := .}}<td{{if eq $i $.Last}} class="value"{{end}}>{{$c}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{end}}`))

// HTML writes pd as table markup. Cell text is escaped.
func HTML(w io.Writer, pd tabular.ParsedData) error {
	t := BuildTable(pd)
	return htmlTemplate.Execute(w, struct {
		Table
		NoData  bool
		Message string
		Last    int
	}{
		Table:   t,
		NoData:  !pd.HasData || t.Empty(),
		Message: NoDataMessage,
		Last:    len(t.Headers) - 1,
	})
}

// String renders pd with Text and returns the result.
func String(pd tabular.ParsedData) string {
	var sb strings.Builder
	_ = Text(&sb, pd)
	return sb.String()
}

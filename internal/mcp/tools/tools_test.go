package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/salesdash-mcp/pkg/tabular"
	"github.com/usestring/salesdash-mcp/pkg/types"
)

func parseSales(t *testing.T, d *Deps) types.TableOutput {
	t.Helper()
	_, out, err := ToolParsePayload(d)(context.Background(), nil, types.ParsePayloadInput{Payload: salesPayload})
	require.NoError(t, err)
	return out
}

func TestToolParsePayload(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	out := parseSales(t, d)

	assert.NotEmpty(t, out.PayloadID)
	assert.True(t, out.HasData)
	assert.Equal(t, "seven", out.Convention)
	assert.Equal(t, []string{"Channel", "Year", "Scenario", "Period", "Metric", "Profit Center", "Cluster", tabular.ValueColumn}, out.Headers)
	assert.Equal(t, 3, out.Total)
	require.Len(t, out.Rows, 3)
	assert.Equal(t, []any{"RETAIL", "FY25", "ACTUALS", "JAN", "NET REVENUE", "PC1", "EU", 100.0}, out.Rows[0])
}

func TestToolParsePayload_Errors(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	tool := ToolParsePayload(d)

	_, _, err := tool(context.Background(), nil, types.ParsePayloadInput{})
	requireCode(t, err, ErrCodeInvalidInput)

	_, _, err = tool(context.Background(), nil, types.ParsePayloadInput{Payload: `{"a":`})
	requireCode(t, err, ErrCodeMalformedPayload)
	assert.Zero(t, d.Payloads.Len())
}

func TestToolParsePayload_NoData(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	_, out, err := ToolParsePayload(d)(context.Background(), nil, types.ParsePayloadInput{Payload: `{"response":"Hello"}`})
	require.NoError(t, err)
	assert.False(t, out.HasData)
	assert.Empty(t, out.Headers)
	assert.Empty(t, out.Rows)
	assert.NotEmpty(t, out.Hint)
}

func TestToolGetRows(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	id := parseSales(t, d).PayloadID
	tool := ToolGetRows(d)

	tests := []struct {
		name      string
		input     types.GetRowsInput
		periods   []any
		total     int
		truncated bool
	}{
		{
			name:    "all rows in payload order",
			input:   types.GetRowsInput{PayloadID: id},
			periods: []any{"JAN", "FEB", "JAN"},
			total:   3,
		},
		{
			name:    "sorted",
			input:   types.GetRowsInput{PayloadID: id, Sort: true},
			periods: []any{"JAN", "FEB", "JAN"},
			total:   3,
		},
		{
			name:    "filtered case-insensitively",
			input:   types.GetRowsInput{PayloadID: id, Filters: map[string][]string{"Channel": {"retail"}}},
			periods: []any{"JAN", "FEB"},
			total:   2,
		},
		{
			name:      "paged",
			input:     types.GetRowsInput{PayloadID: id, Offset: 1, Limit: 1},
			periods:   []any{"FEB"},
			total:     3,
			truncated: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := tool(context.Background(), nil, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.total, out.Total)
			assert.Equal(t, tt.truncated, out.Truncated)
			periods := make([]any, len(out.Rows))
			for i, r := range out.Rows {
				periods[i] = r[3]
			}
			assert.Equal(t, tt.periods, periods)
		})
	}

	t.Run("sort orders channels", func(t *testing.T) {
		_, out, err := tool(context.Background(), nil, types.GetRowsInput{PayloadID: id, Sort: true})
		require.NoError(t, err)
		assert.Equal(t, "ONLINE", out.Rows[0][0])
		assert.Equal(t, "FEB", out.Rows[1][3])
	})

	t.Run("errors", func(t *testing.T) {
		_, _, err := tool(context.Background(), nil, types.GetRowsInput{PayloadID: "pl_missing"})
		requireCode(t, err, ErrCodeNotFound)
		_, _, err = tool(context.Background(), nil, types.GetRowsInput{PayloadID: id, Filters: map[string][]string{"Region": {"EU"}}})
		requireCode(t, err, ErrCodeInvalidInput)
		_, _, err = tool(context.Background(), nil, types.GetRowsInput{PayloadID: id, Offset: -1})
		requireCode(t, err, ErrCodeInvalidInput)
	})
}

func TestToolGetRows_CountOnly(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	id := parseSales(t, d).PayloadID
	tool := ToolGetRows(d)

	tests := []struct {
		name     string
		filters  map[string][]string
		total    int
		wantHint bool
	}{
		{name: "no filters", total: 3},
		{name: "one column", filters: map[string][]string{"Channel": {"RETAIL"}}, total: 2},
		{name: "columns are ANDed", filters: map[string][]string{"Channel": {"retail"}, "Period": {"JAN"}}, total: 1},
		{name: "labels are ORed", filters: map[string][]string{"Channel": {"RETAIL", "ONLINE"}}, total: 3},
		{name: "no match", filters: map[string][]string{"Period": {"DEC"}}, total: 0, wantHint: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := tool(context.Background(), nil, types.GetRowsInput{PayloadID: id, Filters: tt.filters, CountOnly: true})
			require.NoError(t, err)
			assert.Equal(t, tt.total, out.Total)
			assert.Zero(t, out.Returned)
			assert.Empty(t, out.Rows)
			assert.False(t, out.Truncated)
			assert.NotEmpty(t, out.Headers)
			assert.Equal(t, tt.wantHint, out.Hint != "")

			_, rows, err := tool(context.Background(), nil, types.GetRowsInput{PayloadID: id, Filters: tt.filters})
			require.NoError(t, err)
			assert.Equal(t, rows.Total, out.Total, "count agrees with the filtered rows")
		})
	}

	t.Run("unknown column", func(t *testing.T) {
		_, _, err := tool(context.Background(), nil, types.GetRowsInput{PayloadID: id, Filters: map[string][]string{"Region": {"EU"}}, CountOnly: true})
		requireCode(t, err, ErrCodeInvalidInput)
	})
}

func TestToolChart(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	id := parseSales(t, d).PayloadID

	_, out, err := ToolChart(d)(context.Background(), nil, types.ChartInput{PayloadID: id})
	require.NoError(t, err)
	assert.Len(t, out.Points, 3)
	require.Len(t, out.Totals, 2)
	assert.Equal(t, "FEB", out.Totals[0].Category)
	assert.Equal(t, 200.0, out.Totals[0].Value)
	assert.Equal(t, "JAN", out.Totals[1].Category)
	assert.Equal(t, 150.0, out.Totals[1].Value)
	assert.Equal(t, 350.0, out.Summary.Total)

	_, grouped, err := ToolChart(d)(context.Background(), nil, types.ChartInput{PayloadID: id, Grouped: true})
	require.NoError(t, err)
	assert.Empty(t, grouped.Points)
	assert.Len(t, grouped.Totals, 2)
}

func TestToolChart_NoPeriod(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	_, parsed, err := ToolParsePayload(d)(context.Background(), nil, types.ParsePayloadInput{Payload: `{"response":"Hello"}`})
	require.NoError(t, err)

	_, out, err := ToolChart(d)(context.Background(), nil, types.ChartInput{PayloadID: parsed.PayloadID})
	require.NoError(t, err)
	assert.Empty(t, out.Points)
	assert.Empty(t, out.Totals)
	assert.NotEmpty(t, out.Hint)
}

func TestToolRenderTable(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	id := parseSales(t, d).PayloadID
	tool := ToolRenderTable(d)

	_, text, err := tool(context.Background(), nil, types.RenderTableInput{PayloadID: id})
	require.NoError(t, err)
	assert.Equal(t, "text", text.Format)
	assert.Equal(t, MimeText, text.MIMEType)
	assert.Contains(t, text.Table, "$200.00")

	_, html, err := tool(context.Background(), nil, types.RenderTableInput{PayloadID: id, Format: "HTML"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(html.Table, "<table"))

	_, _, err = tool(context.Background(), nil, types.RenderTableInput{PayloadID: id, Format: "pdf"})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestToolExport(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	id := parseSales(t, d).PayloadID
	tool := ToolExport(d)

	_, out, err := tool(context.Background(), nil, types.ExportInput{PayloadID: id})
	require.NoError(t, err)
	assert.Equal(t, "csv", out.Format)
	assert.Equal(t, MimeCSV, out.MIMEType)
	assert.True(t, strings.HasSuffix(out.Filename, ".csv"))
	lines := strings.Split(strings.TrimSpace(out.Content), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"RETAIL","FY25","ACTUALS","FEB","NET REVENUE","PC1","EU",200`, lines[2])

	_, _, err = tool(context.Background(), nil, types.ExportInput{PayloadID: id, Format: "xlsx"})
	requireCode(t, err, ErrCodeInvalidInput)

	_, empty, err := ToolParsePayload(d)(context.Background(), nil, types.ParsePayloadInput{Payload: `{}`})
	require.NoError(t, err)
	_, _, err = tool(context.Background(), nil, types.ExportInput{PayloadID: empty.PayloadID, Format: "json"})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestToolQueryPayload(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	id := parseSales(t, d).PayloadID
	tool := ToolQueryPayload(d)

	_, out, err := tool(context.Background(), nil, types.QueryPayloadInput{
		PayloadIDs: []string{id},
		Expression: "keys",
	})
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{"ONLINE", "RETAIL"}}, out.Values)

	_, rows, err := tool(context.Background(), nil, types.QueryPayloadInput{
		PayloadIDs:  []string{id},
		Expression:  `.[] | .Period`,
		Target:      "rows",
		Deduplicate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"JAN", "FEB"}, rows.Values)
	assert.Equal(t, 3, rows.RawCount)
	assert.Equal(t, []string{id}, rows.Matched)

	tests := []struct {
		name  string
		input types.QueryPayloadInput
		code  string
	}{
		{"missing expression", types.QueryPayloadInput{PayloadIDs: []string{id}}, ErrCodeInvalidInput},
		{"missing ids", types.QueryPayloadInput{Expression: "."}, ErrCodeInvalidInput},
		{"bad target", types.QueryPayloadInput{PayloadIDs: []string{id}, Expression: ".", Target: "table"}, ErrCodeInvalidInput},
		{"bad expression", types.QueryPayloadInput{PayloadIDs: []string{id}, Expression: ".["}, ErrCodeInvalidInput},
		{"unknown payload", types.QueryPayloadInput{PayloadIDs: []string{"pl_x"}, Expression: "."}, ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tool(context.Background(), nil, tt.input)
			requireCode(t, err, tt.code)
		})
	}
}

func TestToolDescribePayload(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	id := parseSales(t, d).PayloadID

	_, out, err := ToolDescribePayload(d)(context.Background(), nil, types.DescribePayloadInput{PayloadID: id})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Description.LeafCount)
	assert.Equal(t, tabular.ConventionSeven, out.Description.Convention)
	require.Len(t, out.Columns, 7)
	assert.Equal(t, types.ColumnValues{Column: "Channel", Values: []string{"ONLINE", "RETAIL"}}, out.Columns[0])
	assert.Equal(t, types.ColumnValues{Column: "Period", Values: []string{"FEB", "JAN"}}, out.Columns[3])
}

func TestToolDashboard(t *testing.T) {
	d, backend := newTestDeps(t, map[string]string{
		"tab one": salesPayload,
		"tab two": `{"response":"nothing"}`,
	})
	tool := ToolDashboard(d)

	_, out, err := tool(context.Background(), nil, types.DashboardInput{
		Account: "EBIT",
		Questions: []types.TabQuestion{
			{Text: "First", TabInformation: "tab one"},
			{ID: "two", Text: "tab two"},
			{Text: "Third", TabInformation: "tab three"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "EBIT", out.Account)
	require.Len(t, out.Tabs, 3)

	assert.Equal(t, "tab-1", out.Tabs[0].ID)
	assert.True(t, out.Tabs[0].HasData)
	assert.Equal(t, 3, out.Tabs[0].RowCount)
	assert.NotEmpty(t, out.Tabs[0].PayloadID)
	assert.Empty(t, out.Tabs[0].Error)

	assert.Equal(t, "two", out.Tabs[1].ID)
	assert.False(t, out.Tabs[1].HasData)
	assert.Empty(t, out.Tabs[1].Error)

	assert.False(t, out.Tabs[2].HasData)
	assert.Contains(t, out.Tabs[2].Error, ErrCodeBackendError)

	assert.ElementsMatch(t, []string{"tab one", "tab two", "tab three"}, backend.asked)
}

func TestToolDashboard_DefaultQuestions(t *testing.T) {
	d, backend := newTestDeps(t, nil)

	_, out, err := ToolDashboard(d)(context.Background(), nil, types.DashboardInput{Account: "SG&A"})
	require.NoError(t, err)
	require.Len(t, out.Tabs, 3)
	assert.Equal(t, "default-SG&A-1", out.Tabs[0].ID)
	assert.Len(t, backend.asked, 3)
}

func TestToolDashboard_InvalidQuestion(t *testing.T) {
	d, _ := newTestDeps(t, nil)
	_, _, err := ToolDashboard(d)(context.Background(), nil, types.DashboardInput{
		Questions: []types.TabQuestion{{Text: " "}},
	})
	requireCode(t, err, ErrCodeInvalidInput)
}

func TestToolClearConversation(t *testing.T) {
	d, _ := newTestDeps(t, map[string]string{"q": `{"A":{"JAN":1}}`})
	_, _, err := ToolAsk(d)(context.Background(), nil, types.AskInput{Question: "q"})
	require.NoError(t, err)

	_, out, err := ToolClearConversation(d)(context.Background(), nil, types.ClearConversationInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, out.Cleared)
	assert.Equal(t, 1, out.CacheCleared)
}

func TestToolAsk(t *testing.T) {
	d, _ := newTestDeps(t, map[string]string{"q": salesPayload})

	_, out, err := ToolAsk(d)(context.Background(), nil, types.AskInput{Question: "q"})
	require.NoError(t, err)
	require.NotNil(t, out.Resource)
	assert.Equal(t, PayloadURI(out.Answer.PayloadID), out.Resource.URI)
	assert.NotEmpty(t, out.Hint)
}

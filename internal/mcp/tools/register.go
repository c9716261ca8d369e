package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: salesdash_ask
	AddTool(srv, &sdkmcp.Tool{
		Name:        "salesdash_ask",
		Description: "Ask the analytics backend a question about an account's figures. Returns {answer: {response, payload_id, has_data, convention, headers, suggested_questions, conversation_id, cached}, resource, hint}. Answers are cached by question for a few minutes; set skip_cache to force a backend call. Continue a thread by passing the same conversation_id. Use payload_id with get_rows, chart, render_table, export, query_payload or describe_payload.",
	}, ToolAsk(d))

	// Tool 2: salesdash_parse_payload
	AddTool(srv, &sdkmcp.Tool{
		Name:        "salesdash_parse_payload",
		Description: "Parse a raw backend output (nested JSON object with numeric leaves) into rows and store it. Returns {payload_id, has_data, convention, headers, rows, total, returned, dropped, hint}. Rows are cell arrays in header order; the last column is always Value (USD). Convention is eight, seven, regional, generic or none. Fails with MALFORMED_PAYLOAD on invalid JSON or excessive nesting.",
	}, ToolParsePayload(d))

	// Tool 3: salesdash_get_rows
	AddTool(srv, &sdkmcp.Tool{
		Name:        "salesdash_get_rows",
		Description: "Get rows of a stored payload with optional filters {column: [labels]} (case-insensitive; labels ORed within a column, columns ANDed), optional table sort (dimension columns left to right), offset and limit. Use describe_payload to list each column's labels.",
	}, ToolGetRows(d))

	// Tool 4: salesdash_chart
	AddTool(srv, &sdkmcp.Tool{
		Name:        "salesdash_chart",
		Description: "Project a stored payload onto chart points {category: Period, value: Value (USD)}, one per row, plus per-category totals with axis labels ($X.XXB / $X.XXM) and a summary {count, total, min, max, mean}. Payloads without a Period column chart nothing.",
	}, ToolChart(d))

	// Tool 5: salesdash_render_table
	AddTool(srv, &sdkmcp.Tool{
		Name:        "salesdash_render_table",
		Description: "Render a stored payload as a sorted table, as aligned text (default) or HTML markup. Values are formatted as currency with two decimals.",
	}, ToolRenderTable(d))

	// Tool 6: salesdash_export
	AddTool(srv, &sdkmcp.Tool{
		Name:        "salesdash_export",
		Description: "Export a stored payload as CSV (default), JSON or XML text with a suggested filename. Values keep full precision.",
	}, ToolExport(d))

	// Tool 7: salesdash_query_payload
	AddTool(srv, &sdkmcp.Tool{
		Name:        "salesdash_query_payload",
		Description: "Run a jq expression over stored payloads. target=payload queries the raw nested output; target=rows queries the materialized rows as an array of objects keyed by header. Returns {values, errors, raw_count, matched, truncated}.",
	}, ToolQueryPayload(d))

	// Tool 8: salesdash_describe_payload
	AddTool(srv, &sdkmcp.Tool{
		Name:        "salesdash_describe_payload",
		Description: "Describe a stored payload's shape: leaf count, path-length histogram, chosen convention and depth, distinct labels per path segment, retained and dropped leaves, and the labels of each dimension column.",
	}, ToolDescribePayload(d))

	// Tool 9: salesdash_dashboard
	AddTool(srv, &sdkmcp.Tool{
		Name:        "salesdash_dashboard",
		Description: "Build dashboard tabs by running up to three questions concurrently (defaults: the account's suggested questions). Each tab reports payload_id, has_data, headers and row_count; a failed tab carries error without failing the others.",
	}, ToolDashboard(d))

	// Tool 10: salesdash_clear_conversation
	AddTool(srv, &sdkmcp.Tool{
		Name:        "salesdash_clear_conversation",
		Description: "Clear one conversation's history (or all when conversation_id is omitted) and empty the response cache.",
	}, ToolClearConversation(d))
}

package types

import (
	"github.com/usestring/salesdash-mcp/pkg/chart"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// AskInput is the input for salesdash_ask.
type AskInput struct {
	Question       string `json:"question" jsonschema:"The question to ask about the account's revenue figures"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"Conversation to continue (default: default)"`
	Account        string `json:"account,omitempty" jsonschema:"Account to ask against (default: configured account)"`
	SkipCache      bool   `json:"skip_cache,omitempty" jsonschema:"Bypass the response cache"`
}

// AskOutput is the output for salesdash_ask.
type AskOutput struct {
	Answer   ChatResponse `json:"answer"`
	Resource *ResourceRef `json:"resource,omitempty"`
	Hint     string       `json:"hint,omitempty"`
}

// ParsePayloadInput is the input for salesdash_parse_payload.
type ParsePayloadInput struct {
	Payload string `json:"payload" jsonschema:"Raw JSON payload as returned in a backend output field"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Max rows to return (default: 50)"`
}

// TableOutput carries rows as cell arrays in header order.
type TableOutput struct {
	PayloadID  string   `json:"payload_id"`
	HasData    bool     `json:"has_data"`
	Convention string   `json:"convention"`
	Headers    []string `json:"headers,omitzero"`
	Rows       [][]any  `json:"rows,omitzero"`
	Total      int      `json:"total"`
	Returned   int      `json:"returned"`
	Dropped    int      `json:"dropped,omitempty"`
	Truncated  bool     `json:"truncated,omitempty"`
	Hint       string   `json:"hint,omitempty"`
}

// GetRowsInput is the input for salesdash_get_rows.
type GetRowsInput struct {
	PayloadID string              `json:"payload_id" jsonschema:"ID returned by salesdash_ask or salesdash_parse_payload"`
	Filters   map[string][]string `json:"filters,omitempty" jsonschema:"Column name to accepted labels; labels within a column are ORed and columns are ANDed"`
	Sort      bool                `json:"sort,omitempty" jsonschema:"Sort rows by dimension labels left to right (default: payload order)"`
	Offset    int                 `json:"offset,omitempty" jsonschema:"Rows to skip"`
	Limit     int                 `json:"limit,omitempty" jsonschema:"Max rows to return (default: 50)"`
	CountOnly bool                `json:"count_only,omitempty" jsonschema:"Only report how many rows match the filters in total; no rows are returned"`
}

// ChartInput is the input for salesdash_chart.
type ChartInput struct {
	PayloadID string `json:"payload_id" jsonschema:"ID of a stored payload"`
	Grouped   bool   `json:"grouped,omitempty" jsonschema:"Only return per-category totals, not individual points"`
}

// ChartOutput is the output for salesdash_chart.
type ChartOutput struct {
	PayloadID string                `json:"payload_id"`
	Points    []tabular.ChartPoint  `json:"points,omitzero"`
	Totals    []chart.CategoryTotal `json:"totals,omitzero"`
	Summary   chart.Summary         `json:"summary"`
	Hint      string                `json:"hint,omitempty"`
}

// RenderTableInput is the input for salesdash_render_table.
type RenderTableInput struct {
	PayloadID string `json:"payload_id" jsonschema:"ID of a stored payload"`
	Format    string `json:"format,omitempty" jsonschema:"text or html (default: text)"`
}

// RenderTableOutput is the output for salesdash_render_table.
type RenderTableOutput struct {
	PayloadID string `json:"payload_id"`
	Format    string `json:"format"`
	MIMEType  string `json:"mime_type"`
	Table     string `json:"table"`
}

// ExportInput is the input for salesdash_export.
type ExportInput struct {
	PayloadID string `json:"payload_id" jsonschema:"ID of a stored payload"`
	Format    string `json:"format,omitempty" jsonschema:"csv, json or xml (default: csv)"`
}

// ExportOutput is the output for salesdash_export.
type ExportOutput struct {
	PayloadID string `json:"payload_id"`
	Format    string `json:"format"`
	MIMEType  string `json:"mime_type"`
	Filename  string `json:"filename"`
	Content   string `json:"content"`
}

// QueryPayloadInput is the input for salesdash_query_payload.
type QueryPayloadInput struct {
	PayloadIDs  []string `json:"payload_ids" jsonschema:"IDs of stored payloads to query"`
	Expression  string   `json:"expression" jsonschema:"jq expression"`
	Target      string   `json:"target,omitempty" jsonschema:"payload (raw output) or rows (materialized rows), default: payload"`
	Deduplicate bool     `json:"deduplicate,omitempty" jsonschema:"Drop repeated values"`
	MaxResults  int      `json:"max_results,omitempty" jsonschema:"Max values to return (default: 1000)"`
}

// QueryPayloadOutput is the output for salesdash_query_payload.
type QueryPayloadOutput struct {
	Values    []any    `json:"values,omitzero"`
	Errors    []string `json:"errors,omitempty"`
	RawCount  int      `json:"raw_count"`
	Matched   []string `json:"matched,omitempty"`
	Truncated bool     `json:"truncated,omitempty"`
}

// DescribePayloadInput is the input for salesdash_describe_payload.
type DescribePayloadInput struct {
	PayloadID string `json:"payload_id" jsonschema:"ID of a stored payload"`
}

// DescribePayloadOutput is the output for salesdash_describe_payload.
type DescribePayloadOutput struct {
	PayloadID   string              `json:"payload_id"`
	Query       string              `json:"query,omitempty"`
	Description tabular.Description `json:"description"`
	Columns     []ColumnValues      `json:"columns,omitzero"`
}

// ColumnValues lists the distinct labels of a dimension column.
type ColumnValues struct {
	Column string   `json:"column"`
	Values []string `json:"values,omitzero"`
}

// DashboardInput is the input for salesdash_dashboard.
type DashboardInput struct {
	Questions []TabQuestion `json:"questions,omitempty" jsonschema:"Questions to build tabs from (default: the account's suggested questions)"`
	Account   string        `json:"account,omitempty" jsonschema:"Account (default: configured account)"`
}

// TabQuestion is a question to build a dashboard tab from.
type TabQuestion struct {
	ID             string `json:"id,omitempty" jsonschema:"Tab ID (default: tab-N)"`
	Text           string `json:"text" jsonschema:"Question shown as the tab label"`
	TabInformation string `json:"tab_information,omitempty" jsonschema:"Query executed for the tab (default: text)"`
}

// DashboardTab is one materialized dashboard tab.
type DashboardTab struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	TabInformation string   `json:"tab_information,omitempty"`
	PayloadID      string   `json:"payload_id,omitempty"`
	HasData        bool     `json:"has_data"`
	Convention     string   `json:"convention,omitempty"`
	Headers        []string `json:"headers,omitzero"`
	RowCount       int      `json:"row_count"`
	Error          string   `json:"error,omitempty"`
}

// DashboardOutput is the output for salesdash_dashboard.
type DashboardOutput struct {
	Account string         `json:"account"`
	Tabs    []DashboardTab `json:"tabs,omitzero"`
}

// ClearConversationInput is the input for salesdash_clear_conversation.
type ClearConversationInput struct {
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"Conversation to clear (default: all conversations)"`
}

// ClearConversationOutput is the output for salesdash_clear_conversation.
type ClearConversationOutput struct {
	Cleared      []string `json:"cleared,omitzero"`
	CacheCleared int      `json:"cache_cleared"`
}

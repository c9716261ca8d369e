package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleExplainPayload guides an explanation of one payload's inferred table.
func HandleExplainPayload(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		id := ""
		if req.Params.Arguments != nil {
			id = strings.TrimSpace(req.Params.Arguments["payload_id"])
		}
		if id == "" {
			return nil, fmt.Errorf("payload_id is required")
		}

		var sb strings.Builder
		sb.WriteString("# Explain Payload\n\n")
		sb.WriteString(fmt.Sprintf("Explain how payload `%s` was read into a table.\n\n", id))

		sb.WriteString("## How tables are inferred\n\n")
		sb.WriteString("- Every numeric leaf becomes one row; its key path becomes the dimension cells\n")
		sb.WriteString("- An object holding a single number (e.g. `{\"GLOBAL\": 123.45}`) counts as one leaf whose key is the last path segment\n")
		sb.WriteString("- Path length picks the columns: 8 segments adds Classification, 7 is the standard layout, 6 is the regional layout\n")
		sb.WriteString("- Other lengths use the generic layout: Channel, then the most varied segment as Period, then the rest joined as Metric\n")
		sb.WriteString("- Leaves at a different length than the chosen one are dropped and counted\n\n")

		sb.WriteString("## Steps\n\n")
		sb.WriteString("```\n")
		sb.WriteString(fmt.Sprintf("salesdash_describe_payload(payload_id=\"%s\")\n", id))
		sb.WriteString(fmt.Sprintf("salesdash_get_rows(payload_id=\"%s\", limit=10)\n", id))
		sb.WriteString(fmt.Sprintf("salesdash_query_payload(payload_ids=[\"%s\"], expression=\"paths(numbers) | length\")\n", id))
		sb.WriteString("```\n\n")

		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("- Convention and depth, with the headers it produced\n")
		sb.WriteString("- Which column charts as the category, and why it was chosen\n")
		sb.WriteString("- How many leaves were dropped and what path lengths they had\n")

		return &sdkmcp.GetPromptResult{
			Description: "Explanation of a payload's table inference",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

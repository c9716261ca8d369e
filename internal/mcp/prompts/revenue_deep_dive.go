package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/internal/suggest"
)

// HandleRevenueDeepDive implements the account analysis workflow.
func HandleRevenueDeepDive(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		account := cfg.Account
		focus := ""
		if args != nil {
			if v := strings.TrimSpace(args["account"]); v != "" {
				account = v
			}
			focus = strings.TrimSpace(args["focus"])
		}
		if account == "" {
			account = suggest.FallbackAccount
		}

		var sb strings.Builder

		// 1. Role
		sb.WriteString("# Revenue Deep Dive\n\n")
		sb.WriteString(fmt.Sprintf("You are a financial analyst reviewing the **%s** account. ", account))
		sb.WriteString("Answers come from an analytics backend as nested JSON; the server turns them into tables with one numeric `Value (USD)` column.\n\n")
		if focus != "" {
			sb.WriteString(fmt.Sprintf("**Focus**: %s\n\n", focus))
		}

		// 2. Context usage
		sb.WriteString("## Context Usage Guide\n\n")
		sb.WriteString("- **Tools** return bounded rows and summaries; prefer them\n")
		sb.WriteString("- **Resources** (`salesdash://payload/{id}`) return every row; only fetch when you need the full table\n\n")

		// 3. Workflow
		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Ask** the question with `salesdash_ask`\n")
		sb.WriteString("   - `has_data: false` means a plain text answer: report it and stop\n")
		sb.WriteString("   - Keep the `payload_id` and `conversation_id` for follow-ups\n\n")
		sb.WriteString("2. **Check the shape** with `salesdash_describe_payload`\n")
		sb.WriteString("   - `convention` tells you which nesting matched (eight, seven, regional, generic)\n")
		sb.WriteString("   - `dropped > 0` means some figures sat at a different depth and are missing from the table\n\n")
		sb.WriteString("3. **Chart by period** with `salesdash_chart`\n")
		sb.WriteString("   - Totals are summed per Period and sorted by label\n\n")
		sb.WriteString("4. **Slice** with `salesdash_get_rows` filters (e.g. one Channel or Scenario)\n\n")
		sb.WriteString(fmt.Sprintf("5. **Broaden** with `salesdash_dashboard` (up to %d tabs from the suggested questions)\n\n", max(cfg.MaxTabs, 1)))

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString(fmt.Sprintf("salesdash_ask(question=\"...\", account=\"%s\")\n", account))
		sb.WriteString("salesdash_describe_payload(payload_id=\"<payload_id>\")\n")
		sb.WriteString("salesdash_chart(payload_id=\"<payload_id>\", grouped=true)\n")
		sb.WriteString("salesdash_get_rows(payload_id=\"<payload_id>\", filters={\"Scenario\": [\"FORECAST\"]}, sort=true)\n")
		sb.WriteString(fmt.Sprintf("salesdash_dashboard(account=\"%s\")\n", account))
		sb.WriteString("```\n\n")

		// 4. Starting questions
		sb.WriteString("## Starting Questions\n\n")
		for _, q := range suggest.Defaults(account) {
			sb.WriteString(fmt.Sprintf("- %s\n", q.Text))
		}
		sb.WriteString("\n")

		// 5. Output format
		sb.WriteString("## Expected Output Format\n\n")
		sb.WriteString("- Headline figure with its period and scenario\n")
		sb.WriteString("- A short table of the largest contributors (from `salesdash_render_table` or rows)\n")
		sb.WriteString("- Notable movements between periods, with amounts in $M or $B as the chart labels show\n")
		sb.WriteString("- Caveats: dropped leaves, generic convention, or text-only answers\n")

		return &sdkmcp.GetPromptResult{
			Description: "Workflow for analyzing an account's revenue figures",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

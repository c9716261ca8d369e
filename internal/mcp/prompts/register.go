package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Revenue deep dive for an account
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "revenue_deep_dive",
		Description: "RECOMMENDED: Investigate an account's figures end to end: ask, inspect the inferred table, chart by period, and follow the dashboard's suggested questions.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "account",
				Description: "Account to analyze (ORGANIC NET REVENUES, SG&A, COST OF GOODS SOLD TOTAL or EBIT)",
				Required:    false,
			},
			{
				Name:        "focus",
				Description: "What to look for (e.g., 'forecast vs plan for Q4', 'which channel is shrinking')",
				Required:    false,
			},
		},
	}, HandleRevenueDeepDive(cfg))

	// Prompt 2: Explain how a payload was turned into rows
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "explain_payload",
		Description: "Explain how a stored payload was read: which nesting convention matched, which column is the chart category, and which leaves were dropped.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "payload_id",
				Description: "ID of a stored payload",
				Required:    true,
			},
		},
	}, HandleExplainPayload(cfg))
}

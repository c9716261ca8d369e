package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/pkg/types"
)

// ToolAsk sends a question to the analytics backend and stores its payload.
func ToolAsk(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.AskInput) (*sdkmcp.CallToolResult, types.AskOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.AskInput) (*sdkmcp.CallToolResult, types.AskOutput, error) {
		resp, err := d.Ask(ctx, AskRequest{
			Question:       input.Question,
			ConversationID: input.ConversationID,
			Account:        input.Account,
			SkipCache:      input.SkipCache,
		})
		if err != nil {
			return nil, types.AskOutput{}, err
		}

		output := types.AskOutput{Answer: *resp}
		switch {
		case resp.PayloadID != "" && resp.HasData:
			output.Resource = &types.ResourceRef{
				URI:  PayloadURI(resp.PayloadID),
				MIME: MimeJSON,
				Hint: "Full rows of the answer",
			}
			output.Hint = "Use salesdash_get_rows, salesdash_chart or salesdash_render_table with payload_id to explore the figures."
		case resp.PayloadID != "":
			output.Hint = "The answer has no numeric data to chart."
		}
		return nil, output, nil
	}
}

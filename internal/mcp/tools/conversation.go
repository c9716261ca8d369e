package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/pkg/types"
)

// ToolClearConversation clears conversation history and the response cache.
func ToolClearConversation(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ClearConversationInput) (*sdkmcp.CallToolResult, types.ClearConversationOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ClearConversationInput) (*sdkmcp.CallToolResult, types.ClearConversationOutput, error) {
		cleared, n := d.ClearConversation(input.ConversationID)
		return nil, types.ClearConversationOutput{
			Cleared:      cleared,
			CacheCleared: n,
		}, nil
	}
}

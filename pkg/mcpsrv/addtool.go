package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/internal/mcp/tools"
)

// AddTool registers a tool with the server, validating that the output type's
// zero value passes the SDK's JSON schema check. Go's json.Marshal writes nil
// slices as null while the SDK infers "type": "array" from the Go type, so a
// bare slice field fails validation on the first empty result.
//
// AddTool also rejects output types holding json.RawMessage or other custom
// marshalers, whose schema the SDK cannot infer.
//
// If the check fails, AddTool panics with a message naming the field to fix.
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}

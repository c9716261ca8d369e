package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/pkg/render"
	"github.com/usestring/salesdash-mcp/pkg/types"
)

// ToolRenderTable renders a stored payload as a sorted text or HTML table.
func ToolRenderTable(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.RenderTableInput) (*sdkmcp.CallToolResult, types.RenderTableOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.RenderTableInput) (*sdkmcp.CallToolResult, types.RenderTableOutput, error) {
		format := strings.ToLower(strings.TrimSpace(input.Format))
		if format == "" {
			format = "text"
		}
		if format != "text" && format != "html" {
			return nil, types.RenderTableOutput{}, ErrInvalidInput("format must be 'text' or 'html'")
		}

		stored, err := d.Payload(input.PayloadID)
		if err != nil {
			return nil, types.RenderTableOutput{}, err
		}

		var b strings.Builder
		if format == "html" {
			err = render.HTML(&b, stored.Parsed)
		} else {
			err = render.Text(&b, stored.Parsed)
		}
		if err != nil {
			return nil, types.RenderTableOutput{}, err
		}

		return nil, types.RenderTableOutput{
			PayloadID: stored.ID,
			Format:    format,
			MIMEType:  mimeType(format),
			Table:     b.String(),
		}, nil
	}
}

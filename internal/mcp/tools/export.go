package tools

import (
	"context"
	"errors"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/pkg/export"
	"github.com/usestring/salesdash-mcp/pkg/types"
)

// ToolExport writes a stored payload as CSV, JSON or XML text.
func ToolExport(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ExportInput) (*sdkmcp.CallToolResult, types.ExportOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ExportInput) (*sdkmcp.CallToolResult, types.ExportOutput, error) {
		f, err := export.ParseFormat(input.Format)
		if err != nil {
			return nil, types.ExportOutput{}, ErrInvalidInput(err.Error())
		}

		stored, err := d.Payload(input.PayloadID)
		if err != nil {
			return nil, types.ExportOutput{}, err
		}

		var b strings.Builder
		if err := export.Write(&b, f, stored.Parsed); err != nil {
			if errors.Is(err, export.ErrNoData) {
				return nil, types.ExportOutput{}, ErrInvalidInput("payload has no rows to export")
			}
			return nil, types.ExportOutput{}, err
		}

		return nil, types.ExportOutput{
			PayloadID: stored.ID,
			Format:    string(f),
			MIMEType:  mimeType(string(f)),
			Filename:  export.Filename(f, time.Now()),
			Content:   b.String(),
		}, nil
	}
}

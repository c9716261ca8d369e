package tools

import (
	"context"
	"encoding/json"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/internal/cache"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
	"github.com/usestring/salesdash-mcp/pkg/types"
)

// ToolParsePayload parses a raw payload supplied by the caller and stores it.
func ToolParsePayload(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ParsePayloadInput) (*sdkmcp.CallToolResult, types.TableOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ParsePayloadInput) (*sdkmcp.CallToolResult, types.TableOutput, error) {
		raw := strings.TrimSpace(input.Payload)
		if raw == "" {
			return nil, types.TableOutput{}, ErrInvalidInput("payload is required")
		}

		stored, err := d.StorePayload("", json.RawMessage(raw))
		if err != nil {
			return nil, types.TableOutput{}, err
		}
		return nil, tableOutput(stored, stored.Parsed.Rows, 0, d.Config.ClampRowLimit(input.Limit)), nil
	}
}

// tableOutput builds a TableOutput from the matching rows of stored.
func tableOutput(stored *cache.StoredPayload, rows []tabular.Row, offset, limit int) types.TableOutput {
	pd := stored.Parsed
	pageRows := page(rows, offset, limit)
	out := types.TableOutput{
		PayloadID:  stored.ID,
		HasData:    pd.HasData,
		Convention: string(pd.Convention),
		Headers:    pd.Headers,
		Rows:       tableRows(pd.Headers, pageRows),
		Total:      len(rows),
		Returned:   len(pageRows),
		Dropped:    pd.Dropped,
		Truncated:  offset+len(pageRows) < len(rows),
	}
	switch {
	case !pd.HasData:
		out.Hint = "No numeric leaves found; the payload is plain text or empty."
	case out.Truncated:
		out.Hint = "More rows available; call salesdash_get_rows with a higher offset."
	case pd.Dropped > 0:
		out.Hint = "Some leaves had a different nesting depth and were left out; see salesdash_describe_payload."
	}
	return out
}

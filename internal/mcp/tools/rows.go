package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/pkg/tabular"
	"github.com/usestring/salesdash-mcp/pkg/types"
)

const noMatchHint = "No rows match the filters; see salesdash_describe_payload for the labels of each column."

// ToolGetRows returns filtered, optionally sorted rows of a stored payload.
func ToolGetRows(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.GetRowsInput) (*sdkmcp.CallToolResult, types.TableOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.GetRowsInput) (*sdkmcp.CallToolResult, types.TableOutput, error) {
		if input.Offset < 0 {
			return nil, types.TableOutput{}, ErrInvalidInput("offset must not be negative")
		}
		stored, err := d.Payload(input.PayloadID)
		if err != nil {
			return nil, types.TableOutput{}, err
		}

		if input.CountOnly {
			n, err := stored.Index.Count(input.Filters)
			if err != nil {
				return nil, types.TableOutput{}, ErrInvalidInput(err.Error())
			}
			output := tableOutput(stored, nil, 0, 0)
			output.Total = n
			if n == 0 && stored.Parsed.HasData {
				output.Hint = noMatchHint
			}
			return nil, output, nil
		}

		rows, err := stored.Index.Filter(input.Filters)
		if err != nil {
			return nil, types.TableOutput{}, ErrInvalidInput(err.Error())
		}
		if input.Sort {
			rows = tabular.SortRows(rows)
		}

		output := tableOutput(stored, rows, input.Offset, d.Config.ClampRowLimit(input.Limit))
		if len(rows) == 0 && stored.Parsed.HasData {
			output.Hint = noMatchHint
		}
		return nil, output, nil
	}
}

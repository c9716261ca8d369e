package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/pkg/payload"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
	"github.com/usestring/salesdash-mcp/pkg/types"
)

// ToolDescribePayload reports how a stored payload's leaves were shaped and
// lists the labels of each dimension column.
func ToolDescribePayload(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.DescribePayloadInput) (*sdkmcp.CallToolResult, types.DescribePayloadOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.DescribePayloadInput) (*sdkmcp.CallToolResult, types.DescribePayloadOutput, error) {
		stored, err := d.Payload(input.PayloadID)
		if err != nil {
			return nil, types.DescribePayloadOutput{}, err
		}

		opts := &tabular.Options{MaxDepth: d.Config.ParseMaxDepth}
		v, err := payload.Decode(stored.Raw, &payload.DecodeOptions{MaxDepth: opts.MaxDepth})
		if err != nil {
			return nil, types.DescribePayloadOutput{}, ErrMalformedPayload(err)
		}
		desc, err := tabular.DescribeWithOptions(v, opts)
		if err != nil {
			return nil, types.DescribePayloadOutput{}, ErrMalformedPayload(err)
		}

		output := types.DescribePayloadOutput{
			PayloadID:   stored.ID,
			Query:       stored.Query,
			Description: desc,
		}
		for _, col := range stored.Index.Columns() {
			values, err := stored.Index.Values(col)
			if err != nil {
				return nil, types.DescribePayloadOutput{}, err
			}
			output.Columns = append(output.Columns, types.ColumnValues{Column: col, Values: values})
		}
		return nil, output, nil
	}
}

package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/pkg/chart"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
	"github.com/usestring/salesdash-mcp/pkg/types"
)

// ToolChart projects a stored payload onto (category, value) points and
// groups them into per-category totals.
func ToolChart(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ChartInput) (*sdkmcp.CallToolResult, types.ChartOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.ChartInput) (*sdkmcp.CallToolResult, types.ChartOutput, error) {
		stored, err := d.Payload(input.PayloadID)
		if err != nil {
			return nil, types.ChartOutput{}, err
		}

		points := tabular.Project(stored.Parsed)
		totals := chart.GroupByCategory(points)
		output := types.ChartOutput{
			PayloadID: stored.ID,
			Totals:    totals,
			Summary:   chart.Summarize(totals),
		}
		if !input.Grouped {
			output.Points = points
		}
		if len(points) == 0 {
			output.Hint = "Nothing to chart: the payload has no Period and Value (USD) columns."
		}
		return nil, output, nil
	}
}

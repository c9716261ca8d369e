package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/internal/suggest"
	"github.com/usestring/salesdash-mcp/pkg/client"
	"github.com/usestring/salesdash-mcp/pkg/types"
)

// ToolDashboard fetches dashboard tabs for the given questions, or for the
// account's default suggested questions.
func ToolDashboard(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.DashboardInput) (*sdkmcp.CallToolResult, types.DashboardOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.DashboardInput) (*sdkmcp.CallToolResult, types.DashboardOutput, error) {
		account := d.account(input.Account)

		questions := make([]client.SuggestedQuestion, 0, len(input.Questions))
		for i, q := range input.Questions {
			sq := client.SuggestedQuestion{ID: q.ID, Text: q.Text, TabInformation: q.TabInformation}
			if strings.TrimSpace(suggest.Query(sq)) == "" {
				return nil, types.DashboardOutput{}, ErrInvalidInput("every question needs text or tab_information")
			}
			if sq.ID == "" {
				sq.ID = fmt.Sprintf("tab-%d", i+1)
			}
			questions = append(questions, sq)
		}
		if len(questions) == 0 {
			questions = suggest.Defaults(account)
		}

		tabs, err := d.Dashboard.Fetch(ctx, account, questions)
		if err != nil {
			return nil, types.DashboardOutput{}, WrapBackendError(err)
		}

		output := types.DashboardOutput{
			Account: account,
			Tabs:    make([]types.DashboardTab, 0, len(tabs)),
		}
		for _, tab := range tabs {
			dt := types.DashboardTab{
				ID:             tab.ID,
				Label:          tab.Label,
				TabInformation: tab.Query,
				PayloadID:      tab.PayloadID,
				HasData:        tab.Parsed.HasData,
				Convention:     string(tab.Parsed.Convention),
				RowCount:       len(tab.Parsed.Rows),
			}
			if tab.Parsed.HasData {
				dt.Headers = tab.Parsed.Headers
			}
			if tab.Err != nil {
				dt.Error = describeErr(WrapBackendError(tab.Err))
			}
			output.Tabs = append(output.Tabs, dt)
		}
		return nil, output, nil
	}
}

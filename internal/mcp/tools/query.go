package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/internal/query"
	"github.com/usestring/salesdash-mcp/pkg/types"
)

const (
	defaultMaxResults = 1000
	maxQueryPayloads  = 20
)

// ToolQueryPayload runs a jq expression over stored payloads, either their
// raw backend output or their materialized rows.
func ToolQueryPayload(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.QueryPayloadInput) (*sdkmcp.CallToolResult, types.QueryPayloadOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.QueryPayloadInput) (*sdkmcp.CallToolResult, types.QueryPayloadOutput, error) {
		if strings.TrimSpace(input.Expression) == "" {
			return nil, types.QueryPayloadOutput{}, ErrInvalidInput("expression is required")
		}
		if len(input.PayloadIDs) == 0 {
			return nil, types.QueryPayloadOutput{}, ErrInvalidInput("payload_ids is required")
		}
		if len(input.PayloadIDs) > maxQueryPayloads {
			return nil, types.QueryPayloadOutput{}, ErrInvalidInput(fmt.Sprintf("at most %d payload_ids per query", maxQueryPayloads))
		}

		target := input.Target
		if target == "" {
			target = "payload"
		}
		if target != "payload" && target != "rows" {
			return nil, types.QueryPayloadOutput{}, ErrInvalidInput("target must be 'payload' or 'rows'")
		}

		if err := d.Query.Validate(input.Expression); err != nil {
			return nil, types.QueryPayloadOutput{}, ErrInvalidInput(err.Error())
		}

		inputs := make([]query.Input, 0, len(input.PayloadIDs))
		for _, id := range input.PayloadIDs {
			stored, err := d.Payload(id)
			if err != nil {
				return nil, types.QueryPayloadOutput{}, err
			}
			data := []byte(stored.Raw)
			if target == "rows" {
				if data, err = json.Marshal(stored.Parsed.Rows); err != nil {
					return nil, types.QueryPayloadOutput{}, err
				}
			}
			inputs = append(inputs, query.Input{Label: stored.ID, Data: data})
		}

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = defaultMaxResults
		}

		res, err := d.Query.QueryAll(inputs, input.Expression, query.Options{
			Deduplicate: input.Deduplicate,
			MaxResults:  maxResults,
		})
		if err != nil {
			return nil, types.QueryPayloadOutput{}, ErrInvalidInput(err.Error())
		}

		return nil, types.QueryPayloadOutput{
			Values:    res.Values,
			Errors:    res.Errors,
			RawCount:  res.RawCount,
			Matched:   res.Matched,
			Truncated: res.Truncated,
		}, nil
	}
}

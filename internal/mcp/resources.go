package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/salesdash-mcp/internal/mcp/tools"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// Resource URI scheme: salesdash://
// Supported URIs:
//   salesdash://payloads
//   salesdash://payload/{id}
//   salesdash://contract/parsed-data

const (
	uriScheme   = "salesdash://"
	payloadsURI = "salesdash://payloads"
	contractURI = "salesdash://contract/parsed-data"
)

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.PayloadURITemplate,
		Name:        "Parsed Payload",
		Description: "Every row of a stored payload with its headers, convention and dropped-leaf count. High context cost for large payloads - salesdash_get_rows pages and filters the same rows.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourcePayload)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         payloadsURI,
		Name:        "Stored Payloads",
		Description: "Payloads currently held by the server, least recently used first, with their question, convention and row count. Use the IDs with salesdash_get_rows or salesdash://payload/{id}.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourcePayloads)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         contractURI,
		Name:        "ParsedData Contract",
		Description: "JSON Schema of the parsed payload output: rows keyed by header, headers in display order, hasData, convention and dropped.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceContract)
}

// payloadResource is the body of a salesdash://payload/{id} resource.
type payloadResource struct {
	ID        string             `json:"id"`
	Query     string             `json:"query,omitempty"`
	CreatedAt string             `json:"created_at"`
	Parsed    tabular.ParsedData `json:"parsed"`
}

// payloadSummary is one entry of the salesdash://payloads resource.
type payloadSummary struct {
	ID         string `json:"id"`
	URI        string `json:"uri"`
	Query      string `json:"query,omitempty"`
	CreatedAt  string `json:"created_at"`
	HasData    bool   `json:"has_data"`
	Convention string `json:"convention"`
	Rows       int    `json:"rows"`
}

func (s *Server) handleResourcePayloads(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	stored := s.deps.Payloads.List()
	out := make([]payloadSummary, 0, len(stored))
	for _, p := range stored {
		out = append(out, payloadSummary{
			ID:         p.ID,
			URI:        tools.PayloadURI(p.ID),
			Query:      p.Query,
			CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
			HasData:    p.Parsed.HasData,
			Convention: string(p.Parsed.Convention),
			Rows:       len(p.Parsed.Rows),
		})
	}
	return toResourceResult(req.Params.URI, out)
}

func (s *Server) handleResourcePayload(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	stored, ok := s.deps.Payloads.Get(params["id"])
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return toResourceResult(req.Params.URI, payloadResource{
		ID:        stored.ID,
		Query:     stored.Query,
		CreatedAt: stored.CreatedAt.UTC().Format(time.RFC3339),
		Parsed:    stored.Parsed,
	})
}

func (s *Server) handleResourceContract(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	return toResourceResult(req.Params.URI, ParsedDataSchema())
}

// parsedDataContract mirrors the JSON form of tabular.ParsedData. Rows are
// written by tabular.Row.MarshalJSON, which the reflector cannot see.
type parsedDataContract struct {
	Rows       []map[string]any `json:"rows" jsonschema:"description=One object per numeric leaf. Keys are the headers; dimension cells are strings (— when absent) and Value (USD) is a number."`
	Headers    []string         `json:"headers" jsonschema:"description=Column names in display order. The last is always Value (USD)."`
	HasData    bool             `json:"hasData" jsonschema:"description=True when rows is non-empty."`
	Convention string           `json:"convention" jsonschema:"enum=eight,enum=seven,enum=regional,enum=generic,enum=none"`
	Dropped    int              `json:"dropped" jsonschema:"minimum=0,description=Leaves discarded because their path length differed from the chosen layout."`
}

// ParsedDataSchema returns the JSON Schema of the parsed payload contract.
func ParsedDataSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&parsedDataContract{})
	schema.ID = jsonschema.ID(contractURI)
	schema.Title = "ParsedData"
	return schema
}

// Helper functions

// parseResourceURI extracts parameters from a salesdash:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, uriScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected salesdash://")
	}

	parts := strings.Split(strings.TrimPrefix(uri, uriScheme), "/")
	params := make(map[string]string)

	switch parts[0] {
	case "payload":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("payload URI requires a payload ID")
		}
		params["id"] = parts[1]
	case "contract":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("contract URI requires a name")
		}
		params["name"] = parts[1]
	case "":
		return nil, tools.ErrInvalidInput("empty resource path")
	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", parts[0]))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(content); err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}

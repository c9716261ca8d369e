// Package mcpsrv provides an extensible MCP server for the salesdash
// revenue dashboard backend.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin salesdash tools, prompts, and resources. Users can extend the
// server with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server with default configuration. A nil client is built from
// SALESDASH_API_ENDPOINT and HTTP_CLIENT_TIMEOUT_MS:
//
//	server, err := mcpsrv.NewServer(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    PayloadID string `json:"payload_id"`
//	}
//
//	type MyOutput struct {
//	    Count int `json:"count"`
//	}
//
//	func myHandler(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	    return nil, MyOutput{Count: 42}, nil
//	}
//
//	server, err := mcpsrv.NewServer(
//	    nil,
//	    mcpsrv.WithTool(&mcp.Tool{Name: "my_tool", Description: "My tool"}, myHandler),
//	)
//
// Tools that need stored payloads or the chat backend use [WithDepsTool].
//
// # Configuration
//
// Configuration is loaded from environment variables (see internal/config).
// Options override individual values:
//
//	server, err := mcpsrv.NewServer(
//	    nil,
//	    mcpsrv.WithAccount("EBIT"),
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/salesdash-mcp.log"),
//	    mcpsrv.WithMetricsAddr("127.0.0.1:9090"),
//	)
package mcpsrv

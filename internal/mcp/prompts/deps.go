// Package prompts contains MCP prompt implementations for salesdash.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	// Account is used when a prompt is requested without one.
	Account string
	// MaxTabs is the number of dashboard tabs fetched per request.
	MaxTabs int
}

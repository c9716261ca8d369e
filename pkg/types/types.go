// Package types provides shared types for salesdash-mcp.
// These types are used across multiple packages and are designed for external consumption.
package types

import (
	"encoding/json"

	"github.com/usestring/salesdash-mcp/pkg/client"
)

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChatResponse is the answer to a question, as returned to callers and
// cached by normalized query.
type ChatResponse struct {
	ID                 string                     `json:"id"`
	Response           string                     `json:"response"`
	Query              string                     `json:"query"`
	Cached             bool                       `json:"cached"`
	Timestamp          string                     `json:"timestamp"`
	ConversationID     string                     `json:"conversation_id,omitempty"`
	PayloadID          string                     `json:"payload_id,omitempty"`
	HasData            bool                       `json:"has_data"`
	Convention         string                     `json:"convention,omitempty"`
	Headers            []string                   `json:"headers,omitzero"`
	SuggestedQuestions []client.SuggestedQuestion `json:"suggested_questions,omitzero"`
}

// ResourceRef points to an MCP resource.
type ResourceRef struct {
	URI  string `json:"uri"`
	MIME string `json:"mime"`
	Hint string `json:"hint,omitempty"`
}

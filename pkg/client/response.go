package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/usestring/salesdash-mcp/pkg/payload"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// DashboardNotice is the display text for chartable output.
const DashboardNotice = "Please refer to the dashboard tabs for detailed results."

// ErrNoAssistantMessage is returned when a conversation response carries no
// assistant turn.
var ErrNoAssistantMessage = errors.New("no assistant message found in response")

// Processed is a backend response reduced to what the dashboard needs.
type Processed struct {
	Text               string
	RawData            json.RawMessage
	SuggestedQuestions []SuggestedQuestion
}

// ProcessResponse extracts display text, raw output and suggestions.
func ProcessResponse(resp *ChatResponse) (*Processed, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	var assistant *Message
	if len(resp.Messages) > 0 {
		m, err := LastAssistantMessage(resp.Messages)
		if err != nil {
			return nil, err
		}
		assistant = m
	}

	p := &Processed{
		RawData:            RawData(resp, assistant),
		SuggestedQuestions: Suggestions(resp, assistant),
	}
	switch {
	case present(resp.Output):
		p.Text = FormatOutput(resp.Output)
	case assistant != nil:
		p.Text = FormatContent(assistant.Content)
	}
	return p, nil
}

// LastAssistantMessage returns the last assistant turn with content.
func LastAssistantMessage(msgs []Message) (*Message, error) {
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m.Role != RoleAssistant {
			continue
		}
		if !m.Content.IsStructured() && m.Content.Text == "" {
			return nil, fmt.Errorf("assistant message has no content")
		}
		return &msgs[i], nil
	}
	return nil, ErrNoAssistantMessage
}

// RawData returns the top-level output, else the assistant's content output.
func RawData(resp *ChatResponse, assistant *Message) json.RawMessage {
	if present(resp.Output) {
		return resp.Output
	}
	if assistant != nil && present(assistant.Content.Output) {
		return assistant.Content.Output
	}
	return nil
}

// Suggestions returns normalized suggestions from the top-level field, else
// from the assistant's content.
func Suggestions(resp *ChatResponse, assistant *Message) []SuggestedQuestion {
	if len(resp.SuggestedQuestions) > 0 {
		return NormalizeSuggestions(resp.SuggestedQuestions)
	}
	if assistant != nil && len(assistant.Content.SuggestedQuestions) > 0 {
		return NormalizeSuggestions(assistant.Content.SuggestedQuestions)
	}
	return nil
}

// NormalizeSuggestions converts backend suggestions to SuggestedQuestion.
// Suggestions already carrying text keep their id; legacy ones get "sq-N".
func NormalizeSuggestions(in []BackendSuggestion) []SuggestedQuestion {
	out := make([]SuggestedQuestion, 0, len(in))
	for i, s := range in {
		q := SuggestedQuestion{ID: s.ID, Text: s.Text, TabInformation: s.TabInformation}
		if q.Text == "" {
			q.Text = s.Question
		}
		if q.TabInformation == "" {
			q.TabInformation = s.TabInfoLegacy
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("sq-%d", i+1)
		}
		if q.Text == "" {
			continue
		}
		out = append(out, q)
	}
	return out
}

// FormatContent renders message content for display.
func FormatContent(c Content) string {
	if !c.IsStructured() {
		return c.Text
	}
	if !present(c.Output) {
		return ""
	}
	return FormatOutput(c.Output)
}

// FormatOutput renders an output payload for display: a dashboard notice for
// chartable data, the message for text-only data, else indented JSON.
func FormatOutput(raw json.RawMessage) string {
	v, err := payload.Decode(raw, nil)
	if err == nil {
		if msg, ok := tabular.TextResponse(v); ok {
			return msg
		}
		if tabular.IsChartable(v) {
			return DashboardNotice
		}
	}
	if s, ok := v.Text(); ok && err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

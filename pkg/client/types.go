package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Role is the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// UserMessage returns a plain-text user turn.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: TextContent(text)}
}

// Content is a message body: either plain text or a structured object with
// an output payload and suggestions.
type Content struct {
	Text               string
	Output             json.RawMessage
	SuggestedQuestions []BackendSuggestion
	structured         bool
}

// TextContent returns plain-text content.
func TextContent(s string) Content { return Content{Text: s} }

// IsStructured reports whether the content was an object rather than a string.
func (c Content) IsStructured() bool { return c.structured }

type structuredContent struct {
	Output             json.RawMessage     `json:"output,omitempty"`
	SuggestedQuestions []BackendSuggestion `json:"suggestedQuestions,omitempty"`
}

// UnmarshalJSON accepts a JSON string or an object.
func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*c = Content{}
		return json.Unmarshal(data, &c.Text)
	}
	if bytes.Equal(data, []byte("null")) {
		*c = Content{}
		return nil
	}
	var sc structuredContent
	if err := json.Unmarshal(data, &sc); err != nil {
		return fmt.Errorf("decoding message content: %w", err)
	}
	*c = Content{Output: sc.Output, SuggestedQuestions: sc.SuggestedQuestions, structured: true}
	return nil
}

// MarshalJSON writes text content as a string and structured content as an
// object.
func (c Content) MarshalJSON() ([]byte, error) {
	if !c.structured {
		return json.Marshal(c.Text)
	}
	return json.Marshal(structuredContent{Output: c.Output, SuggestedQuestions: c.SuggestedQuestions})
}

// ChatRequest is the body POSTed to the chat endpoint.
type ChatRequest struct {
	Account  string    `json:"Account"`
	Messages []Message `json:"messages"`
}

// ChatResponse is the decoded backend reply.
type ChatResponse struct {
	Account            string              `json:"Account,omitempty"`
	Messages           []Message           `json:"messages,omitempty"`
	Output             json.RawMessage     `json:"output,omitempty"`
	SuggestedQuestions []BackendSuggestion `json:"suggested_questions,omitempty"`
}

// BackendSuggestion is a suggested question as the backend sends it. Older
// backends send {question, "tab information"}; newer ones send the
// normalized {id, text, tabInformation} shape.
type BackendSuggestion struct {
	ID             string `json:"id,omitempty"`
	Text           string `json:"text,omitempty"`
	TabInformation string `json:"tabInformation,omitempty"`
	Question       string `json:"question,omitempty"`
	TabInfoLegacy  string `json:"tab information,omitempty"`
}

// SuggestedQuestion is a normalized follow-up question. TabInformation is the
// query executed to fill the question's dashboard tab.
type SuggestedQuestion struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	TabInformation string `json:"tab_information,omitempty"`
}

// APIError represents an error response from the chat backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat API error %d: %s", e.StatusCode, e.Message)
}

// errorResponse is the JSON structure for API errors.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Package client provides a Go SDK for the revenue analytics chat backend.
//
// The backend answers natural-language questions about an account's revenue
// figures. Each call carries the full conversation so far; the response holds
// the updated conversation, an optional structured "output" payload and
// optional follow-up question suggestions.
//
// # Quick Start
//
//	c := client.New(client.WithEndpoint("http://localhost:8000/chat"))
//	resp, err := c.Chat(ctx, "ORGANIC NET REVENUES", []client.Message{
//	    client.UserMessage("What was revenue in October?"),
//	})
//	if err != nil {
//	    return err
//	}
//	processed, err := client.ProcessResponse(resp)
//
// # Response Processing
//
// ProcessResponse extracts three things from a response:
//
//   - the raw output payload, preferring the top-level "output" over the last
//     assistant message's content;
//   - suggested questions, normalized to SuggestedQuestion;
//   - display text: a pointer to the dashboard for chartable output, the
//     message for text-only output, otherwise pretty-printed JSON.
//
// Responses are validated against an envelope schema before decoding. A
// response with neither a "messages" array nor an "output" field is rejected
// with ErrInvalidResponse.
package client

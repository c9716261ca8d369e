package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/salesdash-mcp/internal/cache"
	"github.com/usestring/salesdash-mcp/internal/config"
	"github.com/usestring/salesdash-mcp/internal/conversation"
	"github.com/usestring/salesdash-mcp/internal/dashboard"
	"github.com/usestring/salesdash-mcp/internal/metrics"
	"github.com/usestring/salesdash-mcp/internal/query"
	"github.com/usestring/salesdash-mcp/internal/suggest"
	"github.com/usestring/salesdash-mcp/pkg/client"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
	"github.com/usestring/salesdash-mcp/pkg/types"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client        *client.Client
	Config        *config.Config
	Responses     *cache.ResponseCache
	Payloads      *cache.PayloadStore
	Conversations *conversation.Store
	Query         *query.Engine
	Dashboard     *dashboard.Fetcher
	Metrics       *metrics.Recorder

	// asks collapses concurrent identical questions into one backend call.
	asks singleflight.Group
}

// AskRequest is one question for Deps.Ask.
type AskRequest struct {
	Question       string
	ConversationID string
	Account        string
	SkipCache      bool
}

// Ask answers a question from the response cache or the backend. A backend
// answer updates the conversation history, is cached under the account and
// normalized question and has its output stored as a payload.
func (d *Deps) Ask(ctx context.Context, req AskRequest) (*types.ChatResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrInvalidInput("question is required")
	}
	convID := conversation.Resolve(req.ConversationID)
	account := d.account(req.Account)

	if !req.SkipCache {
		if cached, ok := d.Responses.Get(account, question); ok {
			d.Metrics.CacheHit()
			cached.ConversationID = convID
			slog.Debug("answered from cache", slog.String("query", question))
			return &cached, nil
		}
	}

	key := convID + "\x00" + cache.Key(account, question)
	v, err, _ := d.asks.Do(key, func() (any, error) {
		return d.askBackend(ctx, account, convID, question)
	})
	if err != nil {
		return nil, err
	}
	resp := *v.(*types.ChatResponse)
	return &resp, nil
}

func (d *Deps) askBackend(ctx context.Context, account, convID, question string) (*types.ChatResponse, error) {
	unlock := d.Conversations.Lock(convID)
	defer unlock()

	messages := d.Conversations.BuildMessages(convID, question)

	start := time.Now()
	raw, err := d.Client.Chat(ctx, account, messages)
	d.Metrics.ObserveBackend(time.Since(start), err)
	if err != nil {
		return nil, WrapBackendError(err)
	}

	processed, err := client.ProcessResponse(raw)
	if err != nil {
		return nil, WrapBackendError(err)
	}

	if len(raw.Messages) > 0 {
		d.Conversations.Replace(convID, raw.Messages)
	} else {
		d.Conversations.Append(convID,
			messages[len(messages)-1],
			client.Message{Role: client.RoleAssistant, Content: client.TextContent(processed.Text)},
		)
	}

	resp := &types.ChatResponse{
		ID:                 "resp_" + uuid.NewString(),
		Response:           processed.Text,
		Query:              question,
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
		ConversationID:     convID,
		SuggestedQuestions: processed.SuggestedQuestions,
	}
	if len(resp.SuggestedQuestions) == 0 {
		resp.SuggestedQuestions = suggest.Defaults(account)
	}

	if len(processed.RawData) > 0 {
		stored, err := d.StorePayload(question, processed.RawData)
		if err != nil {
			return nil, err
		}
		resp.PayloadID = stored.ID
		resp.HasData = stored.Parsed.HasData
		resp.Convention = string(stored.Parsed.Convention)
		if stored.Parsed.HasData {
			resp.Headers = stored.Parsed.Headers
		}
	}

	d.Responses.Set(account, question, *resp)
	return resp, nil
}

// StorePayload parses raw and stores it. Malformed payloads are rejected
// with MALFORMED_PAYLOAD and not stored.
func (d *Deps) StorePayload(query string, raw json.RawMessage) (*cache.StoredPayload, error) {
	parsed, err := d.parse(raw)
	if err != nil {
		return nil, err
	}
	return d.Payloads.Put(query, raw, parsed), nil
}

func (d *Deps) parse(raw json.RawMessage) (tabular.ParsedData, error) {
	start := time.Now()
	parsed, err := tabular.Parse(raw, &tabular.Options{MaxDepth: d.Config.ParseMaxDepth})
	d.Metrics.ObserveParse(string(parsed.Convention), len(parsed.Rows), parsed.Dropped, err)
	if err != nil {
		slog.Debug("payload rejected",
			slog.Int("bytes", len(raw)),
			slog.String("error", err.Error()),
		)
		return parsed, ErrMalformedPayload(err)
	}
	slog.Debug("payload parsed",
		slog.String("convention", string(parsed.Convention)),
		slog.Int("rows", len(parsed.Rows)),
		slog.Int("dropped", parsed.Dropped),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return parsed, nil
}

// StoreTab stores a dashboard tab payload parsed by the dashboard fetcher.
func (d *Deps) StoreTab(query string, raw json.RawMessage, parsed tabular.ParsedData) string {
	d.Metrics.ObserveParse(string(parsed.Convention), len(parsed.Rows), parsed.Dropped, nil)
	return d.Payloads.Put(query, raw, parsed).ID
}

// Payload returns a stored payload or NOT_FOUND.
func (d *Deps) Payload(id string) (*cache.StoredPayload, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidInput("payload_id is required")
	}
	p, ok := d.Payloads.Get(id)
	if !ok {
		return nil, ErrNotFound("payload", id)
	}
	return p, nil
}

// ClearConversation clears one conversation, or all when id is empty, and
// empties the response cache.
func (d *Deps) ClearConversation(id string) ([]string, int) {
	var cleared []string
	if strings.TrimSpace(id) == "" {
		cleared = d.Conversations.ClearAll()
	} else if d.Conversations.Clear(id) {
		cleared = []string{conversation.Resolve(id)}
	}
	n := d.Responses.Clear()
	slog.Info("conversation cleared",
		slog.Int("conversations", len(cleared)),
		slog.Int("cache_entries", n),
	)
	return cleared, n
}

func (d *Deps) account(account string) string {
	if a := strings.TrimSpace(account); a != "" {
		return a
	}
	if d.Config != nil && d.Config.Account != "" {
		return d.Config.Account
	}
	return config.DefaultAccount
}

func describeErr(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return fmt.Sprintf("%s: %s", coded.Code, coded.Message)
	}
	return err.Error()
}

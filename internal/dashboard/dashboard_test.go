package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/salesdash-mcp/pkg/client"
	"github.com/usestring/salesdash-mcp/pkg/payload"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

type fakeAsker struct {
	mu       sync.Mutex
	asked    []string
	answers  map[string]string
	inflight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (f *fakeAsker) Ask(ctx context.Context, _ string, question string) (*client.ChatResponse, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	f.asked = append(f.asked, question)
	f.mu.Unlock()

	out, ok := f.answers[question]
	if !ok {
		return nil, &client.APIError{StatusCode: 500, Message: "boom"}
	}
	return &client.ChatResponse{Output: json.RawMessage(out)}, nil
}

func questions(qs ...string) []client.SuggestedQuestion {
	out := make([]client.SuggestedQuestion, len(qs))
	for i, q := range qs {
		out[i] = client.SuggestedQuestion{ID: q, Text: "label " + q, TabInformation: q}
	}
	return out
}

const regionalPayload = `{"OVERALL":{"FY25":{"PREDICTION11":{"OCTOBER":{"LSCO":{"GLOBAL":536963416.6231}}}}}}`

func TestFetch(t *testing.T) {
	asker := &fakeAsker{answers: map[string]string{
		"q1": regionalPayload,
		"q2": `{"response":"nothing to chart"}`,
	}}
	var stored []string
	var mu sync.Mutex
	store := func(query string, _ json.RawMessage, _ tabular.ParsedData) string {
		mu.Lock()
		defer mu.Unlock()
		stored = append(stored, query)
		return "pl_" + query
	}

	f := NewFetcher(asker, store, Config{})
	tabs, err := f.Fetch(context.Background(), "EBIT", questions("q1", "q2", "q3"))
	require.NoError(t, err)
	require.Len(t, tabs, 3)

	assert.Equal(t, "q1", tabs[0].ID)
	assert.Equal(t, "label q1", tabs[0].Label)
	assert.NoError(t, tabs[0].Err)
	assert.True(t, tabs[0].Parsed.HasData)
	assert.Equal(t, "pl_q1", tabs[0].PayloadID)

	assert.NoError(t, tabs[1].Err)
	assert.False(t, tabs[1].Parsed.HasData)

	var apiErr *client.APIError
	require.ErrorAs(t, tabs[2].Err, &apiErr)
	assert.False(t, tabs[2].Parsed.HasData)
	assert.Empty(t, tabs[2].PayloadID)

	assert.ElementsMatch(t, []string{"q1", "q2"}, stored)
}

func TestFetch_MaxTabs(t *testing.T) {
	asker := &fakeAsker{answers: map[string]string{"a": "{}", "b": "{}", "c": "{}", "d": "{}"}}
	tabs, err := NewFetcher(asker, nil, Config{MaxTabs: 2}).Fetch(context.Background(), "", questions("a", "b", "c", "d"))
	require.NoError(t, err)
	assert.Len(t, tabs, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, asker.asked)
}

func TestFetch_WorkerLimit(t *testing.T) {
	asker := &fakeAsker{
		answers: map[string]string{"a": "{}", "b": "{}", "c": "{}", "d": "{}"},
		delay:   20 * time.Millisecond,
	}
	_, err := NewFetcher(asker, nil, Config{MaxTabs: 4, Workers: 1}).Fetch(context.Background(), "", questions("a", "b", "c", "d"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), asker.peak.Load())
}

func TestFetch_FallsBackToText(t *testing.T) {
	asker := &fakeAsker{answers: map[string]string{"plain text": "{}"}}
	qs := []client.SuggestedQuestion{{ID: "x", Text: "plain text"}}
	tabs, err := NewFetcher(asker, nil, Config{}).Fetch(context.Background(), "", qs)
	require.NoError(t, err)
	assert.Equal(t, "plain text", tabs[0].Query)
	assert.NoError(t, tabs[0].Err)
}

func TestFetch_MalformedTab(t *testing.T) {
	asker := &fakeAsker{answers: map[string]string{"deep": `{"a":{"b":{"c":1}}}`}}
	tabs, err := NewFetcher(asker, nil, Config{ParseDepth: 2}).Fetch(context.Background(), "", questions("deep"))
	require.NoError(t, err)
	assert.True(t, errors.Is(tabs[0].Err, payload.ErrMalformed))
}

func TestFetch_Canceled(t *testing.T) {
	asker := &fakeAsker{answers: map[string]string{"a": "{}"}, delay: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tabs, err := NewFetcher(asker, nil, Config{}).Fetch(ctx, "", questions("a"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, tabs, 1)
}

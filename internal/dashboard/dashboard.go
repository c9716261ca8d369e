// Package dashboard fetches and parses the tabs shown under a chat answer.
// Each tab is one suggested question executed against the backend.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/salesdash-mcp/internal/suggest"
	"github.com/usestring/salesdash-mcp/pkg/client"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// Defaults for Config.
const (
	DefaultMaxTabs = 3
	DefaultWorkers = 3
)

// Asker sends one question to the analytics backend.
type Asker interface {
	Ask(ctx context.Context, account, question string) (*client.ChatResponse, error)
}

// StoreFunc persists a parsed tab payload and returns its ID.
type StoreFunc func(query string, raw json.RawMessage, parsed tabular.ParsedData) string

// Config controls fetching.
type Config struct {
	MaxTabs    int
	Workers    int
	ParseDepth int
}

// Tab is the outcome of one dashboard tab.
type Tab struct {
	ID        string
	Label     string
	Query     string
	Raw       json.RawMessage
	Parsed    tabular.ParsedData
	PayloadID string
	Duration  time.Duration
	Err       error
}

// Fetcher executes suggested questions concurrently.
type Fetcher struct {
	asker Asker
	store StoreFunc
	cfg   Config
}

// NewFetcher creates a Fetcher. store may be nil.
func NewFetcher(asker Asker, store StoreFunc, cfg Config) *Fetcher {
	if cfg.MaxTabs <= 0 {
		cfg.MaxTabs = DefaultMaxTabs
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Fetcher{asker: asker, store: store, cfg: cfg}
}

// Fetch runs up to MaxTabs questions and returns one Tab per question in
// input order. A failing tab carries its error and no data; it never fails
// the others. The returned error is non-nil only when ctx is done.
func (f *Fetcher) Fetch(ctx context.Context, account string, questions []client.SuggestedQuestion) ([]Tab, error) {
	if len(questions) > f.cfg.MaxTabs {
		questions = questions[:f.cfg.MaxTabs]
	}
	tabs := make([]Tab, len(questions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Workers)

	for i, q := range questions {
		g.Go(func() error {
			tabs[i] = f.fetchTab(gctx, account, q)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return tabs, err
	}
	return tabs, nil
}

func (f *Fetcher) fetchTab(ctx context.Context, account string, q client.SuggestedQuestion) Tab {
	start := time.Now()
	tab := Tab{
		ID:     q.ID,
		Label:  q.Text,
		Query:  suggest.Query(q),
		Parsed: tabular.Empty(),
	}
	err := f.load(ctx, account, &tab)
	tab.Duration = time.Since(start)
	if err != nil {
		tab.Err = err
		tab.Parsed = tabular.Empty()
		slog.Warn("dashboard tab failed",
			slog.String("tab_id", tab.ID),
			slog.String("query", tab.Query),
			slog.String("error", err.Error()),
		)
		return tab
	}

	slog.Debug("dashboard tab loaded",
		slog.String("tab_id", tab.ID),
		slog.Bool("has_data", tab.Parsed.HasData),
		slog.Int("rows", len(tab.Parsed.Rows)),
		slog.Int64("duration_ms", tab.Duration.Milliseconds()),
	)
	return tab
}

func (f *Fetcher) load(ctx context.Context, account string, tab *Tab) error {
	resp, err := f.asker.Ask(ctx, account, tab.Query)
	if err != nil {
		return err
	}
	processed, err := client.ProcessResponse(resp)
	if err != nil {
		return err
	}
	tab.Raw = processed.RawData

	parsed, err := tabular.Parse(tab.Raw, &tabular.Options{MaxDepth: f.cfg.ParseDepth})
	if err != nil {
		return fmt.Errorf("parsing tab payload: %w", err)
	}
	tab.Parsed = parsed

	if f.store != nil && len(tab.Raw) > 0 {
		tab.PayloadID = f.store(tab.Query, tab.Raw, parsed)
	}
	return nil
}

package mcpsrv

import (
	"github.com/usestring/salesdash-mcp/internal/cache"
	"github.com/usestring/salesdash-mcp/internal/config"
	"github.com/usestring/salesdash-mcp/internal/conversation"
	"github.com/usestring/salesdash-mcp/internal/dashboard"
	"github.com/usestring/salesdash-mcp/internal/metrics"
	"github.com/usestring/salesdash-mcp/internal/query"
	"github.com/usestring/salesdash-mcp/pkg/client"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Client        *client.Client
	Config        *config.Config
	Responses     *cache.ResponseCache
	Payloads      *cache.PayloadStore
	Conversations *conversation.Store
	Query         *query.Engine
	Dashboard     *dashboard.Fetcher
	Metrics       *metrics.Recorder
}

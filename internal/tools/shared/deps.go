package shared

import (
	"context"
	"time"

	"stockagent/internal/adapters/duckduckgo"
	"stockagent/internal/adapters/yahoo"
	"stockagent/pkg/logger"
)

// SearchClient is the web search backend used by the search tool.
type SearchClient interface {
	Search(ctx context.Context, query string, maxResults int) ([]duckduckgo.Result, error)
}

// MarketDataClient is the market data backend used by the finance tools.
type MarketDataClient interface {
	Chart(ctx context.Context, symbol, rng, interval string) (*yahoo.Chart, error)
	QuoteSummary(ctx context.Context, symbol string, modules ...string) (*yahoo.QuoteSummary, error)
}

// Deps bundles dependencies required by concrete tool implementations
type Deps struct {
	Search     SearchClient
	MarketData MarketDataClient
	Log        *logger.Logger

	// Timeout bounds a single tool call; zero disables it
	Timeout time.Duration
	// MaxSearchResults is used when the model does not pass max_results
	MaxSearchResults int
}

// HasSearch reports whether the search backend is available
func (d Deps) HasSearch() bool {
	return d.Search != nil
}

// HasMarketData reports whether the market data backend is available
func (d Deps) HasMarketData() bool {
	return d.MarketData != nil
}

// Logger returns the configured logger or the global one.
func (d Deps) Logger() *logger.Logger {
	if d.Log == nil {
		return logger.Get()
	}
	return d.Log
}

package search

import (
	"context"

	"google.golang.org/adk/tool"

	"stockagent/internal/adapters/duckduckgo"
	"stockagent/internal/tools/shared"
	"stockagent/pkg/errors"
)

const maxResultsCap = 20

type SearchArgs struct {
	Query      string `json:"query" jsonschema:"the search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return"`
}

type SearchResults struct {
	Query   string              `json:"query"`
	Results []duckduckgo.Result `json:"results"`
}

// NewDuckDuckGoSearchTool returns a tool that searches the web through DuckDuckGo.
func NewDuckDuckGoSearchTool(deps shared.Deps) (tool.Tool, error) {
	if !deps.HasSearch() {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "duckduckgo_search: search client not configured")
	}

	return shared.NewToolBuilder(
		"duckduckgo_search",
		"Search the web with DuckDuckGo. Returns titles, links and snippets for the query.",
		duckDuckGoSearch(deps),
		deps,
	).
		WithTimeout(deps.Timeout).
		WithStats().
		Build()
}

func duckDuckGoSearch(deps shared.Deps) shared.ToolFunc[SearchArgs, SearchResults] {
	log := deps.Logger()
	defaultMax := deps.MaxSearchResults
	if defaultMax <= 0 {
		defaultMax = 5
	}

	return func(ctx context.Context, args SearchArgs) (SearchResults, error) {
		limit := args.MaxResults
		if limit <= 0 {
			limit = defaultMax
		}
		if limit > maxResultsCap {
			limit = maxResultsCap
		}

		log.Debugw("Tool: duckduckgo_search called", "query", args.Query, "max_results", limit)

		results, err := deps.Search.Search(ctx, args.Query, limit)
		if err != nil {
			return SearchResults{}, errors.Wrap(err, "duckduckgo_search")
		}
		if results == nil {
			results = []duckduckgo.Result{}
		}

		return SearchResults{Query: args.Query, Results: results}, nil
	}
}

package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockagent/internal/adapters/duckduckgo"
	"stockagent/internal/tools/shared"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

type fakeSearch struct {
	query string
	limit int
	err   error
}

func (f *fakeSearch) Search(_ context.Context, query string, maxResults int) ([]duckduckgo.Result, error) {
	f.query, f.limit = query, maxResults
	if f.err != nil {
		return nil, f.err
	}
	return []duckduckgo.Result{{Title: "Adobe", URL: "https://example.com"}}, nil
}

func TestNewDuckDuckGoSearchTool(t *testing.T) {
	_, err := NewDuckDuckGoSearchTool(shared.Deps{Log: logger.Nop()})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	tl, err := NewDuckDuckGoSearchTool(shared.Deps{Search: &fakeSearch{}, Log: logger.Nop()})
	require.NoError(t, err)
	assert.Equal(t, "duckduckgo_search", tl.Name())
	assert.NotEmpty(t, tl.Description())
}

func TestDuckDuckGoSearch_Limits(t *testing.T) {
	backend := &fakeSearch{}
	fn := duckDuckGoSearch(shared.Deps{Search: backend, Log: logger.Nop(), MaxSearchResults: 3})

	res, err := fn(context.Background(), SearchArgs{Query: "adobe"})
	require.NoError(t, err)
	assert.Equal(t, 3, backend.limit, "default from deps")
	assert.Equal(t, "adobe", res.Query)
	require.Len(t, res.Results, 1)

	_, err = fn(context.Background(), SearchArgs{Query: "adobe", MaxResults: 500})
	require.NoError(t, err)
	assert.Equal(t, maxResultsCap, backend.limit)
}

func TestDuckDuckGoSearch_Error(t *testing.T) {
	backend := &fakeSearch{err: errors.ErrRateLimitExceeded}
	fn := duckDuckGoSearch(shared.Deps{Search: backend, Log: logger.Nop()})

	_, err := fn(context.Background(), SearchArgs{Query: "adobe"})
	assert.True(t, errors.Is(err, errors.ErrRateLimitExceeded))
	assert.Contains(t, err.Error(), "duckduckgo_search")
}

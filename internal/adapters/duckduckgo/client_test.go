package duckduckgo

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockagent/pkg/errors"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<div class="result results_links result--ad">
  <h2 class="result__title"><a class="result__a" href="https://duckduckgo.com/y.js?ad=1">Sponsored</a></h2>
  <a class="result__snippet" href="#">Buy now</a>
</div>
<div class="result results_links results_links_deep web-result">
  <h2 class="result__title">
    <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fnews.example.com%2Fadobe&amp;rut=abc">Adobe <b>stock</b> rises</a>
  </h2>
  <a class="result__snippet" href="#">Adobe shares rose
     after <b>earnings</b>.</a>
</div>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="https://finance.example.com/ADBE">ADBE quote</a></h2>
  <div class="result__snippet">Real-time quote.</div>
</div>
<div class="result results_links web-result">
  <h2 class="result__title"><a class="result__a" href="https://third.example.com">Third</a></h2>
</div>
</body></html>`

func TestParseResults(t *testing.T) {
	results, err := ParseResults(strings.NewReader(resultsPage), 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, Result{
		Title:   "Adobe stock rises",
		URL:     "https://news.example.com/adobe",
		Snippet: "Adobe shares rose after earnings.",
	}, results[0])
	assert.Equal(t, "https://finance.example.com/ADBE", results[1].URL)
	assert.Equal(t, "Real-time quote.", results[1].Snippet)
	assert.Empty(t, results[2].Snippet)
}

func TestParseResults_Limit(t *testing.T) {
	results, err := ParseResults(strings.NewReader(resultsPage), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "ADBE quote", results[1].Title)
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/html/", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "adobe news", r.PostForm.Get("q"))
		assert.Equal(t, "test-agent", r.UserAgent())
		_, _ = io.WriteString(w, resultsPage)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, UserAgent: "test-agent"})
	results, err := c.Search(context.Background(), "adobe news", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Adobe stock rises", results[0].Title)
}

func TestClient_SearchErrors(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusAccepted)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL})

	_, err := c.Search(context.Background(), "adobe", 5)
	assert.True(t, errors.Is(err, errors.ErrRateLimitExceeded))

	status.Store(http.StatusInternalServerError)
	_, err = c.Search(context.Background(), "adobe", 5)
	assert.True(t, errors.Is(err, errors.ErrExternal))

	_, err = c.Search(context.Background(), "  ", 5)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = c.Search(context.Background(), "adobe", 0)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

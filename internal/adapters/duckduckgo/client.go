package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"stockagent/internal/adapters/ratelimit"
	"stockagent/internal/metrics"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

const (
	DefaultBaseURL = "https://html.duckduckgo.com"

	apiName = "duckduckgo"
)

// Result is a single organic search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Options configures a Client.
type Options struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client searches DuckDuckGo through its HTML endpoint, which needs no API key.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	log        *logger.Logger
}

// New creates a search client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    ratelimit.NewLimiter(apiName, opts.RequestsPerMinute),
		log:        logger.Get().With("component", "duckduckgo_client"),
	}
}

// Search returns at most maxResults organic results for query. Ads are skipped.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	results, err := c.search(ctx, query, maxResults)
	metrics.RecordExternalAPICall(apiName, "search", err)
	return results, err
}

func (c *Client) search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "query is required")
	}
	if maxResults <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "max_results must be positive")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/html/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnavailable, "duckduckgo: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusAccepted {
			// 202 is what DuckDuckGo serves when it throttles scrapers
			return nil, errors.Wrapf(errors.ErrRateLimitExceeded, "duckduckgo returned status %d", resp.StatusCode)
		}
		return nil, errors.Wrapf(errors.ErrExternal, "duckduckgo returned status %d: %s", resp.StatusCode, string(body))
	}

	results, err := ParseResults(resp.Body, maxResults)
	if err != nil {
		return nil, err
	}

	c.log.Debugw("Search complete", "query", query, "results", len(results))
	return results, nil
}

// ParseResults extracts organic results from a DuckDuckGo HTML result page.
func ParseResults(r io.Reader, maxResults int) ([]Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrExternal, "parse duckduckgo page: %v", err)
	}

	var (
		results []Result
		current *Result
	)

	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			classes := attr(n, "class")
			switch {
			case hasClass(classes, "result--ad"):
				return true
			case n.Data == "a" && hasClass(classes, "result__a"):
				if current != nil {
					results = append(results, *current)
					if len(results) >= maxResults {
						return false
					}
				}
				current = &Result{
					Title: collapse(text(n)),
					URL:   resolveLink(attr(n, "href")),
				}
				return true
			case hasClass(classes, "result__snippet"):
				if current != nil && current.Snippet == "" {
					current.Snippet = collapse(text(n))
				}
				return true
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if !walk(child) {
				return false
			}
		}
		return true
	}

	if walk(doc) && current != nil && len(results) < maxResults {
		results = append(results, *current)
	}

	return results, nil
}

// resolveLink unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveLink(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(classes, name string) bool {
	for _, c := range strings.Fields(classes) {
		if c == name {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (r Result) String() string {
	return fmt.Sprintf("%s (%s)", r.Title, r.URL)
}

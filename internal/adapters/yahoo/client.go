package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"stockagent/internal/adapters/ratelimit"
	"stockagent/internal/metrics"
	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultCookieURL = "https://fc.yahoo.com"

	apiName = "yahoo_finance"
)

// Options configures a Client.
type Options struct {
	BaseURL           string
	CookieURL         string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client reads market data from the public Yahoo Finance endpoints.
// The quoteSummary endpoint needs a session cookie and crumb, fetched lazily and cached.
type Client struct {
	baseURL    string
	cookieURL  string
	userAgent  string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	log        *logger.Logger

	mu    sync.Mutex
	crumb string
}

// New creates a Yahoo Finance client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.CookieURL == "" {
		opts.CookieURL = DefaultCookieURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}

	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		cookieURL: opts.CookieURL,
		userAgent: opts.UserAgent,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Jar:     jar,
		},
		limiter: ratelimit.NewLimiter(apiName, opts.RequestsPerMinute),
		log:     logger.Get().With("component", "yahoo_client"),
	}, nil
}

// Chart fetches price history. rng and interval use Yahoo notation, e.g. "6mo" and "1d".
func (c *Client) Chart(ctx context.Context, symbol, rng, interval string) (*Chart, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("range", rng)
	query.Set("interval", interval)
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())

	var resp chartResponse
	err = c.getJSON(ctx, "chart", endpoint, &resp)
	if err == nil && resp.Chart.Error != nil {
		err = upstreamError(symbol, resp.Chart.Error)
	}
	if err == nil && len(resp.Chart.Result) == 0 {
		err = errors.Wrapf(errors.ErrInvalidSymbol, "no chart data for %s", symbol)
	}
	metrics.RecordExternalAPICall(apiName, "chart", err)
	if err != nil {
		return nil, err
	}

	return decodeChart(resp.Chart.Result[0]), nil
}

// QuoteSummary fetches the given quoteSummary modules for symbol.
func (c *Client) QuoteSummary(ctx context.Context, symbol string, modules ...string) (*QuoteSummary, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "at least one module is required")
	}

	summary, err := c.quoteSummary(ctx, symbol, modules)
	metrics.RecordExternalAPICall(apiName, "quote_summary", err)
	return summary, err
}

func (c *Client) quoteSummary(ctx context.Context, symbol string, modules []string) (*QuoteSummary, error) {
	crumb, err := c.ensureCrumb(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("modules", strings.Join(modules, ","))
	query.Set("crumb", crumb)
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())

	var resp quoteSummaryResponse
	if err := c.getJSON(ctx, "quote_summary", endpoint, &resp); err != nil {
		if errors.Is(err, errUnauthorized) {
			// the crumb expired; the next call fetches a new one
			c.resetCrumb()
		}
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, upstreamError(symbol, resp.QuoteSummary.Error)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidSymbol, "no quote summary for %s", symbol)
	}

	return &resp.QuoteSummary.Result[0], nil
}

func (c *Client) ensureCrumb(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" {
		return c.crumb, nil
	}

	// fc.yahoo.com answers 404 but sets the session cookie, so only transport errors matter
	resp, err := c.do(ctx, c.cookieURL)
	if err != nil {
		return "", errors.Wrapf(errors.ErrUnavailable, "yahoo cookie: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	resp, err = c.do(ctx, c.baseURL+"/v1/test/getcrumb")
	if err != nil {
		return "", errors.Wrapf(errors.ErrUnavailable, "yahoo crumb: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read crumb")
	}
	crumb := strings.TrimSpace(string(body))
	if resp.StatusCode != http.StatusOK || crumb == "" || strings.HasPrefix(crumb, "{") {
		return "", errors.Wrapf(errors.ErrExternal, "yahoo crumb: status %d", resp.StatusCode)
	}

	c.crumb = crumb
	c.log.Debugw("Fetched Yahoo crumb")
	return crumb, nil
}

func (c *Client) resetCrumb() {
	c.mu.Lock()
	c.crumb = ""
	c.mu.Unlock()
}

var errUnauthorized = errors.New("unauthorized")

func (c *Client) getJSON(ctx context.Context, endpointName, endpoint string, dest interface{}) error {
	c.log.Debugw("Yahoo request", "endpoint", endpointName)

	resp, err := c.do(ctx, endpoint)
	if err != nil {
		return errors.Wrapf(errors.ErrUnavailable, "yahoo %s: %v", endpointName, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.Wrapf(errors.Join(errors.ErrExternal, errUnauthorized), "yahoo %s", endpointName)
	case resp.StatusCode == http.StatusTooManyRequests:
		return errors.Wrapf(errors.ErrRateLimitExceeded, "yahoo %s", endpointName)
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Wrapf(errors.ErrExternal, "yahoo %s returned status %d: %s", endpointName, resp.StatusCode, string(body))
	}

	// 4xx bodies still carry the structured error object
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Wrapf(errors.ErrExternal, "yahoo %s: decode response (status %d): %v", endpointName, resp.StatusCode, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func normalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", errors.Wrapf(errors.ErrInvalidInput, "symbol is required")
	}
	if strings.ContainsAny(symbol, " /?#&") {
		return "", errors.Wrapf(errors.ErrInvalidSymbol, "%q", symbol)
	}
	return symbol, nil
}

func upstreamError(symbol string, e *apiError) error {
	if strings.EqualFold(e.Code, "Not Found") {
		return errors.Wrapf(errors.ErrInvalidSymbol, "%s: %s", symbol, e.Description)
	}
	return errors.Wrapf(errors.ErrExternal, "%s: %s: %s", symbol, e.Code, e.Description)
}

func decodeChart(r chartResult) *Chart {
	chart := &Chart{
		Symbol:             r.Meta.Symbol,
		Currency:           r.Meta.Currency,
		ExchangeName:       r.Meta.ExchangeName,
		RegularMarketPrice: r.Meta.RegularMarketPrice,
		PreviousClose:      r.Meta.PreviousClose,
		FiftyTwoWeekHigh:   r.Meta.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:    r.Meta.FiftyTwoWeekLow,
	}
	if chart.PreviousClose == 0 {
		chart.PreviousClose = r.Meta.ChartPreviousClose
	}
	if r.Meta.RegularMarketTime > 0 {
		chart.RegularMarketTime = time.Unix(r.Meta.RegularMarketTime, 0).UTC()
	}

	if len(r.Indicators.Quote) == 0 {
		return chart
	}
	q := r.Indicators.Quote[0]

	for i, ts := range r.Timestamp {
		closePrice := at(q.Close, i)
		if closePrice == nil {
			continue
		}
		chart.Candles = append(chart.Candles, Candle{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   deref(at(q.Open, i)),
			High:   deref(at(q.High, i)),
			Low:    deref(at(q.Low, i)),
			Close:  *closePrice,
			Volume: deref(at(q.Volume, i)),
		})
	}

	return chart
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

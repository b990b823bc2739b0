// Package quotes fetches market data for listed funds: realtime exchange
// quotes, intraday valuation estimates (IOPV / estimated NAV) and the
// published daily net values that settle subscription and redemption orders.
package quotes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/fundwatch/Fund-Arbitrage-Monitor-Backend/internal/model"
)

const (
	defaultQuoteBase     = "https://qt.gtimg.cn"
	defaultValuationBase = "https://fundgz.1234567.com.cn"
	defaultNetValueBase  = "https://api.fund.eastmoney.com"

	// The upstream quote endpoints are shared free services; keep well under
	// any plausible limit.
	requestsPerSec = 10
)

// Client fetches fund market data over HTTP. Requests are rate limited and
// duplicate in-flight net-value lookups for the same (code, date) are
// collapsed into one upstream call.
type Client struct {
	http          *http.Client
	limiter       *rate.Limiter
	group         singleflight.Group
	quoteBase     string
	valuationBase string
	netValueBase  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the provider endpoints. Empty strings keep the
// production defaults. Used by tests.
func WithBaseURLs(quoteBase, valuationBase, netValueBase string) Option {
	return func(c *Client) {
		if quoteBase != "" {
			c.quoteBase = quoteBase
		}
		if valuationBase != "" {
			c.valuationBase = valuationBase
		}
		if netValueBase != "" {
			c.netValueBase = netValueBase
		}
	}
}

// NewClient creates a market-data client with default HTTP settings.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:          &http.Client{Timeout: 5 * time.Second},
		limiter:       rate.NewLimiter(requestsPerSec, 5),
		quoteBase:     defaultQuoteBase,
		valuationBase: defaultValuationBase,
		netValueBase:  defaultNetValueBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Quote fetches the realtime exchange quote for a fund.
func (c *Client) Quote(ctx context.Context, code string) (*model.Quote, error) {
	tencentCode := MarketPrefix(code) + code
	reqURL := fmt.Sprintf("%s/q=%s&_t=%d", c.quoteBase, tencentCode, time.Now().UnixMilli())

	body, err := c.get(ctx, reqURL, nil)
	if err != nil {
		return nil, err
	}

	return ParseQuoteLine(code, string(body))
}

// Valuation fetches the intraday valuation estimate for a fund: the gsz
// estimate during trading hours and the last published unit value (dwjz).
func (c *Client) Valuation(ctx context.Context, code string) (*Valuation, error) {
	reqURL := fmt.Sprintf("%s/js/%s.js?rt=%d", c.valuationBase, url.PathEscape(code), time.Now().UnixMilli())

	body, err := c.get(ctx, reqURL, nil)
	if err != nil {
		return nil, err
	}

	return ParseValuation(string(body))
}

// IOPV returns the current reference value for arbitrage: the intraday
// estimate when available, otherwise the last published net value. Nil when
// the provider has neither.
func (c *Client) IOPV(ctx context.Context, code string) (*float64, error) {
	v, err := c.Valuation(ctx, code)
	if err != nil {
		return nil, err
	}
	if v.Estimate != nil {
		return v.Estimate, nil
	}
	return v.Nav, nil
}

// NetValue looks up the published daily net value governing the given date
// (YYYY-MM-DD). It returns (nil, nil) when that date's value is not yet
// published; when found, the returned ReferenceValue carries the actual
// publish date, which callers must use instead of the requested one.
func (c *Client) NetValue(ctx context.Context, code, date string) (*model.ReferenceValue, error) {
	key := code + "@" + date
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.fetchNetValue(ctx, code, date)
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*model.ReferenceValue), nil
}

func (c *Client) fetchNetValue(ctx context.Context, code, date string) (*model.ReferenceValue, error) {
	reqURL := fmt.Sprintf(
		"%s/f10/lsjz?fundCode=%s&pageIndex=1&pageSize=20&startDate=%s&endDate=",
		c.netValueBase, url.QueryEscape(code), url.QueryEscape(date),
	)

	// The history endpoint rejects requests without a fund page referer.
	headers := map[string]string{"Referer": "https://fundf10.eastmoney.com/"}

	body, err := c.get(ctx, reqURL, headers)
	if err != nil {
		return nil, err
	}

	entries, err := ParseNetValueHistory(body)
	if err != nil {
		return nil, err
	}

	ref := SelectNetValue(entries, date)
	if ref == nil {
		return nil, nil
	}
	return ref, nil
}

// get executes a rate-limited GET and returns the raw body.
func (c *Client) get(ctx context.Context, reqURL string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	return io.ReadAll(resp.Body)
}

// MarketPrefix returns the exchange prefix for a fund code: sh for Shanghai
// (6/9), bj for Beijing (4/8), sz otherwise.
func MarketPrefix(code string) string {
	if code == "" {
		return "sz"
	}
	switch code[0] {
	case '6', '9':
		return "sh"
	case '4', '8':
		return "bj"
	default:
		return "sz"
	}
}

package vugraph

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/text/encoding/charmap"
)

const (
	DefaultBaseURL   = "https://clubs.vugraph.com/hosgoru"
	DefaultRateLimit = 200 * time.Millisecond
	UserAgent        = "vugraph-archive/1.0 (github.com/hosgoru/vugraph-archive)"
	Timeout          = 10 * time.Second

	retryInterval = time.Second
	maxRetries    = 1
)

// ErrNotFound reports a page the site says does not exist. Callers treat
// it as permanent and never retry the same item.
var ErrNotFound = errors.New("page not found")

// Client fetches Vugraph pages. It keeps a session cookie jar and spaces
// requests at least one rate-limit interval apart.
type Client struct {
	baseURL string
	client  *http.Client
	rate    time.Duration

	mu   sync.Mutex
	next time.Time
}

// NewClient creates a client for the given base URL. A zero rate limit
// falls back to the default 200ms spacing.
func NewClient(baseURL string, rate time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if rate <= 0 {
		rate = DefaultRateLimit
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: Timeout,
			Jar:     jar,
		},
		rate: rate,
	}
}

// get fetches a page and parses it as an ISO-8859-9 document. Transient
// failures (transport errors, 5xx) are retried once after a constant
// backoff; a 404 maps to ErrNotFound without a retry.
func (c *Client) get(ctx context.Context, page string, query url.Values) (*goquery.Document, error) {
	target := fmt.Sprintf("%s/%s?%s", c.baseURL, page, query.Encode())

	var doc *goquery.Document
	operation := func() error {
		if err := c.throttle(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", page, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%s: %w", target, ErrNotFound))
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("fetching %s: status %d", page, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("fetching %s: status %d", page, resp.StatusCode))
		}

		// The site labels its pages utf-8 but serves Turkish legacy bytes.
		decoded := charmap.ISO8859_9.NewDecoder().Reader(resp.Body)
		doc, err = goquery.NewDocumentFromReader(decoded)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("parsing %s: %w", page, err))
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return doc, nil
}

// throttle blocks until the next request slot, honouring context
// cancellation while waiting.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	wait := c.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	c.next = now.Add(wait + c.rate)
	c.mu.Unlock()

	if wait == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// queryParam pulls a single query parameter out of a relative URL such as
// the href and onclick targets embedded in the result tables.
func queryParam(rawURL, key string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get(key)
}

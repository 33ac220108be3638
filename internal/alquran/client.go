package alquran

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"
)

// Client defaults, also used as the configuration defaults.
const (
	DefaultBaseURL    = "http://api.alquran.cloud/v1"
	DefaultTimeout    = 10 * time.Second
	DefaultRetries    = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

const (
	userAgent = "ayah/1.0"

	// Responses larger than this are not ayah responses.
	maxBodyBytes = 1 << 20
)

// Client fetches single ayahs from the AlQuran.cloud API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    uint64
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each HTTP attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetries sets how many times a transient failure is retried and the
// fixed delay between attempts.
func WithRetries(retries int, delay time.Duration) Option {
	return func(c *Client) {
		if retries < 0 {
			retries = 0
		}
		c.retries = uint64(retries)
		c.retryDelay = delay
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		retries:    DefaultRetries,
		retryDelay: DefaultRetryDelay,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request names the editions to fetch for one verse key ("2:255").
// An empty edition skips that fetch.
type Request struct {
	Key                string
	ArabicEdition      string
	TranslationEdition string
}

// Payload holds the raw response bodies of a Request.
type Payload struct {
	Arabic      []byte
	Translation []byte
}

// Fetch issues the Arabic and translation requests described by req.
// Any failure aborts the whole fetch; there is no partial Payload.
func (c *Client) Fetch(ctx context.Context, req Request) (Payload, error) {
	var p Payload

	if req.ArabicEdition != "" {
		edition := req.ArabicEdition
		if edition == DefaultArabicEdition {
			edition = ""
		}
		body, err := c.FetchAyah(ctx, req.Key, edition)
		if err != nil {
			return Payload{}, err
		}
		p.Arabic = body
	}

	if req.TranslationEdition != "" {
		body, err := c.FetchAyah(ctx, req.Key, req.TranslationEdition)
		if err != nil {
			return Payload{}, fmt.Errorf("translation %s: %w", req.TranslationEdition, err)
		}
		p.Translation = body
	}

	return p, nil
}

// FetchAyah fetches one ayah and returns the validated JSON body.
// An empty edition requests the API's default Arabic text.
func (c *Client) FetchAyah(ctx context.Context, key, edition string) ([]byte, error) {
	// Build the API URL
	apiURL := c.baseURL + "/ayah/" + url.PathEscape(key)
	if edition != "" {
		apiURL += "/" + url.PathEscape(edition)
	}

	delay := c.retryDelay
	if delay <= 0 {
		delay = time.Millisecond
	}
	backoff := retry.WithMaxRetries(c.retries, retry.NewConstant(delay))

	var body []byte
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		var err error
		body, err = c.get(ctx, apiURL)
		if err == nil {
			return nil
		}
		if transient(err) {
			c.logger.Warn("ayah request failed", "url", apiURL, "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if _, err := ParseAyah(body); err != nil {
		return nil, err
	}

	c.logger.Debug("fetched ayah", "url", apiURL, "attempts", attempt, "bytes", len(body))
	return body, nil
}

func (c *Client) get(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: failed to fetch verse: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode), URL: apiURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrNetwork, err)
	}

	return body, nil
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"localmart/internal/config"
	"localmart/internal/logger"
	"localmart/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TokenSource supplies the bearer token attached to authenticated calls.
// An empty token means the call goes out anonymously.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Validator is implemented by response schemas that check their own shape
// right after decoding, so callers never see a half-populated value.
type Validator interface {
	Validate() error
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	limiter    *limiter
	stats      metrics.APIStats
}

type Option func(*Client)

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithHTTPClient replaces the underlying client. Its transport is used as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = newLimiter(rate.Limit(perSecond), burst) }
}

// ----------------- Constructor -----------------

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: logger.NewTransport(http.DefaultTransport),
		},
		limiter: newLimiter(10, 20),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func NewFromConfig(cfg *config.Config, tokens TokenSource) (*Client, error) {
	return New(cfg.APIBaseURL,
		WithTokenSource(tokens),
		WithRateLimit(cfg.APIRateLimit, cfg.APIRateBurst),
		WithHTTPClient(&http.Client{
			Timeout:   cfg.APITimeout,
			Transport: logger.NewTransport(http.DefaultTransport),
		}),
	)
}

func (c *Client) Stats() metrics.Snapshot {
	return c.stats.Snapshot()
}

// ----------------- Verbs -----------------

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ----------------- Do -----------------

// Do sends one request. A nil out discards the response body; otherwise the
// body is decoded into out and validated if out implements Validator.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, _ = logger.EnsureRequestID(ctx)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "api"),
		zap.String("method", method),
		zap.String("path", path),
	)

	waited, err := c.limiter.wait(ctx, method, path)
	if waited {
		c.stats.Throttled.Inc()
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Error("failed to marshal request", zap.Error(err))
			return err
		}
		reader = bytes.NewReader(jsonBody)
	}

	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key := IdempotencyKeyFrom(ctx); key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			log.Warn("token unavailable, sending anonymously", zap.Error(err))
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.stats.Requests.Inc()
	timer := metrics.StartTimer()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.stats.Failures.Inc()
		log.Error("request failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	c.stats.Latency.Observe(timer.Duration())
	if err != nil {
		c.stats.Failures.Inc()
		log.Error("failed to read response body", zap.Error(err))
		return fmt.Errorf("%w: read response: %w", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Status:  resp.StatusCode,
			Message: errorMessage(bodyBytes),
			Body:    bodyBytes,
		}
		if resp.StatusCode == http.StatusConflict {
			c.stats.Conflicts.Inc()
			log.Info("server reported conflict", zap.String("message", apiErr.Message))
		} else {
			c.stats.Failures.Inc()
			log.Warn("server returned non-success status",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("response", bodyBytes),
			)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		c.stats.Failures.Inc()
		return fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		c.stats.Failures.Inc()
		log.Error("failed decoding response", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			c.stats.Failures.Inc()
			log.Error("response failed schema validation", zap.Error(err))
			return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
	}
	return nil
}

// errorMessage pulls the human message out of an error body. The server uses
// {"message": "..."} for most endpoints and {"error": "..."} for auth.
func errorMessage(body []byte) string {
	var eb struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}

type ctxKey string

const idempotencyKey ctxKey = "idempotency_key"

// WithIdempotencyKey marks requests made with ctx so a retried submission is
// recognised by the server.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey, key)
}

func IdempotencyKeyFrom(ctx context.Context) string {
	v, _ := ctx.Value(idempotencyKey).(string)
	return v
}

// Required is a small helper for Validate implementations: it names every
// blank field.
func Required(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.New("missing fields: " + strings.Join(sortStrings(missing), ", "))
}

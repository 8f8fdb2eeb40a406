package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"localmart/internal/config"
	"localmart/internal/logger"

	"go.uber.org/zap"
)

// Maps is the mapping provider as seen by the picker. Initialize starts the
// provider once; Ready is closed when it has either come up or given up, after
// which Err tells which.
type Maps interface {
	Initialize(ctx context.Context)
	Ready() <-chan struct{}
	Err() error
	Geocode(ctx context.Context, query string) (Place, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (Place, error)
}

const apiKeyHeader = "X-Api-Key"

// HTTPMaps talks to a geocoding service over HTTP.
type HTTPMaps struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	initTimeout  time.Duration
	firstBackoff time.Duration
	maxBackoff   time.Duration

	once  sync.Once
	ready chan struct{}
	err   error
}

type Option func(*HTTPMaps)

func WithHTTPClient(hc *http.Client) Option {
	return func(m *HTTPMaps) { m.httpClient = hc }
}

// WithInitTimeout bounds how long Initialize keeps probing.
func WithInitTimeout(d time.Duration) Option {
	return func(m *HTTPMaps) { m.initTimeout = d }
}

// WithBackoff sets the first and the largest delay between readiness probes.
func WithBackoff(first, max time.Duration) Option {
	return func(m *HTTPMaps) {
		m.firstBackoff = first
		m.maxBackoff = max
	}
}

func NewHTTPMaps(baseURL, apiKey string, opts ...Option) (*HTTPMaps, error) {
	if baseURL == "" {
		return nil, ErrNotConfigured
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid maps base URL %q", baseURL)
	}

	m := &HTTPMaps{
		baseURL: u,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: logger.NewTransport(http.DefaultTransport),
		},
		initTimeout:  10 * time.Second,
		firstBackoff: 200 * time.Millisecond,
		maxBackoff:   2 * time.Second,
		ready:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func NewFromConfig(cfg *config.Config) (*HTTPMaps, error) {
	return NewHTTPMaps(cfg.MapsBaseURL, cfg.MapsAPIKey, WithInitTimeout(cfg.MapsInitTimeout))
}

// Initialize probes GET /status in the background until it answers 200 or
// the init timeout passes. Only the first call does anything.
func (m *HTTPMaps) Initialize(ctx context.Context) {
	m.once.Do(func() {
		go m.probe(ctx)
	})
}

func (m *HTTPMaps) Ready() <-chan struct{} {
	return m.ready
}

// Err is nil until Ready is closed, then reports whether startup failed.
func (m *HTTPMaps) Err() error {
	select {
	case <-m.ready:
		return m.err
	default:
		return nil
	}
}

func (m *HTTPMaps) probe(ctx context.Context) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "geo"),
		zap.String("method", "Initialize"),
	)

	ctx, cancel := context.WithTimeout(ctx, m.initTimeout)
	defer cancel()

	delay := m.firstBackoff
	for attempt := 1; ; attempt++ {
		err := m.status(ctx)
		if err == nil {
			log.Info("map service ready", zap.Int("attempts", attempt))
			close(m.ready)
			return
		}
		log.Debug("map service not ready", zap.Int("attempt", attempt), zap.Error(err))

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			m.err = fmt.Errorf("%w: %w", ErrInitTimeout, err)
			log.Warn("map service unavailable", zap.Error(m.err))
			close(m.ready)
			return
		case <-t.C:
		}

		delay *= 2
		if delay > m.maxBackoff {
			delay = m.maxBackoff
		}
	}
}

func (m *HTTPMaps) status(ctx context.Context) error {
	resp, err := m.get(ctx, "/status", nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (r searchResult) place() (Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("bad latitude %q", r.Lat)
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("bad longitude %q", r.Lon)
	}
	return Place{Address: r.DisplayName, Lat: lat, Lng: lng}, nil
}

// Geocode returns the best match for a free-text query.
func (m *HTTPMaps) Geocode(ctx context.Context, query string) (Place, error) {
	if err := m.usable(); err != nil {
		return Place{}, err
	}

	var results []searchResult
	if err := m.getJSON(ctx, "/search", url.Values{"q": {query}, "format": {"json"}, "limit": {"1"}}, &results); err != nil {
		return Place{}, err
	}
	if len(results) == 0 {
		return Place{}, fmt.Errorf("%w: %q", ErrNoResult, query)
	}
	return results[0].place()
}

// ReverseGeocode turns a marker position back into an address.
func (m *HTTPMaps) ReverseGeocode(ctx context.Context, lat, lng float64) (Place, error) {
	if err := m.usable(); err != nil {
		return Place{}, err
	}

	var result struct {
		searchResult
		Error string `json:"error"`
	}
	q := url.Values{
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":    {strconv.FormatFloat(lng, 'f', -1, 64)},
		"format": {"json"},
	}
	if err := m.getJSON(ctx, "/reverse", q, &result); err != nil {
		return Place{}, err
	}
	if result.Error != "" || result.DisplayName == "" {
		return Place{}, ErrNoResult
	}
	// Keep the exact marker position; the service snaps to the nearest address.
	return Place{Address: result.DisplayName, Lat: lat, Lng: lng}, nil
}

func (m *HTTPMaps) usable() error {
	select {
	case <-m.ready:
		return m.err
	default:
		return ErrNotReady
	}
}

func (m *HTTPMaps) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	u := m.baseURL.JoinPath(path)
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if m.apiKey != "" {
		req.Header.Set(apiKeyHeader, m.apiKey)
	}
	return m.httpClient.Do(req)
}

func (m *HTTPMaps) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	resp, err := m.get(ctx, path, q)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(fmt.Errorf("maps %s: bad response", path), err)
	}
	return nil
}

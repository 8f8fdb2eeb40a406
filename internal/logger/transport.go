package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RequestIDHeader is propagated on every outbound call so server logs can be
// correlated with ours.
const RequestIDHeader = "X-Request-ID"

// Transport is an http.RoundTripper that stamps a request id and logs each
// outbound request with its status and duration.
type Transport struct {
	Base http.RoundTripper
}

func NewTransport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base}
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	ctx, reqID := EnsureRequestID(r.Context())
	if r.Header.Get(RequestIDHeader) == "" {
		// RoundTrippers must not mutate the caller's request.
		r = r.Clone(ctx)
		r.Header.Set(RequestIDHeader, reqID)
	}

	log := FromCtx(ctx).With(
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	resp, err := t.Base.RoundTrip(r)
	if err != nil {
		log.Warn("outbound request failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Info("outbound request",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

package httpclient

import (
	"net/http"
	"time"

	"parcel-tracker/internal/core/logger"

	"go.uber.org/zap"
)

// LoggingRoundTripper logs every outgoing carrier request with its duration
// and result. Carrier APIs are undocumented and flaky; the debug trail is how
// broken lookups get diagnosed.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper that executes the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs its outcome.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	logger.Get().Debug("Carrier request started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("Carrier request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("Carrier request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware and the given
// timeout. All REST carrier adapters share one of these; timeouts live here,
// not in adapter logic.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
		},
		Timeout: timeout,
	}
}

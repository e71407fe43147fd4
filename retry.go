package client

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	apierrors "github.com/leafkeeper/leafkeeper-client/internal/errors"
)

// retryTransport re-sends GET and HEAD requests after network errors and
// recoverable statuses (408, 429, 5xx). Other methods pass straight through.
type retryTransport struct {
	base        http.RoundTripper
	maxAttempts int
	initial     time.Duration
}

func (rt *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return rt.base.RoundTrip(req)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = rt.initial
	exp.Multiplier = 2
	exp.MaxInterval = 5 * time.Second
	exp.MaxElapsedTime = 0 // bounded by maxAttempts
	exp.Reset()

	ctx := req.Context()
	for attempt := 1; ; attempt++ {
		resp, err := rt.base.RoundTrip(req)
		if !shouldRetry(resp, err) || attempt >= rt.maxAttempts {
			return resp, err
		}
		if ctx.Err() != nil {
			return resp, err
		}
		if resp != nil {
			// Drain so the connection can be reused.
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}

		wait := exp.NextBackOff()
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).
			Int("attempt", attempt).Dur("wait", wait).Str("cause", retryCause(resp, err)).
			Msg("retrying request")
		retriesTotal.WithLabelValues(req.Method).Inc()

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp.StatusCode >= 400 &&
		apierrors.ClassifyHTTPStatus(resp.StatusCode) == apierrors.Recoverable
}

func retryCause(resp *http.Response, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

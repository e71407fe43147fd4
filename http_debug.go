package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const redactedAuth = "Bearer [REDACTED]"

// debugTransport logs each exchange at debug level, tagged with the
// X-Request-Id stamped by tokenTransport.
//
// Enable it with WithDebugLogging(true), LEAFKEEPER_DEBUG=true or
// DEBUG=true. The Authorization header is redacted; request and response
// bodies are logged as sent, except multipart uploads.
//
//	export LEAFKEEPER_DEBUG=true
//	plantctl plants list  # every HTTP exchange is logged
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := log.With().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("request_id", req.Header.Get("X-Request-Id")).
		Logger()

	if dump, err := dumpRequest(req); err == nil {
		logger.Debug().Str("request_dump", dump).Msg("HTTP request")
	}

	start := time.Now()
	resp, err := dt.base.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("HTTP request failed")
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		logger.Debug().Int("status_code", resp.StatusCode).Dur("elapsed", elapsed).
			Str("response_dump", string(dump)).Msg("HTTP response")
	}
	return resp, nil
}

// dumpRequest renders req with its bearer token masked. A dumped body is
// handed back to req so it can still be sent.
func dumpRequest(req *http.Request) (string, error) {
	shown := *req
	shown.Header = req.Header.Clone()
	if shown.Header.Get("Authorization") != "" {
		shown.Header.Set("Authorization", redactedAuth)
	}
	withBody := !strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/")
	dump, err := httputil.DumpRequestOut(&shown, withBody)
	if withBody {
		req.Body = shown.Body
	}
	return string(dump), err
}

// debugLoggingRequested reports whether LEAFKEEPER_DEBUG or DEBUG is set to
// "true" (case-sensitive).
func debugLoggingRequested() bool {
	return os.Getenv("LEAFKEEPER_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

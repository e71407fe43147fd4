package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLogs routes the global logger into a buffer at debug level.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func TestDebugTransport_RedactsBearerToken(t *testing.T) {
	buf := captureLogs(t)

	var gotAuth, gotBody string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		return okResponse(r, http.StatusOK, `{"ok":true}`), nil
	})
	dt := &debugTransport{base: rt}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://example.com/reminders", strings.NewReader(`{"name":"Water"}`))
	req.Header.Set("Authorization", "Bearer s3cret-token")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", "req-1")
	resp, err := dt.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	_ = resp.Body.Close()

	if gotAuth != "Bearer s3cret-token" {
		t.Fatalf("the real token must still be sent, got %q", gotAuth)
	}
	if gotBody != `{"name":"Water"}` {
		t.Fatalf("body lost after dumping: %q", gotBody)
	}
	logs := buf.String()
	if strings.Contains(logs, "s3cret-token") {
		t.Fatalf("token leaked into debug log: %s", logs)
	}
	if !strings.Contains(logs, "[REDACTED]") || !strings.Contains(logs, "req-1") {
		t.Fatalf("expected redacted header and request id in log: %s", logs)
	}
	if !strings.Contains(logs, `Water`) {
		t.Fatalf("expected request body in dump: %s", logs)
	}
}

func TestDebugTransport_SkipsMultipartBody(t *testing.T) {
	buf := captureLogs(t)

	var gotBody string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		return okResponse(r, http.StatusCreated, `{}`), nil
	})
	dt := &debugTransport{base: rt}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://example.com/plants", strings.NewReader("JPEGDATA"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	resp, err := dt.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	_ = resp.Body.Close()

	if gotBody != "JPEGDATA" {
		t.Fatalf("upload body not forwarded: %q", gotBody)
	}
	if strings.Contains(buf.String(), "JPEGDATA") {
		t.Fatalf("multipart body should not be dumped: %s", buf.String())
	}
}

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewHTTPError_MessagePriority(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message wins", `{"message":"User notfound","error":"Not Found"}`, "User notfound"},
		{"error when message empty", `{"message":"","error":"Bad token"}`, "Bad token"},
		{"error only", `{"error":"Bad token"}`, "Bad token"},
		{"non-string message skipped", `{"message":42,"error":"boom"}`, "boom"},
		{"neither", `{"code":500}`, FallbackMessage},
		{"not json", `<html>oops</html>`, FallbackMessage},
		{"empty body", ``, FallbackMessage},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got := NewHTTPError(400, []byte(c.body))
			if got.Message != c.want {
				t.Fatalf("message = %q, want %q", got.Message, c.want)
			}
			if got.Error() != c.want {
				t.Fatalf("Error() = %q, want %q", got.Error(), c.want)
			}
		})
	}
}

func TestClassifyHTTPStatus(t *testing.T) {
	t.Parallel()
	cases := map[int]ErrorCategory{
		400: Irrecoverable,
		401: Irrecoverable,
		404: Irrecoverable,
		408: Recoverable,
		429: Recoverable,
		500: Recoverable,
		503: Recoverable,
	}
	for status, want := range cases {
		if got := ClassifyHTTPStatus(status); got != want {
			t.Fatalf("status %d: got %s want %s", status, got, want)
		}
	}
}

func TestIsIrrecoverable(t *testing.T) {
	t.Parallel()
	if !IsIrrecoverable(NewHTTPError(404, nil)) {
		t.Fatal("404 should be irrecoverable")
	}
	if IsIrrecoverable(NewHTTPError(502, nil)) {
		t.Fatal("502 should be recoverable")
	}
	wrapped := fmt.Errorf("get plant: %w", NewHTTPError(403, nil))
	if !IsIrrecoverable(wrapped) {
		t.Fatal("wrapped 403 should be irrecoverable")
	}
	if IsIrrecoverable(errors.New("dial tcp: refused")) {
		t.Fatal("plain errors are not classified")
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()
	if !IsNotFoundMessage("User notfound") || !IsNotFoundMessage("PROXY NOTFOUND") {
		t.Fatal("expected notfound match")
	}
	if IsNotFoundMessage("not found") {
		t.Fatal("spaced wording is not the backend's notfound marker")
	}
	if IsNotFound(nil) {
		t.Fatal("nil is not a notfound error")
	}
	if !IsNotFound(fmt.Errorf("list proxies: %w", NewHTTPError(404, []byte(`{"message":"Proxy notfound"}`)))) {
		t.Fatal("expected wrapped notfound")
	}
}

func TestInvalidResponse(t *testing.T) {
	t.Parallel()
	err := InvalidResponse("missing %s", "token")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatal("expected ErrInvalidResponse")
	}
	if err.Error() != "invalid response: missing token" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

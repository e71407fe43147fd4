package errors

import (
	"encoding/json"
	"strings"
)

// ClassifyHTTPStatus maps HTTP status codes to error categories.
// 4xx client errors are irrecoverable except 408 and 429; 5xx are
// recoverable.
func ClassifyHTTPStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		return Recoverable
	}
}

// NewHTTPError builds an APIError from a failed response. The message is
// the first non-empty string among the body's "message" and "error" fields,
// falling back to FallbackMessage. A body that is not a JSON object also
// yields the fallback.
func NewHTTPError(statusCode int, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    extractMessage(body),
		Body:       string(body),
		Category:   ClassifyHTTPStatus(statusCode),
	}
}

func extractMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return FallbackMessage
	}
	for _, key := range []string{"message", "error"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return FallbackMessage
}

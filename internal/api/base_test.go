package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	apierrors "github.com/leafkeeper/leafkeeper-client/internal/errors"
	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

func TestRequesterDo_SendsJSON(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPatch {
			t.Fatalf("expected PATCH, got %s", req.Method)
		}
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type: %q", ct)
		}
		var got map[string]string
		if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if got["a"] != "b" {
			t.Fatalf("unexpected body: %v", got)
		}
		respond(w, http.StatusOK, `{"ok":true}`)
	})

	var out struct {
		OK bool `json:"ok"`
	}
	if err := r.Patch(context.Background(), "/x", map[string]string{"a": "b"}, &out); err != nil {
		t.Fatalf("Patch error: %v", err)
	}
	if !out.OK {
		t.Fatal("expected decoded body")
	}
}

func TestRequesterDo_GetHasJSONContentTypeAndNoBody(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type: %q", ct)
		}
		if req.ContentLength > 0 {
			t.Fatalf("GET should carry no body")
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := r.Get(context.Background(), "/x", &struct{}{}); err != nil {
		t.Fatalf("Get error: %v", err)
	}
}

func TestRequesterDo_ErrorMessagePriority(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message wins", http.StatusBadRequest, `{"message":"bad input","error":"ignored"}`, "bad input"},
		{"error fallback", http.StatusUnauthorized, `{"error":"token expired"}`, "token expired"},
		{"empty message skipped", http.StatusConflict, `{"message":"","error":"dup"}`, "dup"},
		{"neither", http.StatusInternalServerError, `{}`, apierrors.FallbackMessage},
		{"non-json", http.StatusBadGateway, `<html>oops</html>`, apierrors.FallbackMessage},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			r := newTestRequester(t, func(w http.ResponseWriter, _ *http.Request) {
				respond(w, c.status, c.body)
			})
			err := r.Get(context.Background(), "/x", nil)
			var apiErr *apierrors.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Message != c.want || apiErr.StatusCode != c.status {
				t.Fatalf("got %d %q, want %d %q", apiErr.StatusCode, apiErr.Message, c.status, c.want)
			}
			if err.Error() != c.want {
				t.Fatalf("Error() = %q", err.Error())
			}
		})
	}
}

func TestRequesterDo_MalformedSuccessBody(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, `not json`)
	})
	var out map[string]any
	err := r.Get(context.Background(), "/x", &out)
	if !errors.Is(err, apierrors.ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestRequesterDo_TransportErrorBubbles(t *testing.T) {
	t.Parallel()
	r := NewRequester(&http.Client{Transport: &errRT{}}, "http://example.invalid/")
	err := r.Get(context.Background(), "/x", nil)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected transport error, got %v", err)
	}
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		t.Fatal("transport error must not be an APIError")
	}
}

func TestRequesterDo_CancelledContext(t *testing.T) {
	t.Parallel()
	var called atomic.Bool
	r := newTestRequester(t, func(w http.ResponseWriter, _ *http.Request) {
		called.Store(true)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Get(ctx, "/x", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called.Load() {
		t.Fatal("request should not reach the server")
	}
}

func TestRequesterUpload_MultipartWithoutJSONContentType(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, func(w http.ResponseWriter, req *http.Request) {
		ct := req.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
			t.Fatalf("unexpected content type: %q", ct)
		}
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if req.FormValue("k") != "v" {
			t.Fatalf("missing field")
		}
		f, hdr, err := req.FormFile("photo")
		if err != nil {
			t.Fatalf("missing file: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "leaf.jpg" || hdr.Header.Get("Content-Type") != "image/jpeg" {
			t.Fatalf("unexpected file header: %+v", hdr.Header)
		}
		respond(w, http.StatusCreated, `{}`)
	})
	form := Form{
		Fields:    []FormField{{Name: "k", Value: "v"}},
		FileField: "photo",
		File:      &types.File{Name: "leaf.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("jpeg")},
	}
	if err := r.Upload(context.Background(), "/up", form, nil); err != nil {
		t.Fatalf("Upload error: %v", err)
	}
}

func TestParamsValues_OmitsUnsetAndRendersBools(t *testing.T) {
	t.Parallel()
	yes, no := true, false
	page := 3
	var unset *bool
	got := Query(ParamsValues(types.Params{
		"indoor":  &yes,
		"edible":  no,
		"page":    &page,
		"q":       "",
		"cycle":   nil,
		"missing": unset,
		"order":   "asc",
	}))
	want := "?edible=false&indoor=true&order=asc&page=3"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if q := Query(ParamsValues(nil)); q != "" {
		t.Fatalf("empty params should render no query, got %q", q)
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	apierrors "github.com/leafkeeper/leafkeeper-client/internal/errors"
	"github.com/leafkeeper/leafkeeper-client/internal/types"
)

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Requester issues every REST call against one base URL. Authentication
// headers are added by the transport of HTTP, not here.
type Requester struct {
	HTTP    HTTPClient
	BaseURL string
}

// NewRequester trims trailing slashes from baseURL.
func NewRequester(httpClient HTTPClient, baseURL string) *Requester {
	return &Requester{HTTP: httpClient, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Do sends body as JSON (when non-nil) and decodes a non-empty response into
// out (when non-nil). Non-2xx responses return *errors.APIError.
func (r *Requester) Do(ctx context.Context, method, endpoint string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return r.send(req, out)
}

// Get issues a GET request.
func (r *Requester) Get(ctx context.Context, endpoint string, out any) error {
	return r.Do(ctx, http.MethodGet, endpoint, nil, out)
}

// Post issues a POST request.
func (r *Requester) Post(ctx context.Context, endpoint string, body, out any) error {
	return r.Do(ctx, http.MethodPost, endpoint, body, out)
}

// Put issues a PUT request.
func (r *Requester) Put(ctx context.Context, endpoint string, body, out any) error {
	return r.Do(ctx, http.MethodPut, endpoint, body, out)
}

// Patch issues a PATCH request.
func (r *Requester) Patch(ctx context.Context, endpoint string, body, out any) error {
	return r.Do(ctx, http.MethodPatch, endpoint, body, out)
}

// Delete issues a DELETE request.
func (r *Requester) Delete(ctx context.Context, endpoint string, out any) error {
	return r.Do(ctx, http.MethodDelete, endpoint, nil, out)
}

// FormField is a text part of a multipart form.
type FormField struct {
	Name  string
	Value string
}

// Form is a multipart/form-data body with at most one file part.
type Form struct {
	Fields    []FormField
	FileField string
	File      *types.File
}

// Upload posts form as multipart/form-data. The Content-Type header carries
// the boundary chosen by the multipart writer.
func (r *Requester) Upload(ctx context.Context, endpoint string, form Form, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range form.Fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return err
		}
	}
	if form.File != nil && form.File.Reader != nil {
		field := form.FileField
		if field == "" {
			field = "file"
		}
		if err := writeFilePart(mw, field, form.File); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return r.send(req, out)
}

func writeFilePart(mw *multipart.Writer, field string, f *types.File) error {
	name := f.Name
	if name == "" {
		name = "upload"
	}
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f.Reader)
	return err
}

func (r *Requester) send(req *http.Request, out any) error {
	resp, err := r.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierrors.NewHTTPError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apierrors.InvalidResponse("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return nil
}

// ------------------------------
// Query strings
// ------------------------------

// Query renders values as "?k=v&..." with sorted keys, or "" when empty.
func Query(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// ParamsValues converts params to url.Values. Nil values, nil pointers and
// empty strings are omitted; booleans render as true/false.
func ParamsValues(params types.Params) url.Values {
	v := url.Values{}
	for k, val := range params {
		if s, ok := paramString(val); ok {
			v.Set(k, s)
		}
	}
	return v
}

func paramString(val any) (string, bool) {
	switch x := val.(type) {
	case nil:
		return "", false
	case string:
		return x, x != ""
	case *string:
		if x == nil {
			return "", false
		}
		return *x, *x != ""
	case bool:
		return strconv.FormatBool(x), true
	case *bool:
		if x == nil {
			return "", false
		}
		return strconv.FormatBool(*x), true
	case int:
		return strconv.Itoa(x), true
	case *int:
		if x == nil {
			return "", false
		}
		return strconv.Itoa(*x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}

func pathID(id string) string {
	return url.PathEscape(id)
}

func requireID(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func invalid(what string, err error) error {
	return apierrors.InvalidResponse("%s: %v", what, err)
}

var errMissingClass = errors.New("missing predicted_class")

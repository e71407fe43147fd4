package devmode

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGateway struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestGateway(t *testing.T, opts ...Option) *testGateway {
	t.Helper()
	srv := httptest.NewServer(New(opts...).Handler())
	t.Cleanup(srv.Close)
	return &testGateway{t: t, srv: srv}
}

// do sends body as JSON and returns the status and raw response body.
func (tg *testGateway) do(method, path, token string, body any) (int, []byte) {
	tg.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(tg.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, tg.srv.URL+path, rd)
	require.NoError(tg.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := tg.srv.Client().Do(req)
	require.NoError(tg.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(tg.t, err)
	return resp.StatusCode, raw
}

func (tg *testGateway) register(email string) string {
	tg.t.Helper()
	status, raw := tg.do(http.MethodPost, "/login/register", "", map[string]string{
		"email": email, "password": "pw", "role": "gardener",
	})
	require.Equal(tg.t, http.StatusCreated, status, string(raw))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(tg.t, json.Unmarshal(raw, &out))
	return out.Token
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

func TestAuthFlow(t *testing.T) {
	tg := newTestGateway(t)

	status, raw := tg.do(http.MethodPost, "/login/register", "", map[string]string{"email": "fern@example.com", "password": "pw", "username": "fern"})
	require.Equal(t, http.StatusCreated, status)
	body := decode(t, raw)
	user := body["user"].(map[string]any)
	assert.NotEmpty(t, user["_id"])
	assert.Nil(t, user["id"], "user service only sends _id")

	status, _ = tg.do(http.MethodPost, "/login/register", "", map[string]string{"email": "FERN@example.com", "password": "x"})
	assert.Equal(t, http.StatusConflict, status)

	status, raw = tg.do(http.MethodPost, "/login/auth/login", "", map[string]string{"email": "fern@example.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", decode(t, raw)["message"])

	status, raw = tg.do(http.MethodPost, "/login/auth/login", "", map[string]string{"email": "fern@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, status)
	login := decode(t, raw)
	assert.NotContains(t, login, "user")
	token := login["token"].(string)

	status, raw = tg.do(http.MethodGet, "/user/users/"+user["_id"].(string), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fern", decode(t, raw)["user"].(map[string]any)["username"])

	status, raw = tg.do(http.MethodGet, "/user/users/nobody", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User notfound", decode(t, raw)["message"])

	status, _ = tg.do(http.MethodPost, "/login/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = tg.do(http.MethodGet, "/user-plant/v1/userPlants", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "logged-out token is revoked")
}

func TestTokenClaims(t *testing.T) {
	g := New()
	tok, err := g.IssueToken("u1", "a@b.c", "gardener")
	require.NoError(t, err)
	_, err = g.ValidateToken(tok)
	require.Error(t, err, "unknown user")

	other := New(WithSigningKey([]byte("other")))
	_, err = other.ValidateToken(tok)
	require.Error(t, err)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	tg := newTestGateway(t)
	for _, path := range []string{"/user-plant/v1/userPlants", "/reminder/reminder/v1/reminders", "/proxy/v1/proxys"} {
		status, _ := tg.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
	status, _ := tg.do(http.MethodGet, "/user-plant/v1/userPlants", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSpeciesCatalog(t *testing.T) {
	tg := newTestGateway(t)

	status, raw := tg.do(http.MethodGet, "/plants/v2/species-list?indoor=true&edible=true", "", nil)
	require.Equal(t, http.StatusOK, status)
	var page struct {
		Data []struct {
			ID         int    `json:"id"`
			CommonName string `json:"common_name"`
		} `json:"data"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Equal(t, 2, page.Total)
	assert.Equal(t, "Swiss Cheese Plant", page.Data[0].CommonName)
	assert.Equal(t, "Sweet Basil", page.Data[1].CommonName)

	_, raw = tg.do(http.MethodGet, "/plants/v2/species-list?q=monstera", "", nil)
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Data[0].ID)

	_, raw = tg.do(http.MethodGet, "/plants/v2/species-list?page=9", "", nil)
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Empty(t, page.Data)

	status, raw = tg.do(http.MethodGet, "/plants/v2/species/details/4", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Aloe Vera", decode(t, raw)["common_name"])

	status, raw = tg.do(http.MethodGet, "/plants/v2/species/details/404", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Species notfound", decode(t, raw)["message"])
}

func TestReminderContract(t *testing.T) {
	now := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC) // a Monday
	tg := newTestGateway(t, WithClock(func() time.Time { return now }))
	token := tg.register("rose@example.com")

	status, raw := tg.do(http.MethodPost, "/reminder/reminder/v1/reminder/create", token, map[string]any{"name": "Water"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing field notes", decode(t, raw)["message"])

	full := func(name string, dueAt any, days []int) map[string]any {
		return map[string]any{"name": name, "notes": nil, "dueAt": dueAt, "dueDay": days, "isActive": true, "isProxy": false, "proxy": nil}
	}
	status, raw = tg.do(http.MethodPost, "/reminder/reminder/v1/reminder/create", token, full("Water", "2025-03-03T09:00:00Z", []int{}))
	assert.Equal(t, http.StatusBadRequest, status, "only the wire date format is accepted")

	status, raw = tg.do(http.MethodPost, "/reminder/reminder/v1/reminder/create", token, full("Water ferns", "2025-03-03 09:00:00+00", []int{}))
	require.Equal(t, http.StatusCreated, status, string(raw))
	waterID := decode(t, raw)["reminder"].(map[string]any)["id"].(string)

	// Weekly on Wednesday at 07:00, next due in two days.
	status, _ = tg.do(http.MethodPost, "/reminder/reminder/v1/reminder/create", token, full("Mist orchids", "2025-03-01 07:00:00+00", []int{3}))
	require.Equal(t, http.StatusCreated, status)

	status, raw = tg.do(http.MethodGet, "/reminder/reminder/v1/reminders/due?windowSec=7200", token, nil)
	require.Equal(t, http.StatusOK, status)
	var due []map[string]any
	require.NoError(t, json.Unmarshal(raw, &due))
	require.Len(t, due, 1)
	assert.Equal(t, "Water ferns", due[0]["name"])

	_, raw = tg.do(http.MethodGet, "/reminder/reminder/v1/reminders/due?windowSec=259200", token, nil)
	require.NoError(t, json.Unmarshal(raw, &due))
	assert.Len(t, due, 2)

	status, raw = tg.do(http.MethodPut, "/reminder/reminder/v1/reminder?id="+waterID, token, map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, status)
	updated := decode(t, raw)
	assert.Equal(t, false, updated["isActive"])
	assert.Equal(t, "Water ferns", updated["name"])

	status, _ = tg.do(http.MethodDelete, "/reminder/reminder/v1/reminder/"+waterID, token, nil)
	require.Equal(t, http.StatusOK, status)
	status, raw = tg.do(http.MethodGet, "/reminder/reminder/v1/reminder?id="+waterID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Reminder notfound", decode(t, raw)["message"])
}

func TestProxiesEmptyIsUserNotFound(t *testing.T) {
	tg := newTestGateway(t)
	token := tg.register("ivy@example.com")

	status, raw := tg.do(http.MethodGet, "/proxy/v1/proxys", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User notfound", decode(t, raw)["message"])

	status, raw = tg.do(http.MethodPost, "/proxy/v1/proxy/create", token, map[string]string{"name": "Ann", "phone_number": "+65 81234567"})
	require.Equal(t, http.StatusCreated, status)
	id := decode(t, raw)["proxy"].(map[string]any)["id"].(string)

	status, raw = tg.do(http.MethodGet, "/proxy/v1/proxy/search?name=an", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode(t, raw)["proxys"], 1)

	status, raw = tg.do(http.MethodGet, "/proxy/v1/proxy/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "+65 81234567", decode(t, raw)["phone_number"])

	// Another user cannot see it.
	other := tg.register("moss@example.com")
	status, _ = tg.do(http.MethodGet, "/proxy/v1/proxy/"+id, other, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUserPlantMultipart(t *testing.T) {
	tg := newTestGateway(t)
	token := tg.register("basil@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("plantName", "Basil"))
	fw, err := mw.CreateFormFile("file", "basil.jpg")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("jpeg"))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, tg.srv.URL+"/user-plant/v1/userPlant/create", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := tg.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		UserPlant map[string]any `json:"userPlant"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Basil", created.UserPlant["plant_name"])
	assert.Contains(t, created.UserPlant["s3_id"], "basil.jpg")

	status, raw := tg.do(http.MethodGet, "/user-plant/search?query=bas", token, nil)
	require.Equal(t, http.StatusOK, status)
	var found []map[string]any
	require.NoError(t, json.Unmarshal(raw, &found))
	assert.Len(t, found, 1)
}

func TestPredictIsDeterministic(t *testing.T) {
	tg := newTestGateway(t)
	upload := func(content string) map[string]any {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", "leaf.jpg")
		require.NoError(t, err)
		_, _ = fw.Write([]byte(content))
		require.NoError(t, mw.Close())
		resp, err := tg.srv.Client().Post(tg.srv.URL+"/doctor/predict", mw.FormDataContentType(), &buf)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}
	first, second := upload("same photo"), upload("same photo")
	assert.Equal(t, first, second)
	assert.Contains(t, predictionClasses, first["predicted_class"])
	conf := first["confidence"].(float64)
	assert.True(t, conf >= 55 && conf < 100, "confidence %v", conf)
}

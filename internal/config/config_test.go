package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable New reads, with and without prefix.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"API_URL", "DIAGNOSIS_URL", "PLATFORM", "HTTP_TIMEOUT", "RETRY_MAX_ATTEMPTS", "LOG_LEVEL", "DATA_DIR", "DEBUG"} {
		for _, name := range []string{"LEAFKEEPER_" + k, k} {
			name := name
			if prev, ok := os.LookupEnv(name); ok {
				require.NoError(t, os.Unsetenv(name))
				t.Cleanup(func() { os.Setenv(name, prev) })
			}
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, DefaultDiagnosisURL, cfg.DiagnosisURL)
	assert.Equal(t, PlatformUnknown, cfg.Platform)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1, cfg.RetryMaxAttempts)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestNew_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEAFKEEPER_API_URL", "http://localhost:8080/")
	t.Setenv("LEAFKEEPER_DIAGNOSIS_URL", "http://127.0.0.1:5000")
	t.Setenv("LEAFKEEPER_PLATFORM", "android")
	t.Setenv("LEAFKEEPER_HTTP_TIMEOUT", "5s")
	t.Setenv("LEAFKEEPER_RETRY_MAX_ATTEMPTS", "3")
	t.Setenv("LEAFKEEPER_LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.2.2:8080", cfg.APIURL)
	assert.Equal(t, "http://10.0.2.2:5000", cfg.DiagnosisURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestNew_RejectsUnknownPlatform(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEAFKEEPER_PLATFORM", "symbian")
	_, err := New()
	require.Error(t, err)
}

func TestResolveBaseURL(t *testing.T) {
	cases := []struct {
		raw      string
		platform Platform
		want     string
	}{
		{"http://localhost:3000", PlatformAndroid, "http://10.0.2.2:3000"},
		{"https://127.0.0.1:8443/api/", PlatformAndroid, "https://10.0.2.2:8443/api"},
		{"http://localhost", PlatformAndroid, "http://10.0.2.2"},
		{"http://localhost:3000", PlatformIOS, "http://localhost:3000"},
		{"http://localhost:3000", PlatformUnknown, "http://localhost:3000"},
		{"https://gateway.example.com/", PlatformAndroid, "https://gateway.example.com"},
		{"http://192.168.1.20:3000", PlatformAndroid, "http://192.168.1.20:3000"},
	}
	for _, c := range cases {
		got, err := ResolveBaseURL(c.raw, c.platform)
		require.NoError(t, err, c.raw)
		assert.Equal(t, c.want, got, c.raw)
	}

	for _, bad := range []string{"", "localhost:3000/x", "/relative"} {
		_, err := ResolveBaseURL(bad, PlatformAndroid)
		assert.Error(t, err, bad)
	}
}

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threecommas/internal/infrastructure/config"
	"threecommas/internal/infrastructure/exchange/threecommas"
)

func writeConfig(t *testing.T, baseURL string, withKeys bool) string {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvAPISecret, "")
	t.Setenv(config.EnvBaseURL, "")

	dir := t.TempDir()
	keys := ""
	if withKeys {
		keys = "api_key = \"key\"\napi_secret = \"secret\"\n"
	}
	body := fmt.Sprintf(`[api]
base_url = %q
%s
[log]
level = "error"

[journal.sqlite]
enabled = true
path = %q
`, baseURL, keys, filepath.Join(dir, "calls.db"))

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&rootOptions{})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCallAndJournal(t *testing.T) {
	var gotURI, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI, gotMethod = r.RequestURI, r.Method
		_, _ = w.Write([]byte(`{"id":42}`))
	}))
	defer srv.Close()

	cfgPath := writeConfig(t, srv.URL, true)

	out, err := run(t, "--config", cfgPath, "call", threecommas.EndpointDealPanicSell, "deal_id=42")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/public/api/ver1/deals/42/panic_sell?deal_id=42", gotURI)
	assert.Contains(t, out, "HTTP 200")
	assert.Contains(t, out, `"id": 42`)

	out, err = run(t, "--config", cfgPath, "journal", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, threecommas.EndpointDealPanicSell)
	assert.Contains(t, out, "ok")
}

func TestCallWithoutCredentialsFails(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	cfgPath := writeConfig(t, srv.URL, false)

	out, err := run(t, "--config", cfgPath, "call", threecommas.EndpointAccounts)
	require.Error(t, err)
	assert.Contains(t, out, "missing api key or secret")
	assert.Zero(t, hits)
}

func TestCallRejectsMalformedParam(t *testing.T) {
	cfgPath := writeConfig(t, "http://127.0.0.1:1", true)
	_, err := run(t, "--config", cfgPath, "call", threecommas.EndpointGetBots, "limit")
	assert.ErrorContains(t, err, "want key=value")
}

func TestRawCommand(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfgPath := writeConfig(t, srv.URL, true)
	_, err := run(t, "--config", cfgPath, "raw", "get", "/public/api/ver1/accounts/market_list?", "a=1")
	require.NoError(t, err)
	assert.Equal(t, "/public/api/ver1/accounts/market_list?a=1", gotURI)
}

func TestEndpointsListsRoutes(t *testing.T) {
	cfgPath := writeConfig(t, "http://127.0.0.1:1", false)

	out, err := run(t, "--config", cfgPath, "endpoints")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, len(threecommas.DefaultRoutes())+1, len(lines))
	assert.Equal(t, "/public/api/v2/smart_trades?", routePath(out, threecommas.EndpointSmartTradesV2))

	out, err = run(t, "--config", cfgPath, "--v2", "endpoints")
	require.NoError(t, err)
	assert.Equal(t, threecommas.V2SmartTradesPath, routePath(out, threecommas.EndpointSmartTradesV2))
}

func routePath(table, name string) string {
	for _, line := range strings.Split(table, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == name {
			return fields[2]
		}
	}
	return ""
}

func TestSignCommand(t *testing.T) {
	cfgPath := writeConfig(t, "http://127.0.0.1:1", true)

	out, err := run(t, "--config", cfgPath, "sign", "/public/api/ver1/deals/42/panic_sell?", "deal_id=42")
	require.NoError(t, err)
	want := threecommas.NewCredentials("key", "secret").Sign("/public/api/ver1/deals/42/panic_sell?", "deal_id=42")
	assert.Equal(t, want+"\n", out)

	cfgPath = writeConfig(t, "http://127.0.0.1:1", false)
	_, err = run(t, "--config", cfgPath, "sign", "/x?")
	assert.Error(t, err)
}

func TestStreamRejectsUnknownChannel(t *testing.T) {
	cfgPath := writeConfig(t, "http://127.0.0.1:1", true)
	_, err := run(t, "--config", cfgPath, "stream", "orders")
	assert.ErrorContains(t, err, "unknown stream channel")
}

func callExamples(long string) [][]string {
	var out [][]string
	for _, line := range strings.Split(long, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 3 && fields[0] == "threecommas" && fields[1] == "call" {
			out = append(out, fields[1:])
		}
	}
	return out
}

func TestHelpCallExamplesRun(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfgPath := writeConfig(t, srv.URL, true)
	opts := &rootOptions{}
	examples := append(callExamples(newRootCmd(opts).Long), callExamples(newCallCmd(opts).Long)...)
	require.NotEmpty(t, examples)

	for _, ex := range examples {
		_, err := run(t, append([]string{"--config", cfgPath}, ex...)...)
		assert.NoError(t, err, strings.Join(ex, " "))
	}
	assert.Equal(t, len(examples), hits)
}

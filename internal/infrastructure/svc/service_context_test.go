package svc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threecommas/internal/domain/model"
	"threecommas/internal/infrastructure/config"
	"threecommas/internal/infrastructure/exchange/threecommas"
)

type discardSink struct{}

func (discardSink) WriteResult(string, int, []byte, error) error { return nil }
func (discardSink) WriteEvent(model.StreamEvent) error           { return nil }
func (discardSink) WriteRecords([]model.CallRecord) error        { return nil }

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvAPISecret, "")
	t.Setenv(config.EnvBaseURL, "")

	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	cfg.API.APIKey = "key"
	cfg.API.APISecret = "secret"
	return cfg
}

func TestServiceContextJournalsAndCounts(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.Journal.SQLite.Enabled = true
	cfg.Journal.SQLite.Path = filepath.Join(t.TempDir(), "calls.db")

	sc, err := New(context.Background(), cfg, WithSink(discardSink{}))
	require.NoError(t, err)
	defer sc.Close()

	res := sc.Client.Accounts(context.Background())
	require.True(t, res.OK())
	assert.Equal(t, "/public/api/ver1/accounts?", gotURI)

	recs, err := sc.Journal.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, threecommas.EndpointAccounts, recs[0].Endpoint)
	assert.Equal(t, model.OutcomeOK, recs[0].Outcome)

	assert.Equal(t, 1.0, testutil.ToFloat64(sc.Metrics.Requests.WithLabelValues(threecommas.EndpointAccounts, "GET", "ok")))
}

func TestServiceContextV2AndRouteOverrides(t *testing.T) {
	var uris []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uris = append(uris, r.RequestURI)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.API.V2 = true
	cfg.Routes = map[string]string{threecommas.EndpointAccounts: "/custom/accounts?"}

	sc, err := New(context.Background(), cfg, WithSink(discardSink{}), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	defer sc.Close()

	sc.Client.SmartTradesV2(context.Background(), nil)
	sc.Client.Accounts(context.Background())
	assert.Equal(t, []string{"/v2/smart_trades?", "/custom/accounts?"}, uris)

	recs, err := sc.Journal.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestServiceContextStorageFailure(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Journal.Redis.Enabled = true
	cfg.Journal.Redis.Addr = "127.0.0.1:1"

	_, err := New(context.Background(), cfg, WithSink(discardSink{}))
	assert.ErrorIs(t, err, ErrStorageInitFailed)
}

package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threecommas/internal/domain/model"
)

func TestAfterCallCountsByOutcome(t *testing.T) {
	c := NewCollector()
	ctx := context.Background()

	c.AfterCall(ctx, model.CallRecord{Endpoint: "accounts", Method: "GET", Outcome: model.OutcomeOK, Duration: 120 * time.Millisecond})
	c.AfterCall(ctx, model.CallRecord{Endpoint: "accounts", Method: "GET", Outcome: model.OutcomeOK, Duration: 80 * time.Millisecond})
	c.AfterCall(ctx, model.CallRecord{Endpoint: "bot_show", Method: "GET", Outcome: model.OutcomeMissingCredentials})
	c.AfterCall(ctx, model.CallRecord{Method: "GET", Outcome: model.OutcomeTransport})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Requests.WithLabelValues("accounts", "GET", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Requests.WithLabelValues("bot_show", "GET", "missing_credentials")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Requests.WithLabelValues("raw", "GET", "transport_error")))
	// accounts and raw series; bot_show never reached the network
	assert.Equal(t, 2, testutil.CollectAndCount(c.RequestDuration, "threecommas_request_duration_seconds"))
}

func TestObserveEvent(t *testing.T) {
	c := NewCollector()
	c.ObserveEvent(model.StreamEvent{Channel: "DealsChannel"})
	assert.Equal(t, 1.0, testutil.ToFloat64(c.StreamEvents.WithLabelValues("DealsChannel")))
}

func TestRouterServesMetricsAndHealth(t *testing.T) {
	c := NewCollector()
	c.AfterCall(context.Background(), model.CallRecord{Endpoint: "bot_show", Method: "GET", Outcome: model.OutcomeOK})

	srv := httptest.NewServer(c.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `threecommas_requests_total{endpoint="bot_show",method="GET",outcome="ok"} 1`)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

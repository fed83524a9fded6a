package metricsx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/backoffice/pkg/metricsx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestInstrument(t *testing.T) {
	m := metricsx.New("test")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := m.Instrument(mux)

	for _, p := range []string{"/users/a", "/users/b", "/nowhere"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	require.Contains(t, string(body), `test_http_requests_total{method="GET",route="GET /users/{id}",status="404"} 2`)
	require.Contains(t, string(body), `route="unmatched"`)
}

func TestAuthEvent(t *testing.T) {
	m := metricsx.New("test")
	m.AuthEvent("login", true)
	m.AuthEvent("login", false)
	m.AuthEvent("login", false)

	n, err := testutil.GatherAndCount(m.Registry(), "test_auth_events_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	var nilMetrics *metricsx.Metrics
	require.NotPanics(t, func() { nilMetrics.AuthEvent("login", true) })
}

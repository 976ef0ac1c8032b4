package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obras-api/internal/application/export"
	"github.com/jhoicas/obras-api/internal/application/usecase"
	"github.com/jhoicas/obras-api/internal/infrastructure/metrics"
)

var (
	_ usecase.UpsertObserver = (*metrics.Metrics)(nil)
	_ export.Observer        = (*metrics.Metrics)(nil)
)

func TestMetrics_ContadoresDeExportacionYUpsert(t *testing.T) {
	m := metrics.New("test")

	m.IntegrationUpsertFailed("household")
	m.IntegrationUpsertFailed("household")
	m.ExportFinished("both", 3, 1, 5, 2, 1500*time.Millisecond)

	n, err := testutil.GatherAndCount(m.Registry(), "test_integration_upsert_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "una serie por ámbito")

	n, err = testutil.GatherAndCount(m.Registry(), "test_exports_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_HandlerExponeFormatoTexto(t *testing.T) {
	m := metrics.New("test")
	m.ObserveRequest(http.MethodGet, "/api/sites", 200, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), `test_http_requests_total{method="GET",path="/api/sites",status="200"} 1`)
}

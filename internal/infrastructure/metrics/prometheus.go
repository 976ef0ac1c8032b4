// Package metrics expone contadores e histogramas Prometheus de la API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics colectores de la aplicación sobre un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	upsertFailures *prometheus.CounterVec

	exportsTotal       *prometheus.CounterVec
	exportDuration     prometheus.Histogram
	exportFailedSites  prometheus.Counter
	exportPhotos       prometheus.Counter
	exportSkippedPhoto prometheus.Counter
}

// New registra los colectores con el prefijo indicado ("obras" si vacío).
func New(prefix string) *Metrics {
	if prefix == "" {
		prefix = "obras"
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		upsertFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_integration_upsert_failures_total",
			Help: "Integration items skipped because the upsert failed",
		}, []string{"scope"}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_exports_total",
			Help: "Export archives generated",
		}, []string{"format"}),
		exportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    prefix + "_export_duration_seconds",
			Help:    "Time spent building an export archive",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		exportFailedSites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_export_failed_sites_total",
			Help: "Per-site workbooks that could not be generated",
		}),
		exportPhotos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_export_photos_total",
			Help: "Photos bundled into export archives",
		}),
		exportSkippedPhoto: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_export_skipped_photos_total",
			Help: "Photos skipped because the download failed",
		}),
	}
	reg.MustRegister(
		m.httpRequestsTotal, m.httpRequestDuration, m.upsertFailures,
		m.exportsTotal, m.exportDuration, m.exportFailedSites, m.exportPhotos, m.exportSkippedPhoto,
	)
	return m
}

// Registry registro subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler exposición en formato texto para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest registra una petición HTTP ya respondida.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// IntegrationUpsertFailed cuenta un elemento omitido del guardado de integraciones.
func (m *Metrics) IntegrationUpsertFailed(scope string) {
	m.upsertFailures.WithLabelValues(scope).Inc()
}

// ExportFinished resume una exportación.
func (m *Metrics) ExportFinished(format string, sites, failedSites, photos, skippedPhotos int, elapsed time.Duration) {
	m.exportsTotal.WithLabelValues(format).Inc()
	m.exportDuration.Observe(elapsed.Seconds())
	m.exportFailedSites.Add(float64(failedSites))
	m.exportPhotos.Add(float64(photos))
	m.exportSkippedPhoto.Add(float64(skippedPhotos))
}

package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/sassline/internal/core/ports"
)

const namespace = "sassline"

var _ ports.Metrics = (*PrometheusRecorder)(nil)

// PrometheusRecorder implements ports.Metrics with Prometheus collectors.
type PrometheusRecorder struct {
	cacheLookups   *prom.CounterVec
	cacheEvictions prom.Counter
	cacheEntries   prom.Gauge
	fetchDuration  *prom.HistogramVec
	outcomes       *prom.CounterVec
	renderDuration *prom.HistogramVec
}

// NewPrometheusRecorder creates the collectors and registers them on reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by result",
		}, []string{"result"}),
		cacheEvictions: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Entries removed by the eviction sweep",
		}),
		cacheEntries: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Number of cached documents",
		}),
		fetchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of workspace store fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "compile_outcomes_total",
			Help:      "Finished compile chains by outcome",
		}, []string{"outcome"}),
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of compiler invocations",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
	}

	reg.MustRegister(
		pr.cacheLookups,
		pr.cacheEvictions,
		pr.cacheEntries,
		pr.fetchDuration,
		pr.outcomes,
		pr.renderDuration,
	)

	return pr
}

// CacheLookup implements ports.Metrics.
func (p *PrometheusRecorder) CacheLookup(result string) {
	p.cacheLookups.WithLabelValues(result).Inc()
}

// CacheEvicted implements ports.Metrics.
func (p *PrometheusRecorder) CacheEvicted(n int) {
	p.cacheEvictions.Add(float64(n))
}

// CacheSize implements ports.Metrics.
func (p *PrometheusRecorder) CacheSize(n int) {
	p.cacheEntries.Set(float64(n))
}

// ObserveFetch implements ports.Metrics.
func (p *PrometheusRecorder) ObserveFetch(d time.Duration, ok bool) {
	p.fetchDuration.WithLabelValues(resultLabel(ok)).Observe(d.Seconds())
}

// CompileOutcome implements ports.Metrics.
func (p *PrometheusRecorder) CompileOutcome(kind string) {
	p.outcomes.WithLabelValues(kind).Inc()
}

// ObserveRender implements ports.Metrics.
func (p *PrometheusRecorder) ObserveRender(d time.Duration, ok bool) {
	p.renderDuration.WithLabelValues(resultLabel(ok)).Observe(d.Seconds())
}

func resultLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failed"
}

// HTTPHandler serves the metrics registered on reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

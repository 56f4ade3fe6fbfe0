package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sassline/internal/adapters/metrics"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := metrics.NewPrometheusRecorder(reg)

	pr.CacheLookup("hit")
	pr.CacheLookup("hit")
	pr.CacheLookup("miss")
	pr.CacheEvicted(3)
	pr.CacheSize(5)
	pr.ObserveFetch(20*time.Millisecond, true)
	pr.CompileOutcome("rendered")
	pr.ObserveRender(150*time.Millisecond, false)

	expected := `
# HELP sassline_cache_lookups_total Cache lookups by result
# TYPE sassline_cache_lookups_total counter
sassline_cache_lookups_total{result="hit"} 2
sassline_cache_lookups_total{result="miss"} 1
# HELP sassline_cache_evictions_total Entries removed by the eviction sweep
# TYPE sassline_cache_evictions_total counter
sassline_cache_evictions_total 3
# HELP sassline_cache_entries Number of cached documents
# TYPE sassline_cache_entries gauge
sassline_cache_entries 5
# HELP sassline_compile_outcomes_total Finished compile chains by outcome
# TYPE sassline_compile_outcomes_total counter
sassline_compile_outcomes_total{outcome="rendered"} 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"sassline_cache_lookups_total",
		"sassline_cache_evictions_total",
		"sassline_cache_entries",
		"sassline_compile_outcomes_total",
	)
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "sassline_render_duration_seconds"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "sassline_store_fetch_duration_seconds"))
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	pr := metrics.NewPrometheusRecorder(reg)
	pr.CompileOutcome("same-path")

	srv := httptest.NewServer(metrics.HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `sassline_compile_outcomes_total{outcome="same-path"} 1`)
}

func TestNoopRecorder(t *testing.T) {
	var r metrics.NoopRecorder
	r.CacheLookup("hit")
	r.CacheEvicted(1)
	r.CacheSize(1)
	r.ObserveFetch(time.Second, true)
	r.CompileOutcome("rendered")
	r.ObserveRender(time.Second, true)
}

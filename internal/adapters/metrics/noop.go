// Package metrics implements ports.Metrics.
//
// NoopRecorder is used when no listen address is configured. The Prometheus
// recorder registers its collectors on the registry it is given, which the
// HTTP handler then serves.
package metrics

import (
	"time"

	"go.trai.ch/sassline/internal/core/ports"
)

var _ ports.Metrics = NoopRecorder{}

// NoopRecorder discards every observation.
type NoopRecorder struct{}

// CacheLookup implements ports.Metrics.
func (NoopRecorder) CacheLookup(string) {}

// CacheEvicted implements ports.Metrics.
func (NoopRecorder) CacheEvicted(int) {}

// CacheSize implements ports.Metrics.
func (NoopRecorder) CacheSize(int) {}

// ObserveFetch implements ports.Metrics.
func (NoopRecorder) ObserveFetch(time.Duration, bool) {}

// CompileOutcome implements ports.Metrics.
func (NoopRecorder) CompileOutcome(string) {}

// ObserveRender implements ports.Metrics.
func (NoopRecorder) ObserveRender(time.Duration, bool) {}

package ports

import "time"

// Metrics receives observability hooks from the cache and the orchestrator.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// CacheLookup counts a GetOrFetch by result: hit, miss or shared.
	CacheLookup(result string)
	// CacheEvicted counts entries removed by a sweep.
	CacheEvicted(n int)
	// CacheSize reports the number of entries after a change.
	CacheSize(n int)
	// ObserveFetch records a store fetch.
	ObserveFetch(d time.Duration, ok bool)
	// CompileOutcome counts finished compile chains by outcome kind.
	CompileOutcome(kind string)
	// ObserveRender records a compiler invocation.
	ObserveRender(d time.Duration, ok bool)
}

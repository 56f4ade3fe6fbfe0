package ports

import (
	"context"

	"go.trai.ch/sassline/internal/core/domain"
)

// ContentCache is the time-windowed cache of workspace documents.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ContentCache interface {
	// GetOrFetch returns cached content, fetching it from the store on a miss.
	GetOrFetch(ctx context.Context, workspaceID, path string) ([]byte, error)

	// Peek returns the entry without refreshing its recency.
	Peek(workspaceID, path string) (domain.CacheEntry, bool)

	// Put stores content stamped with the current time.
	Put(workspaceID, path string, content []byte)

	// Replace swaps the content of an existing entry in place.
	// It reports false when no entry exists.
	Replace(workspaceID, path string, content []byte) bool
}

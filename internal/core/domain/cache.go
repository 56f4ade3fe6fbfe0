package domain

import "time"

// CacheKey identifies a document in a workspace.
type CacheKey struct {
	WorkspaceID string
	Path        string
}

// String renders the key for logs and in-flight tables.
func (k CacheKey) String() string {
	return k.WorkspaceID + ":" + k.Path
}

// CacheEntry is a time-stamped local copy of remote document content.
type CacheEntry struct {
	WorkspaceID string
	Path        string
	Content     []byte
	Digest      uint64
	LastUsedAt  time.Time
}

// Key returns the composite key of the entry.
func (e CacheEntry) Key() CacheKey {
	return CacheKey{WorkspaceID: e.WorkspaceID, Path: e.Path}
}

// Expired reports whether the entry is outside the eviction window at now.
func (e CacheEntry) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(e.LastUsedAt) >= window
}

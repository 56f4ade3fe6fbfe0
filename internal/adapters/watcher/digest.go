package watcher

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// digestFilter remembers the last content digest seen per path so that
// writes which leave a document unchanged are not reported as saves.
type digestFilter struct {
	mu   sync.Mutex
	last map[string]uint64
}

func newDigestFilter() *digestFilter {
	return &digestFilter{last: make(map[string]uint64)}
}

// changed records content for path and reports whether it differs from the
// previously recorded content.
func (f *digestFilter) changed(path string, content []byte) bool {
	sum := xxhash.Sum64(content)

	f.mu.Lock()
	defer f.mu.Unlock()

	prev, ok := f.last[path]
	f.last[path] = sum
	return !ok || prev != sum
}

func (f *digestFilter) forget(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.last, path)
}

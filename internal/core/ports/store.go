package ports

import (
	"context"
	"iter"
)

// GetOptions are the flags sent with a fetch request.
type GetOptions struct {
	// ForceRemote bypasses any copy held by the store's own client.
	ForceRemote bool
	// WantRevision asks for revision metadata alongside the content.
	WantRevision bool
}

// SaveOptions are the flags sent with a write request.
type SaveOptions struct {
	// Revisioned keeps the previous version of the document.
	Revisioned bool
}

// Payload is the answer to a fetch. Exactly one of Content or Chunks is set.
// Chunks must be drained in order and concatenated before use.
type Payload struct {
	Content []byte
	Chunks  iter.Seq2[[]byte, error]
}

// Store is the remote workspace file store.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type Store interface {
	// Get fetches a document. A missing document is reported as domain.ErrDocumentNotFound.
	Get(ctx context.Context, workspaceID, path string, opts GetOptions) (*Payload, error)

	// Save writes a document.
	Save(ctx context.Context, workspaceID, path string, data []byte, opts SaveOptions) error
}

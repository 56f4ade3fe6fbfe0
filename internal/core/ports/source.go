package ports

import (
	"context"
	"iter"

	"go.trai.ch/sassline/internal/core/domain"
)

// SaveSource delivers editor save events.
type SaveSource interface {
	// Start begins producing events until ctx is done or Stop is called.
	Start(ctx context.Context) error
	// Stop releases all resources and ends the event sequence.
	Stop() error
	// Events returns the sequence of save events.
	Events() iter.Seq[domain.SaveEvent]
}

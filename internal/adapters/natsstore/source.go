package natsstore

import (
	"context"
	"encoding/json"
	"iter"
	"sync"

	"github.com/nats-io/nats.go"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/zerr"
)

const eventBuffer = 100

var _ ports.SaveSource = (*SaveSource)(nil)

// SaveSource turns editor save messages into save events.
type SaveSource struct {
	conn    Conn
	subject string
	logger  ports.Logger

	msgs   chan *nats.Msg
	events chan domain.SaveEvent

	mu          sync.Mutex
	unsubscribe func() error
	quit        chan struct{}
	done        chan struct{}
}

// NewSaveSource creates a save-event source listening on subject.
func NewSaveSource(conn Conn, subject string, logger ports.Logger) *SaveSource {
	return &SaveSource{
		conn:    conn,
		subject: subject,
		logger:  logger,
		msgs:    make(chan *nats.Msg, eventBuffer),
		events:  make(chan domain.SaveEvent, eventBuffer),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start subscribes to the save subject.
func (s *SaveSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unsubscribe != nil {
		return nil
	}

	unsubscribe, err := s.conn.ChanSubscribe(s.subject, s.msgs)
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	s.unsubscribe = unsubscribe

	go s.loop(ctx)
	return nil
}

func (s *SaveSource) loop(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case msg := <-s.msgs:
			var ev domain.SaveEvent
			if err := json.Unmarshal(msg.Data, &ev); err != nil {
				s.logger.Warn("dropping malformed save event", "subject", msg.Subject, "error", err.Error())
				continue
			}
			select {
			case s.events <- ev:
			case <-ctx.Done():
				return
			case <-s.quit:
				return
			}
		}
	}
}

// Stop unsubscribes and ends the event sequence.
func (s *SaveSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unsubscribe == nil {
		return nil
	}

	select {
	case <-s.quit:
		return nil
	default:
		close(s.quit)
	}

	err := s.unsubscribe()
	<-s.done
	if err != nil {
		return zerr.Wrap(err, "failed to unsubscribe from save events")
	}
	return nil
}

// Events implements ports.SaveSource.
func (s *SaveSource) Events() iter.Seq[domain.SaveEvent] {
	return func(yield func(domain.SaveEvent) bool) {
		for ev := range s.events {
			if !yield(ev) {
				return
			}
		}
	}
}

package natsstore

import (
	"context"
	"iter"

	"github.com/nats-io/nats.go"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/zerr"
)

const replyBuffer = 64

var _ ports.Store = (*Store)(nil)

// Store is a ports.Store that forwards requests to a remote workspace.
type Store struct {
	conn    Conn
	subject string
}

// NewStore creates a store that sends requests on subject.
func NewStore(conn Conn, subject string) *Store {
	return &Store{conn: conn, subject: subject}
}

// Get requests a document. A multi-part reply is returned as a chunk
// sequence that keeps reading from the reply inbox until the final part
// arrives or ctx ends. The sequence must be drained.
func (s *Store) Get(ctx context.Context, workspaceID, path string, opts ports.GetOptions) (*ports.Payload, error) {
	ch, unsubscribe, err := s.send(Request{
		Action:       ActionGet,
		WorkspaceID:  workspaceID,
		Path:         path,
		ForceRemote:  opts.ForceRemote,
		WantRevision: opts.WantRevision,
	})
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	first, err := receive(ctx, ch, 0)
	if err != nil {
		_ = unsubscribe()
		return nil, zerr.With(err, "path", path)
	}
	if first.Final {
		_ = unsubscribe()
		return &ports.Payload{Content: first.Data}, nil
	}

	return &ports.Payload{Chunks: chunks(ctx, ch, unsubscribe, first)}, nil
}

func chunks(ctx context.Context, ch chan *nats.Msg, unsubscribe func() error, first Reply) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		defer func() { _ = unsubscribe() }()

		if !yield(first.Data, nil) {
			return
		}
		for seq := 1; ; seq++ {
			r, err := receive(ctx, ch, seq)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(r.Data, nil) || r.Final {
				return
			}
		}
	}
}

// Save sends a document and waits for the acknowledgement.
func (s *Store) Save(ctx context.Context, workspaceID, path string, data []byte, opts ports.SaveOptions) error {
	ch, unsubscribe, err := s.send(Request{
		Action:      ActionSave,
		WorkspaceID: workspaceID,
		Path:        path,
		Revisioned:  opts.Revisioned,
		Data:        data,
	})
	if err != nil {
		return zerr.With(err, "path", path)
	}
	defer func() { _ = unsubscribe() }()

	if _, err := receive(ctx, ch, 0); err != nil {
		return zerr.With(err, "path", path)
	}
	return nil
}

// send subscribes a fresh inbox and publishes req with it as reply subject.
func (s *Store) send(req Request) (chan *nats.Msg, func() error, error) {
	inbox := s.conn.NewInbox()
	ch := make(chan *nats.Msg, replyBuffer)

	unsubscribe, err := s.conn.ChanSubscribe(inbox, ch)
	if err != nil {
		return nil, nil, err
	}

	if err := s.conn.PublishMsg(EncodeRequest(s.subject, inbox, req)); err != nil {
		_ = unsubscribe()
		return nil, nil, zerr.With(zerr.Wrap(err, "failed to publish store request"), "action", req.Action)
	}

	return ch, unsubscribe, nil
}

// receive waits for the reply with sequence number seq.
func receive(ctx context.Context, ch chan *nats.Msg, seq int) (Reply, error) {
	select {
	case <-ctx.Done():
		return Reply{}, zerr.With(zerr.Wrap(ctx.Err(), "store request interrupted"), "seq", seq)
	case msg, ok := <-ch:
		if !ok {
			return Reply{}, zerr.Wrap(domain.ErrStoreClosed, "reply inbox closed")
		}
		r, err := DecodeReply(msg)
		if err != nil {
			return Reply{}, err
		}
		if err := r.Err(); err != nil {
			return Reply{}, err
		}
		if r.Seq != seq {
			return Reply{}, zerr.With(zerr.With(zerr.New("reply chunk out of order"), "want", seq), "got", r.Seq)
		}
		return r, nil
	}
}

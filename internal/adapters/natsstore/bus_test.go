package natsstore_test

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/nats-io/nats.go"
	"go.trai.ch/sassline/internal/adapters/natsstore"
)

// bus is an in-memory natsstore.Conn with exact subject matching.
type bus struct {
	mu        sync.Mutex
	subs      map[string][]chan *nats.Msg
	published []*nats.Msg
	inboxes   atomic.Int64
	failPub   error
}

var _ natsstore.Conn = (*bus)(nil)

func newBus() *bus {
	return &bus{subs: make(map[string][]chan *nats.Msg)}
}

func (b *bus) PublishMsg(msg *nats.Msg) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failPub != nil {
		return b.failPub
	}
	b.published = append(b.published, msg)
	for _, ch := range b.subs[msg.Subject] {
		ch <- msg
	}
	return nil
}

func (b *bus) ChanSubscribe(subject string, ch chan *nats.Msg) (func() error, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs[subject] = append(b.subs[subject], ch)
	return func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[subject]
		for i, c := range subs {
			if c == ch {
				b.subs[subject] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		return nil
	}, nil
}

func (b *bus) NewInbox() string {
	return "_INBOX." + strconv.FormatInt(b.inboxes.Add(1), 10)
}

func (b *bus) subscribers(subject string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[subject])
}

// serve answers store requests on subject with handle until the returned
// stop function is called.
func (b *bus) serve(subject string, handle func(req natsstore.Request) []natsstore.Reply) func() {
	ch := make(chan *nats.Msg, 16)
	unsubscribe, _ := b.ChanSubscribe(subject, ch)
	quit := make(chan struct{})
	var wg sync.WaitGroup
	wg.Go(func() {
		for {
			select {
			case <-quit:
				return
			case msg := <-ch:
				req, err := natsstore.DecodeRequest(msg)
				if err != nil {
					_ = b.PublishMsg(natsstore.EncodeReply(msg.Reply, natsstore.Reply{Status: natsstore.StatusError, Error: err.Error(), Final: true}))
					continue
				}
				for _, r := range handle(req) {
					_ = b.PublishMsg(natsstore.EncodeReply(msg.Reply, r))
				}
			}
		}
	})
	return func() {
		_ = unsubscribe()
		close(quit)
		wg.Wait()
	}
}

package natsstore

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier publishes notifications as JSON on a subject.
type Notifier struct {
	conn    Conn
	subject string
}

// NewNotifier creates a notifier publishing on subject.
func NewNotifier(conn Conn, subject string) *Notifier {
	return &Notifier{conn: conn, subject: subject}
}

// Show implements ports.Notifier.
func (n *Notifier) Show(ctx context.Context, note domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(note)
	if err != nil {
		return zerr.Wrap(err, "failed to encode notification")
	}

	msg := nats.NewMsg(n.subject)
	msg.Data = data
	if err := n.conn.PublishMsg(msg); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to publish notification"), "subject", n.subject)
	}
	return nil
}

// Package natsstore talks to a remote workspace over NATS.
//
// Store requests go out on the action subject with a private reply inbox.
// The workspace answers with one or more reply messages; a document too
// large for one message arrives as numbered chunks, the last of which is
// marked final. Notifications and save events are plain JSON messages.
package natsstore

import (
	"github.com/nats-io/nats.go"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/zerr"
)

// Conn is the subset of a NATS connection used by this package.
type Conn interface {
	// PublishMsg publishes a message.
	PublishMsg(msg *nats.Msg) error
	// ChanSubscribe delivers messages on subject to ch until the returned
	// function is called.
	ChanSubscribe(subject string, ch chan *nats.Msg) (func() error, error)
	// NewInbox returns a unique reply subject.
	NewInbox() string
}

// Client owns a NATS connection.
type Client struct {
	nc *nats.Conn
}

var _ Conn = (*Client)(nil)

// Connect dials the server at cfg.URL.
func Connect(cfg domain.NATSConfig, logger ports.Logger) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("sassline"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("disconnected from message bus", "error", err.Error())
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("reconnected to message bus", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTransportFailed.Error()), "url", cfg.URL)
	}

	logger.Debug("connected to message bus", "url", cfg.URL)
	return &Client{nc: nc}, nil
}

// PublishMsg implements Conn.
func (c *Client) PublishMsg(msg *nats.Msg) error {
	if c.nc.IsClosed() {
		return zerr.Wrap(domain.ErrStoreClosed, "publish")
	}
	return c.nc.PublishMsg(msg)
}

// ChanSubscribe implements Conn.
func (c *Client) ChanSubscribe(subject string, ch chan *nats.Msg) (func() error, error) {
	sub, err := c.nc.ChanSubscribe(subject, ch)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to subscribe"), "subject", subject)
	}
	return sub.Unsubscribe, nil
}

// NewInbox implements Conn.
func (c *Client) NewInbox() string {
	return c.nc.NewRespInbox()
}

// Close drains pending messages and closes the connection.
func (c *Client) Close() error {
	if c.nc.IsClosed() {
		return nil
	}
	if err := c.nc.Drain(); err != nil {
		c.nc.Close()
		return zerr.Wrap(err, "failed to drain message bus connection")
	}
	return nil
}

// Package backend assembles the store, notifier and save-event source for
// the configured store driver.
package backend

import (
	"errors"
	"io"
	"path/filepath"

	"go.trai.ch/sassline/internal/adapters/fsstore"
	"go.trai.ch/sassline/internal/adapters/natsstore"
	"go.trai.ch/sassline/internal/adapters/notify"
	"go.trai.ch/sassline/internal/adapters/watcher"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/zerr"
)

// Backend is an opened set of workspace collaborators.
type Backend struct {
	Store    ports.Store
	Notifier ports.Notifier
	// Source is nil unless the backend was opened with a save-event source.
	Source ports.SaveSource

	closers []func() error
}

// Close releases every resource held by the backend.
func (b *Backend) Close() error {
	var errs error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = errors.Join(errs, b.closers[i]())
	}
	b.closers = nil
	return errs
}

// Factory opens backends.
type Factory struct {
	logger  ports.Logger
	console io.Writer
}

// NewFactory creates a Factory. Console notifications go to console; a
// nil writer means os.Stderr.
func NewFactory(logger ports.Logger, console io.Writer) *Factory {
	return &Factory{logger: logger, console: console}
}

// Open builds the backend for cfg.Store.Driver. With watch set, the
// backend also carries a save-event source.
func (f *Factory) Open(cfg *domain.Config, watch bool) (*Backend, error) {
	switch cfg.Store.Driver {
	case domain.StoreDriverFS, "":
		return f.openFS(cfg, watch)
	case domain.StoreDriverNATS:
		return f.openNATS(cfg, watch)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "unknown store driver"), "driver", cfg.Store.Driver)
	}
}

func (f *Factory) openFS(cfg *domain.Config, watch bool) (*Backend, error) {
	root := cfg.Workspace.Root
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve workspace root"), "root", root)
		}
		root = abs
	}

	b := &Backend{
		Store:    fsstore.New(map[string]string{cfg.Workspace.ID: root}),
		Notifier: notify.NewConsole(f.console),
	}

	if watch {
		w, err := watcher.New(root, cfg.Workspace.ID, cfg.Serve.Debounce, f.logger)
		if err != nil {
			return nil, err
		}
		b.Source = w
		b.closers = append(b.closers, w.Stop)
	}

	f.logger.Debug("opened filesystem backend", "root", root, "workspace", cfg.Workspace.ID)
	return b, nil
}

func (f *Factory) openNATS(cfg *domain.Config, watch bool) (*Backend, error) {
	client, err := natsstore.Connect(cfg.NATS, f.logger)
	if err != nil {
		return nil, err
	}

	b := &Backend{
		Store: natsstore.NewStore(client, cfg.NATS.ActionSubject),
		Notifier: notify.Multi{
			notify.NewConsole(f.console),
			natsstore.NewNotifier(client, cfg.NATS.NotifySubject),
		},
		closers: []func() error{client.Close},
	}

	if watch {
		src := natsstore.NewSaveSource(client, cfg.NATS.SaveSubject, f.logger)
		b.Source = src
		b.closers = append(b.closers, src.Stop)
	}

	f.logger.Debug("opened message bus backend", "url", cfg.NATS.URL, "subject", cfg.NATS.ActionSubject)
	return b, nil
}

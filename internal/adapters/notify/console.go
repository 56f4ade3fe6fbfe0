// Package notify delivers user-facing notifications.
package notify

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/sassline/internal/ui/output"
	"go.trai.ch/sassline/internal/ui/style"
	"go.trai.ch/zerr"
)

var (
	_ ports.Notifier = (*Console)(nil)
	_ ports.Notifier = Multi(nil)
)

// Console prints notifications to a terminal.
type Console struct {
	mu  sync.Mutex
	out *termenv.Output
}

// NewConsole creates a console notifier writing to w. A nil writer means os.Stderr.
func NewConsole(w io.Writer) *Console {
	return &Console{out: output.New(w)}
}

// Show implements ports.Notifier.
func (c *Console) Show(_ context.Context, n domain.Notification) error {
	icon, color := style.Dot, style.Iris
	if n.Type == domain.NotifyError {
		icon, color = style.Cross, style.Red
	}

	var b strings.Builder
	b.WriteString(output.Color(c.out, color, icon+" "+n.Title))
	b.WriteByte('\n')
	for line := range strings.Lines(strings.TrimRight(n.Description, "\n")) {
		b.WriteString("  ")
		b.WriteString(output.Color(c.out, style.Slate, strings.TrimRight(line, "\n")))
		b.WriteByte('\n')
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.out, b.String()); err != nil {
		return zerr.Wrap(err, "failed to write notification")
	}
	return nil
}

// Multi delivers every notification to each notifier in order.
type Multi []ports.Notifier

// Show implements ports.Notifier. Every notifier is tried; failures are joined.
func (m Multi) Show(ctx context.Context, n domain.Notification) error {
	var errs error
	for _, notifier := range m {
		if err := notifier.Show(ctx, n); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

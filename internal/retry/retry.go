// Package retry provides the bounded retry policy used for workspace store I/O.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"go.trai.ch/sassline/internal/core/domain"
)

// Policy bounds the number of attempts and the back-off between them.
type Policy struct {
	Attempts uint
	Delay    time.Duration
	MaxDelay time.Duration
}

// FromConfig builds a policy from the store configuration.
func FromConfig(cfg domain.StoreConfig) Policy {
	return Policy{
		Attempts: cfg.Retries,
		Delay:    cfg.RetryDelay,
		MaxDelay: 10 * cfg.RetryDelay,
	}
}

// Options returns the retry-go options for p bound to ctx.
func (p Policy) Options(ctx context.Context) []retry.Option {
	attempts := p.Attempts
	if attempts == 0 {
		attempts = 1
	}

	opts := []retry.Option{
		retry.Attempts(attempts),
		retry.Delay(p.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(IsRetryable),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	}
	if p.MaxDelay > 0 {
		opts = append(opts, retry.MaxDelay(p.MaxDelay))
	}
	return opts
}

// Do runs fn until it succeeds, fails with a non-retryable error or the
// policy is exhausted. The last error is returned.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	return retry.Do(fn, p.Options(ctx)...)
}

// DoWithData is Do for functions that return a value.
func DoWithData[T any](ctx context.Context, p Policy, fn func() (T, error)) (T, error) {
	return retry.DoWithData(fn, p.Options(ctx)...)
}

// IsRetryable reports whether a store error may succeed on another attempt.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, domain.ErrUnknownWorkspace),
		errors.Is(err, domain.ErrPathOutOfBounds),
		errors.Is(err, domain.ErrStoreClosed),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}

package ports

import (
	"context"

	"go.trai.ch/sassline/internal/core/domain"
)

// Notifier shows diagnostics to the user.
//
//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks
type Notifier interface {
	Show(ctx context.Context, n domain.Notification) error
}

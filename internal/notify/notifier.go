// Package notify delivers best-effort local notifications. Delivery
// failures are observed only for logging and never join the primary
// result path of the operation that triggered them.
package notify

import (
	"context"
	"sync"
)

// Notifier sends a titled message to the operator.
type Notifier interface {
	Send(ctx context.Context, title, body string) error
}

// Noop discards every notification.
type Noop struct{}

func (Noop) Send(context.Context, string, string) error { return nil }

// PermissionFunc asks the platform for notification permission and reports
// whether it was granted.
type PermissionFunc func(ctx context.Context) bool

// Gated wraps a notifier behind a one-time permission request. Permission
// is requested on first use; denial silently disables all sends without
// surfacing an error.
type Gated struct {
	inner   Notifier
	request PermissionFunc

	once    sync.Once
	granted bool
}

// NewGated creates a permission-gated notifier. A nil request func is
// treated as already granted.
func NewGated(inner Notifier, request PermissionFunc) *Gated {
	return &Gated{inner: inner, request: request}
}

func (g *Gated) Send(ctx context.Context, title, body string) error {
	g.once.Do(func() {
		g.granted = g.request == nil || g.request(ctx)
	})
	if !g.granted {
		return nil
	}
	return g.inner.Send(ctx, title, body)
}

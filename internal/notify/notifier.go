package notify

import "context"

// Notifier relays short user-facing messages outside the page, such as
// changes of the unread notification count.
type Notifier interface {
	Notify(ctx context.Context, msg string)
}

// Noop is a no-op notifier.
type Noop struct{}

func (Noop) Notify(context.Context, string) {}

// Multi fans a message out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg string) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, msg)
		}
	}
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, msg string)

func (f Func) Notify(ctx context.Context, msg string) { f(ctx, msg) }

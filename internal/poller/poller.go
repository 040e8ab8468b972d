// Package poller refreshes the unread notification badge on a fixed
// interval for as long as its context lives.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reviewsclient/internal/logging"
	"reviewsclient/internal/notify"
)

const DefaultInterval = 60 * time.Second

type Counter interface {
	UnreadCount(ctx context.Context) (int, error)
}

type Badge interface {
	SetBadge(count int, visible bool)
}

type Poller struct {
	counter  Counter
	badge    Badge
	notifier notify.Notifier
	interval time.Duration

	// Immediate fires the first poll at start instead of after one interval.
	Immediate bool

	mu    sync.Mutex
	last  int
	known bool
	wg    sync.WaitGroup
}

func New(counter Counter, badge Badge, notifier notify.Notifier, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Poller{counter: counter, badge: badge, notifier: notifier, interval: interval}
}

// Run polls until ctx is done. Every tick starts its own request whether or
// not the previous one has finished.
func (p *Poller) Run(ctx context.Context) {
	logging.From(ctx).Info("poller.start", "interval", p.interval)
	defer logging.From(ctx).Info("poller.stop")

	t := time.NewTicker(p.interval)
	defer t.Stop()
	if p.Immediate {
		p.fire(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			p.wg.Wait()
			return
		case <-t.C:
			p.fire(ctx)
		}
	}
}

func (p *Poller) fire(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.Tick(ctx)
	}()
}

// Tick performs one poll. A failed poll leaves the badge as it was.
func (p *Poller) Tick(ctx context.Context) {
	n, err := p.counter.UnreadCount(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logging.From(ctx).Warn("poller.tick", "err", err)
		}
		return
	}
	p.apply(ctx, n)
}

func (p *Poller) apply(ctx context.Context, n int) {
	p.mu.Lock()
	changed := !p.known || p.last != n
	p.last, p.known = n, true
	p.badge.SetBadge(n, n > 0)
	p.mu.Unlock()

	logging.From(ctx).Debug("poller.count", "count", n, "changed", changed)
	if changed {
		p.notifier.Notify(ctx, message(n))
	}
}

// Last returns the most recent successful count.
func (p *Poller) Last() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.known
}

func message(n int) string {
	switch n {
	case 0:
		return "No unread notifications."
	case 1:
		return "You have 1 unread notification."
	default:
		return fmt.Sprintf("You have %d unread notifications.", n)
	}
}

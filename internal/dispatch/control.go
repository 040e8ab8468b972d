package dispatch

import "sync/atomic"

// Control is the submit button of a form: while disabled, further triggers
// are dropped. It is the only re-entrancy guard in the client.
type Control struct {
	disabled atomic.Bool
}

// Disable reports false if the control was already disabled.
func (c *Control) Disable() bool { return c.disabled.CompareAndSwap(false, true) }

func (c *Control) Enable() { c.disabled.Store(false) }

func (c *Control) Disabled() bool { return c.disabled.Load() }

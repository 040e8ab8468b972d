package dispatch

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestControl(t *testing.T) {
	var c Control
	if c.Disabled() {
		t.Fatal("zero Control should be enabled")
	}
	if !c.Disable() {
		t.Fatal("first Disable() should succeed")
	}
	if c.Disable() {
		t.Error("second Disable() should report already disabled")
	}
	c.Enable()
	if c.Disabled() {
		t.Error("Enable() did not re-enable")
	}
}

func TestControlSingleWinner(t *testing.T) {
	var (
		c    Control
		wins atomic.Int32
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Disable() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Errorf("winners = %d, want 1", wins.Load())
	}
}

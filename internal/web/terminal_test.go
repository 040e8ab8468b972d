package web

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"reviewsclient/internal/search"
)

func newTestTerminal(t *testing.T) (*Terminal, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	term, err := NewTerminal(&buf)
	if err != nil {
		t.Fatalf("NewTerminal() error = %v", err)
	}
	term.now = func() time.Time { return time.Date(2025, 3, 1, 9, 30, 5, 0, time.Local) }
	return term, &buf
}

func TestTerminalFragments(t *testing.T) {
	tests := []struct {
		name   string
		action func(*Terminal)
		want   string
	}{
		{"alert", func(v *Terminal) { v.Alert("  You must log in to continue. ") }, "!! You must log in to continue.\n"},
		{"reload", func(v *Terminal) { v.Reload() }, "-- reloaded 09:30:05\n"},
		{"counter one", func(v *Terminal) { v.SetCounter("4", 1) }, "review 4: 1 vote\n"},
		{"counter many", func(v *Terminal) { v.SetCounter("4", 3) }, "review 4: 3 votes\n"},
		{"counter thousands", func(v *Terminal) { v.SetCounter("4", 1234) }, "review 4: 1,234 votes\n"},
		{"badge visible", func(v *Terminal) { v.SetBadge(2, true) }, "[2 unread]\n"},
		{"badge hidden", func(v *Terminal) { v.SetBadge(0, false) }, "[no unread notifications]\n"},
		{"results", func(v *Terminal) {
			v.ShowResults([]search.Result{{URL: "/p/1/", Name: "Phone"}, {URL: "/p/2/", Name: "Case"}})
		}, "1. Phone  /p/1/\n2. Case  /p/2/\n"},
		{"results hidden", func(v *Terminal) { v.HideResults() }, "-- results hidden\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, buf := newTestTerminal(t)
			tt.action(term)
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTerminalBadgeRedrawsOnChange(t *testing.T) {
	term, buf := newTestTerminal(t)
	term.SetBadge(1, true)
	term.SetBadge(1, true)
	term.SetBadge(0, false)
	term.SetBadge(0, false)
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Errorf("badge drawn %d times, want 2: %q", n, buf.String())
	}
}

func TestTerminalResultsVisibility(t *testing.T) {
	term, buf := newTestTerminal(t)
	term.ShowResults([]search.Result{{URL: "/x", Name: "x"}})
	if !term.ResultsShown() {
		t.Fatal("results should be shown")
	}
	term.HideResults()
	if term.ResultsShown() {
		t.Error("results should be hidden")
	}
	if !strings.HasSuffix(buf.String(), "-- results hidden\n") {
		t.Errorf("hide not drawn: %q", buf.String())
	}
}

func TestTerminalOnReload(t *testing.T) {
	term, _ := newTestTerminal(t)
	called := false
	term.OnReload = func() { called = true }
	term.Reload()
	if !called {
		t.Error("OnReload not called")
	}
}

func TestResultNamesTruncated(t *testing.T) {
	term, buf := newTestTerminal(t)
	long := strings.Repeat("n", 80)
	term.ShowResults([]search.Result{{URL: "/l", Name: long}})
	if strings.Contains(buf.String(), long) {
		t.Error("long name was not truncated")
	}
}

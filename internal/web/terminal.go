package web

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"reviewsclient/internal/search"
)

// Terminal is the CLI's page. Every update is rendered as a line-oriented
// fragment on w. It is safe for concurrent use.
type Terminal struct {
	mu   sync.Mutex
	w    io.Writer
	rend *Renderer
	now  func() time.Time

	// OnReload runs after a reload is rendered, e.g. to refetch state.
	OnReload func()

	badge        badgeData
	badgeSet     bool
	resultsShown bool
}

func NewTerminal(w io.Writer) (*Terminal, error) {
	rend, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Terminal{w: w, rend: rend, now: time.Now}, nil
}

func (t *Terminal) Alert(msg string) {
	t.render("alert", alertData{Message: msg})
}

func (t *Terminal) Reload() {
	t.render("reload", reloadData{At: t.now()})
	if t.OnReload != nil {
		t.OnReload()
	}
}

func (t *Terminal) SetCounter(reviewID string, n int) {
	t.render("counter", counterData{ReviewID: reviewID, Count: n})
}

// SetBadge only redraws when the badge actually changes.
func (t *Terminal) SetBadge(count int, visible bool) {
	b := badgeData{Count: count, Visible: visible}
	t.mu.Lock()
	same := t.badgeSet && t.badge == b
	t.badge, t.badgeSet = b, true
	t.mu.Unlock()
	if !same {
		t.render("badge", b)
	}
}

func (t *Terminal) ShowResults(results []search.Result) {
	t.mu.Lock()
	t.resultsShown = true
	t.mu.Unlock()
	t.render("results", resultsData{Results: results})
}

func (t *Terminal) HideResults() {
	t.mu.Lock()
	t.resultsShown = false
	t.mu.Unlock()
	t.render("hidden", nil)
}

// ResultsShown reports whether the result list is currently visible.
func (t *Terminal) ResultsShown() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resultsShown
}

func (t *Terminal) render(name string, data any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.rend.Render(t.w, name, data); err != nil {
		slog.Error("web.render", "template", name, "err", err)
	}
}

// Package search drives the search box: lookups start once the input is
// longer than the threshold, and only the newest lookup may repaint the
// result list.
package search

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"unicode/utf8"

	"reviewsclient/internal/dispatch"
	"reviewsclient/internal/logging"
)

const (
	DefaultPath      = "/api/search/"
	DefaultMinLength = 2
)

type Result struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Display is the result container next to the search box.
type Display interface {
	ShowResults([]Result)
	HideResults()
}

type Doer interface {
	Do(ctx context.Context, r dispatch.Request, out any) error
}

type Searcher struct {
	doer      Doer
	display   Display
	MinLength int // inputs of at most this many runes are ignored
	Path      string

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(doer Doer, display Display) *Searcher {
	return &Searcher{doer: doer, display: display, MinLength: DefaultMinLength, Path: DefaultPath}
}

// Input handles one change of the search box. It returns immediately;
// true means a lookup was started. Starting a lookup cancels the previous
// one and marks its response stale.
func (s *Searcher) Input(ctx context.Context, text string) bool {
	if utf8.RuneCountInString(text) <= s.MinLength {
		return false
	}

	lctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.lookup(lctx, gen, text)
	}()
	return true
}

func (s *Searcher) lookup(ctx context.Context, gen uint64, text string) {
	log := logging.From(ctx).With("q", text, "gen", gen)

	var results []Result
	err := s.doer.Do(ctx, dispatch.Request{
		Method: http.MethodGet,
		Path:   s.Path,
		Query:  url.Values{"q": {text}},
	}, &results)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		log.Debug("search.stale")
		return
	}
	if err != nil {
		// search failures are never shown to the user
		if errors.Is(err, context.Canceled) {
			log.Debug("search.canceled")
		} else {
			log.Warn("search.lookup", "err", err)
		}
		return
	}
	if len(results) == 0 {
		s.display.HideResults()
		return
	}
	s.display.ShowResults(results)
}

// Dismiss hides the result list, as a click outside the search box does.
func (s *Searcher) Dismiss() {
	s.display.HideResults()
}

// Wait blocks until every started lookup has finished.
func (s *Searcher) Wait() {
	s.wg.Wait()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browse holds the interactive state of one search surface: the
// submitted query, the loading flag, the last error, the result list, and
// the list/detail selection. It also turns that state into views and text.
package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pdiddy/orquideira/internal/logger"
	"github.com/pdiddy/orquideira/internal/search"
	"github.com/pdiddy/orquideira/pkg/types"
)

var (
	// ErrSuperseded is returned by Submit when a newer submission started
	// before this one completed. Its results are discarded.
	ErrSuperseded = errors.New("search superseded by a newer submission")

	// ErrNoSuchItem is returned by Select for an index outside the list.
	ErrNoSuchItem = errors.New("no result at that position")
)

// Engine runs one search. search.Searcher satisfies it.
type Engine interface {
	Search(ctx context.Context, mode types.SearchMode, query string) ([]types.Result, error)
}

// State is a point-in-time copy of the browser.
type State struct {
	Mode    types.SearchMode `json:"mode"`
	Query   string           `json:"query"`
	Loading bool             `json:"loading"`
	Err     string           `json:"error,omitempty"`
	Results []types.Result   `json:"results"`

	// Selected is the index of the item in detail view, or -1 for the list.
	Selected int `json:"selected"`
}

// Selection returns the selected result, if any.
func (s State) Selection() (types.Result, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Results) {
		return types.Result{}, false
	}
	return s.Results[s.Selected], true
}

// Browser is safe for concurrent use. Each Submit takes a generation
// number; only the completion that matches the current generation is
// applied.
type Browser struct {
	engine Engine

	mu    sync.Mutex
	gen   uint64
	state State
}

// New returns a Browser with an empty result list.
func New(engine Engine) *Browser {
	return &Browser{engine: engine, state: State{Results: []types.Result{}, Selected: -1}}
}

// Submit runs a search for query in mode. An empty query or unknown mode is
// rejected before any state changes. Otherwise the results, error, and
// selection are cleared and loading is set until the search completes.
func (b *Browser) Submit(ctx context.Context, mode types.SearchMode, query string) error {
	q, err := search.NormalizeQuery(query)
	if err != nil {
		return err
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", search.ErrUnknownMode, mode)
	}

	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.state = State{Mode: mode, Query: q, Loading: true, Results: []types.Result{}, Selected: -1}
	b.mu.Unlock()

	results, err := b.engine.Search(ctx, mode, q)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		logger.For(ctx).WithField("query", q).Debug("discarding stale search completion")
		return ErrSuperseded
	}
	b.state.Loading = false
	if err != nil {
		b.state.Err = err.Error()
		return err
	}
	if results == nil {
		results = []types.Result{}
	}
	b.state.Results = results
	return nil
}

// Snapshot returns a copy of the current state.
func (b *Browser) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.state
	s.Results = append([]types.Result(nil), b.state.Results...)
	if s.Results == nil {
		s.Results = []types.Result{}
	}
	return s
}

// Select moves to the detail view of result i (zero-based).
func (b *Browser) Select(i int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state.Loading || i < 0 || i >= len(b.state.Results) {
		return fmt.Errorf("%w: index %d of %d", ErrNoSuchItem, i, len(b.state.Results))
	}
	b.state.Selected = i
	return nil
}

// Back returns to the list view. The list is left as is.
func (b *Browser) Back() {
	b.mu.Lock()
	b.state.Selected = -1
	b.mu.Unlock()
}

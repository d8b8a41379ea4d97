// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/orquideira/internal/search"
	"github.com/pdiddy/orquideira/pkg/types"
)

// stubEngine answers every query from a fixed table.
type stubEngine struct {
	results map[string][]types.Result
	err     error
	queries []string
}

func (e *stubEngine) Search(_ context.Context, _ types.SearchMode, q string) ([]types.Result, error) {
	e.queries = append(e.queries, q)
	if e.err != nil {
		return nil, e.err
	}
	return e.results[q], nil
}

// gatedEngine blocks each query until its gate is released.
type gatedEngine struct {
	started chan string
	gates   map[string]chan []types.Result
}

func (e *gatedEngine) Search(_ context.Context, _ types.SearchMode, q string) ([]types.Result, error) {
	e.started <- q
	return <-e.gates[q], nil
}

func papers(titles ...string) []types.Result {
	out := make([]types.Result, 0, len(titles))
	for _, t := range titles {
		out = append(out, types.PaperResult(types.Paper{Title: t}))
	}
	return out
}

func TestNewBrowserStartsEmpty(t *testing.T) {
	s := New(&stubEngine{}).Snapshot()
	assert.False(t, s.Loading)
	assert.Empty(t, s.Err)
	assert.NotNil(t, s.Results)
	assert.Empty(t, s.Results)
	assert.Equal(t, -1, s.Selected)
}

func TestSubmitStoresResults(t *testing.T) {
	eng := &stubEngine{results: map[string][]types.Result{"orchid": papers("A", "B")}}
	b := New(eng)

	require.NoError(t, b.Submit(context.Background(), types.ModePapers, "  orchid "))
	s := b.Snapshot()
	assert.Equal(t, []string{"orchid"}, eng.queries)
	assert.Equal(t, "orchid", s.Query)
	assert.Equal(t, types.ModePapers, s.Mode)
	assert.False(t, s.Loading)
	assert.Len(t, s.Results, 2)
}

func TestSubmitRejectsBeforeStateChange(t *testing.T) {
	eng := &stubEngine{results: map[string][]types.Result{"orchid": papers("A")}}
	b := New(eng)
	require.NoError(t, b.Submit(context.Background(), types.ModePapers, "orchid"))
	require.NoError(t, b.Select(0))

	err := b.Submit(context.Background(), types.ModePapers, "   ")
	assert.ErrorIs(t, err, search.ErrEmptyQuery)
	err = b.Submit(context.Background(), types.SearchMode("venues"), "orchid")
	assert.ErrorIs(t, err, search.ErrUnknownMode)

	s := b.Snapshot()
	assert.Len(t, s.Results, 1)
	assert.Equal(t, 0, s.Selected)
	assert.Len(t, eng.queries, 1)
}

func TestSubmitFailureClearsResults(t *testing.T) {
	eng := &stubEngine{results: map[string][]types.Result{"orchid": papers("A")}}
	b := New(eng)
	require.NoError(t, b.Submit(context.Background(), types.ModePapers, "orchid"))
	require.NoError(t, b.Select(0))

	eng.err = errors.New("Semantic Scholar returned HTTP 500: Internal Server Error")
	err := b.Submit(context.Background(), types.ModeAuthors, "silva")
	require.Error(t, err)

	s := b.Snapshot()
	assert.False(t, s.Loading)
	assert.Equal(t, "Semantic Scholar returned HTTP 500: Internal Server Error", s.Err)
	assert.Empty(t, s.Results)
	assert.Equal(t, -1, s.Selected)
}

func TestSubmitClearsPreviousError(t *testing.T) {
	eng := &stubEngine{err: errors.New("boom")}
	b := New(eng)
	require.Error(t, b.Submit(context.Background(), types.ModePapers, "x"))

	eng.err = nil
	eng.results = map[string][]types.Result{"y": papers("Y")}
	require.NoError(t, b.Submit(context.Background(), types.ModePapers, "y"))
	s := b.Snapshot()
	assert.Empty(t, s.Err)
	assert.Len(t, s.Results, 1)
}

func TestSelectAndBackPreserveList(t *testing.T) {
	b := New(&stubEngine{results: map[string][]types.Result{"q": papers("A", "B", "C")}})
	require.NoError(t, b.Submit(context.Background(), types.ModePapers, "q"))
	before := b.Snapshot().Results

	require.NoError(t, b.Select(1))
	s := b.Snapshot()
	r, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, "B", r.Paper.Title)

	require.NoError(t, b.Select(2))
	r, _ = b.Snapshot().Selection()
	assert.Equal(t, "C", r.Paper.Title)

	b.Back()
	s = b.Snapshot()
	_, ok = s.Selection()
	assert.False(t, ok)
	assert.Equal(t, before, s.Results)
}

func TestSelectOutOfRange(t *testing.T) {
	b := New(&stubEngine{results: map[string][]types.Result{"q": papers("A")}})
	require.NoError(t, b.Submit(context.Background(), types.ModePapers, "q"))

	for _, i := range []int{-1, 1, 7} {
		assert.ErrorIs(t, b.Select(i), ErrNoSuchItem)
	}
	assert.EqualError(t, b.Select(7), "no result at that position: index 7 of 1")
	assert.Equal(t, -1, b.Snapshot().Selected)
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	eng := &gatedEngine{
		started: make(chan string),
		gates: map[string]chan []types.Result{
			"old": make(chan []types.Result, 1),
			"new": make(chan []types.Result, 1),
		},
	}
	b := New(eng)

	oldDone := make(chan error, 1)
	go func() { oldDone <- b.Submit(context.Background(), types.ModePapers, "old") }()
	require.Equal(t, "old", <-eng.started)

	newDone := make(chan error, 1)
	go func() { newDone <- b.Submit(context.Background(), types.ModePapers, "new") }()
	require.Equal(t, "new", <-eng.started)

	assert.True(t, b.Snapshot().Loading)

	eng.gates["new"] <- papers("fresh")
	require.NoError(t, <-newDone)

	eng.gates["old"] <- papers("stale 1", "stale 2")
	assert.ErrorIs(t, <-oldDone, ErrSuperseded)

	s := b.Snapshot()
	assert.Equal(t, "new", s.Query)
	assert.False(t, s.Loading)
	require.Len(t, s.Results, 1)
	assert.Equal(t, "fresh", s.Results[0].Paper.Title)
}

func TestSnapshotIsACopy(t *testing.T) {
	b := New(&stubEngine{results: map[string][]types.Result{"q": papers("A")}})
	require.NoError(t, b.Submit(context.Background(), types.ModePapers, "q"))

	s := b.Snapshot()
	s.Results[0] = types.PaperResult(types.Paper{Title: "changed"})
	assert.Equal(t, "A", b.Snapshot().Results[0].Paper.Title)
}

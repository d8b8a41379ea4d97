// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/orquideira/internal/httputil"
	"github.com/pdiddy/orquideira/pkg/types"
)

// fakeRegistry serves canned profiles and records which iDs were requested.
type fakeRegistry struct {
	mu      sync.Mutex
	calls   []string
	failing map[string]bool
	delay   time.Duration

	active    atomic.Int32
	maxActive atomic.Int32
}

func (f *fakeRegistry) Profile(_ context.Context, id string) (Profile, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		old := f.maxActive.Load()
		if n <= old || f.maxActive.CompareAndSwap(old, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.failing[id] {
		return Profile{}, fmt.Errorf("profile %s unavailable", id)
	}
	return Profile{
		EducationSummary: "Edu " + id,
		Affiliations:     []string{"Org " + id},
	}, nil
}

func (f *fakeRegistry) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// authorSearchServer answers /author/search with body.
func authorSearchServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/author/search", r.URL.Path)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func authorJSON(id, name, orcid string) string {
	ext := `{}`
	if orcid != "" {
		ext = fmt.Sprintf(`{"ORCID":%q}`, orcid)
	}
	return fmt.Sprintf(`{"authorId":%q,"name":%q,"hIndex":7,"publicationCount":30,"citationCount":400,"externalIds":%s}`, id, name, ext)
}

func TestNormalizeQuery(t *testing.T) {
	q, err := NormalizeQuery("  orchids \n")
	require.NoError(t, err)
	assert.Equal(t, "orchids", q)

	for _, blank := range []string{"", "   ", "\t\n"} {
		_, err := NormalizeQuery(blank)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
}

func TestSearchRejectsEmptyQueryWithoutRequest(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer ts.Close()

	s := &Searcher{Scholar: &SemanticScholarClient{Client: &httputil.Client{HTTP: ts.Client()}, BaseURL: ts.URL}}
	_, err := s.Search(context.Background(), types.ModePapers, "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Zero(t, hits.Load())
}

func TestSearchUnknownMode(t *testing.T) {
	s := &Searcher{}
	_, err := s.Search(context.Background(), types.SearchMode("venues"), "x")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestSearchPapersMode(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		fmt.Fprint(w, `{"data":[{"title":"A"},{"title":"B","year":2020}]}`)
	}))
	defer ts.Close()

	s := &Searcher{Scholar: &SemanticScholarClient{Client: &httputil.Client{HTTP: ts.Client()}, BaseURL: ts.URL}}
	results, err := s.Search(context.Background(), types.ModePapers, "  orchid  ")
	require.NoError(t, err)

	assert.Equal(t, "orchid", gotQuery)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, types.KindPaper, r.Kind)
		require.NotNil(t, r.Paper)
		assert.Nil(t, r.Author)
	}
	assert.Equal(t, "A", results[0].Paper.Title)
	assert.Equal(t, "2020", results[1].Paper.YearString())
}

func TestSearchPapersFailureYieldsNoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	s := &Searcher{Scholar: &SemanticScholarClient{Client: &httputil.Client{HTTP: ts.Client()}, BaseURL: ts.URL}}
	results, err := s.Search(context.Background(), types.ModePapers, "orchid")
	require.Error(t, err)
	assert.Nil(t, results)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
}

func TestSearchAuthorsSkipsAuthorsWithoutORCID(t *testing.T) {
	ts := authorSearchServer(t, `{"data":[`+
		authorJSON("1", "Ana", "0000-0000-0000-0001")+`,`+
		authorJSON("2", "Bruno", "")+`,`+
		`{"authorId":"3","name":"Caio"},`+
		authorJSON("4", "Dora", "0000-0000-0000-0004")+`]}`)

	reg := &fakeRegistry{}
	s := &Searcher{Scholar: &SemanticScholarClient{Client: &httputil.Client{HTTP: ts.Client()}, BaseURL: ts.URL}, Registry: reg}

	authors, err := s.SearchAuthors(context.Background(), "orchid")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"0000-0000-0000-0001", "0000-0000-0000-0004"}, reg.called())
	require.Len(t, authors, 2)
	assert.Equal(t, "Ana", authors[0].Name)
	assert.Equal(t, "Dora", authors[1].Name)
}

func TestSearchAuthorsJoinsBothSources(t *testing.T) {
	ts := authorSearchServer(t, `{"data":[`+authorJSON("1", "Ana Souza", "0000-0000-0000-0001")+`]}`)
	s := &Searcher{Scholar: &SemanticScholarClient{Client: &httputil.Client{HTTP: ts.Client()}, BaseURL: ts.URL}, Registry: &fakeRegistry{}}

	authors, err := s.SearchAuthors(context.Background(), "souza")
	require.NoError(t, err)
	require.Len(t, authors, 1)

	a := authors[0]
	assert.Equal(t, "Ana Souza", a.Name)
	assert.Equal(t, "0000-0000-0000-0001", a.ExternalID)
	assert.Equal(t, 7, a.HIndex)
	assert.Equal(t, 30, a.TotalPublications)
	assert.Equal(t, 400, a.TotalCitations)
	assert.Equal(t, "Edu 0000-0000-0000-0001", a.EducationSummary)
	assert.Equal(t, []string{"Org 0000-0000-0000-0001"}, a.Affiliations)
	assert.Equal(t, []string{}, a.EducationDetails)
	assert.Equal(t, []string{}, a.ProfessionalExperiences)
	assert.Equal(t, []types.PublicationSummary{}, a.Publications)
	assert.Nil(t, a.PersonalPageURL)
}

func TestSearchAuthorsInitialFailureIsFatal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	reg := &fakeRegistry{}
	s := &Searcher{Scholar: &SemanticScholarClient{Client: &httputil.Client{HTTP: ts.Client()}, BaseURL: ts.URL}, Registry: reg}

	results, err := s.Search(context.Background(), types.ModeAuthors, "orchid")
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "Too Many Requests")
	assert.Empty(t, reg.called())
}

func TestSearchAuthorsDropsFailedLookups(t *testing.T) {
	tests := []struct {
		name      string
		qualified int
		failing   []int
	}{
		{"none fail", 4, nil},
		{"one fails", 4, []int{2}},
		{"all fail", 3, []int{0, 1, 2}},
		{"no qualifying authors", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits []string
			reg := &fakeRegistry{failing: map[string]bool{}}
			for i := 0; i < tt.qualified; i++ {
				id := fmt.Sprintf("0000-0000-0000-%04d", i)
				hits = append(hits, authorJSON(fmt.Sprint(i), fmt.Sprintf("Author %d", i), id))
			}
			for _, i := range tt.failing {
				reg.failing[fmt.Sprintf("0000-0000-0000-%04d", i)] = true
			}
			ts := authorSearchServer(t, `{"data":[`+strings.Join(hits, ",")+`]}`)
			s := &Searcher{Scholar: &SemanticScholarClient{Client: &httputil.Client{HTTP: ts.Client()}, BaseURL: ts.URL}, Registry: reg}

			results, err := s.Search(context.Background(), types.ModeAuthors, "orchid")
			require.NoError(t, err)
			require.NotNil(t, results)
			assert.Len(t, results, tt.qualified-len(tt.failing))
			assert.Len(t, reg.called(), tt.qualified)
			for _, r := range results {
				assert.Equal(t, types.KindAuthor, r.Kind)
				assert.False(t, reg.failing[r.Author.ExternalID])
			}
		})
	}
}

func TestEnrichAuthorsPreservesOrder(t *testing.T) {
	stubs := make([]authorStub, 10)
	for i := range stubs {
		stubs[i] = authorStub{Name: fmt.Sprintf("A%d", i), ORCID: fmt.Sprintf("id-%d", i)}
	}
	reg := &fakeRegistry{failing: map[string]bool{"id-3": true}}

	authors := enrichAuthors(context.Background(), stubs, reg, 0)
	require.Len(t, authors, 9)
	want := []string{"A0", "A1", "A2", "A4", "A5", "A6", "A7", "A8", "A9"}
	for i, a := range authors {
		assert.Equal(t, want[i], a.Name)
	}
}

func TestEnrichAuthorsBoundsConcurrency(t *testing.T) {
	stubs := make([]authorStub, 12)
	for i := range stubs {
		stubs[i] = authorStub{ORCID: fmt.Sprintf("id-%d", i)}
	}
	reg := &fakeRegistry{delay: 10 * time.Millisecond}

	authors := enrichAuthors(context.Background(), stubs, reg, 3)
	assert.Len(t, authors, 12)
	assert.LessOrEqual(t, reg.maxActive.Load(), int32(3))
}

func TestNewSearcherWiresConfig(t *testing.T) {
	s := NewSearcher(types.SearchConfig{
		SemanticScholarURL:       "http://s2.test",
		ORCIDURL:                 "http://orcid.test",
		SemanticScholarAPIKey:    "k",
		ORCIDToken:               "t",
		MaxResults:               20,
		MaxEnrichmentConcurrency: 4,
	})
	assert.Equal(t, "http://s2.test", s.Scholar.BaseURL)
	assert.Equal(t, "k", s.Scholar.APIKey)
	assert.Equal(t, 20, s.Scholar.Limit)
	assert.Equal(t, 4, s.MaxConcurrency)

	reg, ok := s.Registry.(*ORCIDClient)
	require.True(t, ok)
	assert.Equal(t, "http://orcid.test", reg.BaseURL)
	assert.Equal(t, "t", reg.Token)
	assert.Same(t, s.Scholar.Client, reg.Client)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/orquideira/internal/httputil"
	"github.com/pdiddy/orquideira/pkg/types"
)

func intPtr(n int) *int { return &n }

// withSemanticBase points the Semantic Scholar client at ts for one test.
func withSemanticBase(t *testing.T, ts *httptest.Server) {
	t.Helper()
	old := semanticAPIBase
	semanticAPIBase = ts.URL
	t.Cleanup(func() { semanticAPIBase = old })
}

func scholarFor(ts *httptest.Server) *SemanticScholarClient {
	return &SemanticScholarClient{Client: &httputil.Client{HTTP: ts.Client()}}
}

// --- Request construction ---

func TestSemanticPaperSearchRequestParams(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total":0,"offset":0,"data":[]}`)
	}))
	defer ts.Close()
	withSemanticBase(t, ts)

	c := scholarFor(ts)
	c.Limit = 15
	_, err := c.searchPapers(context.Background(), "orchid conservation & pollinators")
	require.NoError(t, err)

	assert.Equal(t, "/paper/search", captured.URL.Path)
	q := captured.URL.Query()
	assert.Equal(t, "orchid conservation & pollinators", q.Get("query"))
	assert.Equal(t, paperFields, q.Get("fields"))
	assert.Equal(t, "15", q.Get("limit"))
	assert.Equal(t, "application/json", captured.Header.Get("Accept"))
}

func TestSemanticAuthorSearchRequestParams(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer ts.Close()
	withSemanticBase(t, ts)

	_, err := scholarFor(ts).searchAuthors(context.Background(), "Maria Oliveira")
	require.NoError(t, err)

	assert.Equal(t, "/author/search", captured.URL.Path)
	assert.Equal(t, "Maria Oliveira", captured.URL.Query().Get("query"))
	assert.Equal(t, authorFields, captured.URL.Query().Get("fields"))
	assert.Empty(t, captured.URL.Query().Get("limit"))
}

func TestSemanticAPIKeyHeader(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
	}{
		{"with API key", "test-key-123"},
		{"without API key", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("x-api-key")
				fmt.Fprint(w, `{"data":[]}`)
			}))
			defer ts.Close()
			withSemanticBase(t, ts)

			c := scholarFor(ts)
			c.APIKey = tt.apiKey
			_, err := c.searchPapers(context.Background(), "test")
			require.NoError(t, err)
			assert.Equal(t, tt.apiKey, got)
		})
	}
}

func TestSemanticBaseURLOverride(t *testing.T) {
	var hit bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = r.URL.Path == "/graph/v1/paper/search"
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer ts.Close()

	c := scholarFor(ts)
	c.BaseURL = ts.URL + "/graph/v1/"
	_, err := c.searchPapers(context.Background(), "test")
	require.NoError(t, err)
	assert.True(t, hit)
}

// --- Error cases ---

func TestSemanticSearchHTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantStatus string
	}{
		{"429 rate limit", http.StatusTooManyRequests, "Too Many Requests"},
		{"500 server error", http.StatusInternalServerError, "Internal Server Error"},
		{"404 not found", http.StatusNotFound, "Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()
			withSemanticBase(t, ts)

			_, err := scholarFor(ts).searchPapers(context.Background(), "test")
			require.Error(t, err)

			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tt.statusCode, upErr.StatusCode)
			assert.Equal(t, tt.wantStatus, upErr.Status)
			assert.Contains(t, err.Error(), fmt.Sprintf("HTTP %d", tt.statusCode))
		})
	}
}

func TestSemanticSearchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{invalid json`)
	}))
	defer ts.Close()
	withSemanticBase(t, ts)

	_, err := scholarFor(ts).searchPapers(context.Background(), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

// --- Normalization ---

func TestPaperNormalizationExample(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[{"title":"A review","authors":[{"name":"A"}],"citationCount":null,"year":2023}]}`)
	}))
	defer ts.Close()
	withSemanticBase(t, ts)

	s := &Searcher{Scholar: scholarFor(ts)}
	papers, err := s.SearchPapers(context.Background(), "orchid conservation")
	require.NoError(t, err)
	require.Len(t, papers, 1)

	want := types.Paper{
		Title:           "A review",
		Authors:         []string{"A"},
		CitationCount:   0,
		Year:            intPtr(2023),
		Abstract:        "Resumo não disponível",
		DOI:             "N/A",
		References:      []types.PaperRef{},
		Recommendations: []types.PaperRef{},
		FieldsOfStudy:   []string{},
	}
	assert.Equal(t, want, papers[0])
}

func TestNormalizePaperDefaults(t *testing.T) {
	p := normalizePaper(semanticPaper{})

	assert.Equal(t, "", p.Title)
	assert.NotNil(t, p.Authors)
	assert.Empty(t, p.Authors)
	assert.Equal(t, 0, p.CitationCount)
	assert.Nil(t, p.Year)
	assert.Equal(t, types.AbstractPlaceholder, p.Abstract)
	assert.Equal(t, types.DOIPlaceholder, p.DOI)
	assert.NotNil(t, p.References)
	assert.NotNil(t, p.Recommendations)
	assert.NotNil(t, p.FieldsOfStudy)
	assert.Equal(t, "N/A", p.YearString())
}

func TestNormalizePaperKeepsUpstreamValues(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[{
			"title":"Orchid <i>pollination</i> networks",
			"authors":[{"name":"Ana Lima"},{"name":""},{"name":"Roberto Martins"}],
			"citationCount":18,
			"year":2023,
			"abstract":"<jats:p>Bees &amp; orchids.</jats:p>",
			"doi":"10.1234/jecol.2023.008",
			"references":[{"paperId":"r1","title":"Ref one","year":2001}],
			"recommendations":[{"title":"Related"}],
			"fieldsOfStudy":["Biology","Ecology","Biology"]
		}]}`)
	}))
	defer ts.Close()
	withSemanticBase(t, ts)

	s := &Searcher{Scholar: scholarFor(ts)}
	papers, err := s.SearchPapers(context.Background(), "orchid")
	require.NoError(t, err)
	require.Len(t, papers, 1)

	p := papers[0]
	assert.Equal(t, "Orchid pollination networks", p.Title)
	assert.Equal(t, []string{"Ana Lima", "Roberto Martins"}, p.Authors)
	assert.Equal(t, 18, p.CitationCount)
	assert.Equal(t, "2023", p.YearString())
	assert.Equal(t, "Bees & orchids.", p.Abstract)
	assert.Equal(t, "10.1234/jecol.2023.008", p.DOI)
	assert.Equal(t, []types.PaperRef{{PaperID: "r1", Title: "Ref one", Year: 2001}}, p.References)
	assert.Equal(t, []types.PaperRef{{Title: "Related"}}, p.Recommendations)
	assert.Equal(t, []string{"Biology", "Ecology"}, p.FieldsOfStudy)
}

func TestNormalizePaperDOIFromExternalIDs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[{"title":"T","externalIds":{"DOI":"10.555/x"}}]}`)
	}))
	defer ts.Close()
	withSemanticBase(t, ts)

	s := &Searcher{Scholar: scholarFor(ts)}
	papers, err := s.SearchPapers(context.Background(), "t")
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, "10.555/x", papers[0].DOI)
}

func TestCitationCountNegativeClampedToZero(t *testing.T) {
	p := normalizePaper(semanticPaper{CitationCount: intPtr(-3)})
	assert.Equal(t, 0, p.CitationCount)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain title", "plain title"},
		{"  spaced \n  out ", "spaced out"},
		{"<p>Tagged</p> text", "Tagged text"},
		{"a &lt; b &amp; c", "a < b & c"},
		{"<script>alert(1)</script>Safe", "Safe"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.in))
		})
	}
}

func TestExternalIDShapes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"name":"String","externalIds":{"ORCID":"0000-0001-2345-6789"}},
			{"name":"Array","externalIds":{"ORCID":["", "0000-0002-3456-7890"]}},
			{"name":"Missing","externalIds":{"DBLP":["x"]}},
			{"name":"Null","externalIds":null},
			{"name":"Blank","externalIds":{"ORCID":"  "}}
		]}`)
	}))
	defer ts.Close()
	withSemanticBase(t, ts)

	raw, err := scholarFor(ts).searchAuthors(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, raw, 5)

	var got []string
	for _, a := range raw {
		got = append(got, externalID(a.ExternalIDs, "ORCID"))
	}
	assert.Equal(t, []string{"0000-0001-2345-6789", "0000-0002-3456-7890", "", "", ""}, got)

	_, ok := raw[2].stub()
	assert.False(t, ok)
	stub, ok := raw[0].stub()
	require.True(t, ok)
	assert.Equal(t, "String", stub.Name)
	assert.True(t, strings.HasPrefix(stub.ORCID, "0000-0001"))
}

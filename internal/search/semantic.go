// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/orquideira/internal/httputil"
)

// semanticAPIBase is the Semantic Scholar graph API root. Declared as a var
// so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1"

const (
	paperFields  = "title,authors,citationCount,year,abstract,doi,references,recommendations,fieldsOfStudy"
	authorFields = "name,authorId,hIndex,publicationCount,citationCount,externalIds"
)

const semanticService = "Semantic Scholar"

// SemanticScholarClient queries the Semantic Scholar paper and author
// search endpoints.
type SemanticScholarClient struct {
	Client *httputil.Client

	// BaseURL overrides semanticAPIBase when set.
	BaseURL string
	APIKey  string

	// Limit is sent as the limit parameter when positive.
	Limit int
}

// searchPapers returns the raw paper hits for query.
func (c *SemanticScholarClient) searchPapers(ctx context.Context, query string) ([]semanticPaper, error) {
	var sr semanticResponse[semanticPaper]
	if err := c.get(ctx, "/paper/search", query, paperFields, &sr); err != nil {
		return nil, err
	}
	return sr.Data, nil
}

// searchAuthors returns the raw author hits for query.
func (c *SemanticScholarClient) searchAuthors(ctx context.Context, query string) ([]semanticAuthor, error) {
	var sr semanticResponse[semanticAuthor]
	if err := c.get(ctx, "/author/search", query, authorFields, &sr); err != nil {
		return nil, err
	}
	return sr.Data, nil
}

func (c *SemanticScholarClient) get(ctx context.Context, path, query, fields string, out any) error {
	params := url.Values{
		"query":  {query},
		"fields": {fields},
	}
	if c.Limit > 0 {
		params.Set("limit", strconv.Itoa(c.Limit))
	}

	base := c.BaseURL
	if base == "" {
		base = semanticAPIBase
	}
	reqURL := strings.TrimRight(base, "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	start := time.Now()
	resp, err := c.Client.Do(ctx, req)
	observeUpstream(semanticService, start)
	if err != nil {
		return fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Service: semanticService, StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	return nil
}

// statusText returns the reason phrase of resp, e.g. "Too Many Requests".
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}

// Semantic Scholar API JSON structures. Pointers mark values whose absence
// must be told apart from zero.
type semanticResponse[T any] struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Data   []T `json:"data"`
}

type semanticPaper struct {
	PaperID         string                     `json:"paperId"`
	Title           string                     `json:"title"`
	Abstract        string                     `json:"abstract"`
	Year            *int                       `json:"year"`
	CitationCount   *int                       `json:"citationCount"`
	DOI             string                     `json:"doi"`
	Authors         []semanticAuthorRef        `json:"authors"`
	References      []semanticPaperRef         `json:"references"`
	Recommendations []semanticPaperRef         `json:"recommendations"`
	FieldsOfStudy   []string                   `json:"fieldsOfStudy"`
	ExternalIDs     map[string]json.RawMessage `json:"externalIds"`
}

type semanticAuthorRef struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticPaperRef struct {
	PaperID string `json:"paperId"`
	Title   string `json:"title"`
	Year    int    `json:"year"`
}

type semanticAuthor struct {
	AuthorID         string                     `json:"authorId"`
	Name             string                     `json:"name"`
	HIndex           *int                       `json:"hIndex"`
	PublicationCount *int                       `json:"publicationCount"`
	CitationCount    *int                       `json:"citationCount"`
	ExternalIDs      map[string]json.RawMessage `json:"externalIds"`
}

// externalID returns the named identifier. Semantic Scholar sends most ids
// as strings but some as arrays; the first non-empty entry wins.
func externalID(ids map[string]json.RawMessage, key string) string {
	raw, ok := ids[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, v := range list {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// authorStub is an author search hit that qualifies for enrichment.
type authorStub struct {
	Name             string
	ORCID            string
	HIndex           int
	PublicationCount int
	CitationCount    int
}

// stub reports whether the author carries an ORCID iD and, if so, returns
// its defaulted fields.
func (a semanticAuthor) stub() (authorStub, bool) {
	orcid := externalID(a.ExternalIDs, "ORCID")
	if orcid == "" {
		return authorStub{}, false
	}
	return authorStub{
		Name:             cleanText(a.Name),
		ORCID:            orcid,
		HIndex:           nonNegative(a.HIndex),
		PublicationCount: nonNegative(a.PublicationCount),
		CitationCount:    nonNegative(a.CitationCount),
	}, true
}

func nonNegative(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

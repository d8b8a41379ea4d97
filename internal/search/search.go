// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search finds papers and researchers in external bibliometric APIs.
//
// Paper mode issues one Semantic Scholar paper search and normalizes the
// hits. Author mode issues one Semantic Scholar author search, keeps the
// authors that carry an ORCID iD, fetches every ORCID profile concurrently,
// and joins the two sources into flat Author records. A failed initial
// search fails the whole call; a failed profile lookup only drops that
// author.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/orquideira/internal/httputil"
	"github.com/pdiddy/orquideira/internal/logger"
	"github.com/pdiddy/orquideira/pkg/types"
)

// DefaultEnrichmentConcurrency bounds profile lookups when the config
// leaves it unset.
const DefaultEnrichmentConcurrency = 8

var (
	// ErrEmptyQuery is returned for a query that is blank after trimming.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrUnknownMode is returned for a mode other than papers or authors.
	ErrUnknownMode = errors.New("unknown search mode")
)

// UpstreamError reports a non-success HTTP status from an external API.
type UpstreamError struct {
	Service    string
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d: %s", e.Service, e.StatusCode, e.Status)
}

// ProfileRegistry looks up a researcher profile by ORCID iD.
type ProfileRegistry interface {
	Profile(ctx context.Context, orcidID string) (Profile, error)
}

// Searcher runs both search branches.
type Searcher struct {
	Scholar  *SemanticScholarClient
	Registry ProfileRegistry

	// MaxConcurrency bounds concurrent profile lookups; 0 means unbounded.
	MaxConcurrency int
}

// NewSearcher wires a Searcher against the real APIs described by cfg.
func NewSearcher(cfg types.SearchConfig) *Searcher {
	client := httputil.NewClient(cfg)
	return &Searcher{
		Scholar: &SemanticScholarClient{
			Client:  client,
			BaseURL: cfg.SemanticScholarURL,
			APIKey:  cfg.SemanticScholarAPIKey,
			Limit:   cfg.MaxResults,
		},
		Registry: &ORCIDClient{
			Client:  client,
			BaseURL: cfg.ORCIDURL,
			Token:   cfg.ORCIDToken,
		},
		MaxConcurrency: cfg.MaxEnrichmentConcurrency,
	}
}

// NormalizeQuery trims q and rejects it when nothing is left.
func NormalizeQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", ErrEmptyQuery
	}
	return q, nil
}

// Search dispatches to the branch for mode and returns the unioned result
// list. The returned slice is never nil on success.
func (s *Searcher) Search(ctx context.Context, mode types.SearchMode, query string) ([]types.Result, error) {
	q, err := NormalizeQuery(query)
	if err != nil {
		return nil, err
	}

	defer logger.Track(ctx, fmt.Sprintf("%s search %q", mode, q))()
	start := time.Now()

	var results []types.Result
	switch mode {
	case types.ModePapers:
		var papers []types.Paper
		papers, err = s.SearchPapers(ctx, q)
		results = make([]types.Result, 0, len(papers))
		for _, p := range papers {
			results = append(results, types.PaperResult(p))
		}
	case types.ModeAuthors:
		var authors []types.Author
		authors, err = s.SearchAuthors(ctx, q)
		results = make([]types.Result, 0, len(authors))
		for _, a := range authors {
			results = append(results, types.AuthorResult(a))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	observeSearch(mode, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	logger.For(ctx).WithField("mode", mode).WithField("results", len(results)).Info("search finished")
	return results, nil
}

// SearchPapers runs the paper branch: one request, no retry on failure.
func (s *Searcher) SearchPapers(ctx context.Context, query string) ([]types.Paper, error) {
	raw, err := s.Scholar.searchPapers(ctx, query)
	if err != nil {
		return nil, err
	}
	papers := make([]types.Paper, 0, len(raw))
	for _, p := range raw {
		papers = append(papers, normalizePaper(p))
	}
	return papers, nil
}

// SearchAuthors runs the author branch. Authors without an ORCID iD are
// dropped before enrichment; authors whose profile lookup fails are dropped
// after it. Only a failure of the author search itself is returned.
func (s *Searcher) SearchAuthors(ctx context.Context, query string) ([]types.Author, error) {
	raw, err := s.Scholar.searchAuthors(ctx, query)
	if err != nil {
		return nil, err
	}

	stubs := make([]authorStub, 0, len(raw))
	for _, a := range raw {
		if stub, ok := a.stub(); ok {
			stubs = append(stubs, stub)
		}
	}
	logger.For(ctx).Debugf("author search: %d hits, %d with ORCID", len(raw), len(stubs))

	return enrichAuthors(ctx, stubs, s.Registry, s.MaxConcurrency), nil
}

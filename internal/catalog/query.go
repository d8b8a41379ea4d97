// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/orquideira/pkg/types"
)

const paperColumns = `id, title, authors, abstract, journal, year, citations, doi`

const researcherColumns = `id, name, orcid_id, avatar, bio, institution, country, h_index,
	citations, publications, jobs, education`

// SearchPapers returns papers whose title, abstract, or any single author
// name contains q, ignoring case. An empty q matches every paper. Results keep
// the fixture order.
func (s *Store) SearchPapers(ctx context.Context, q string) ([]types.CatalogPaper, error) {
	needle := fold(strings.TrimSpace(q))
	return s.queryPapers(ctx,
		`SELECT `+paperColumns+` FROM papers
		 WHERE ?1 = '' OR instr(fold(title), ?1) > 0 OR instr(fold(abstract), ?1) > 0
		    OR EXISTS (SELECT 1 FROM json_each(papers.authors) WHERE instr(fold(json_each.value), ?1) > 0)
		 ORDER BY seq`,
		needle)
}

// HotPapers returns the n most cited papers, most cited first. n <= 0
// selects DefaultHotPapers.
func (s *Store) HotPapers(ctx context.Context, n int) ([]types.CatalogPaper, error) {
	if n <= 0 {
		n = DefaultHotPapers
	}
	return s.queryPapers(ctx,
		`SELECT `+paperColumns+` FROM papers ORDER BY citations DESC, seq LIMIT ?`, n)
}

// SearchResearchers returns researchers whose name, bio, or institution
// contains q, ignoring case. An empty q matches every researcher.
func (s *Store) SearchResearchers(ctx context.Context, q string) ([]types.Researcher, error) {
	needle := fold(strings.TrimSpace(q))
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+researcherColumns+` FROM researchers
		 WHERE ?1 = '' OR instr(fold(name), ?1) > 0 OR instr(fold(bio), ?1) > 0 OR instr(fold(institution), ?1) > 0
		 ORDER BY seq`,
		needle)
	if err != nil {
		return nil, fmt.Errorf("querying researchers: %w", err)
	}
	defer rows.Close()

	researchers := []types.Researcher{}
	for rows.Next() {
		r, err := scanResearcher(rows)
		if err != nil {
			return nil, err
		}
		researchers = append(researchers, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating researchers: %w", err)
	}

	for i := range researchers {
		if researchers[i].Works, err = s.works(ctx, researchers[i].Name); err != nil {
			return nil, err
		}
	}
	return researchers, nil
}

// Researcher returns the researcher with id. An unknown id falls back to
// the first researcher in the catalog, so a profile page always renders.
// ErrNotFound is returned only when the catalog has no researchers.
func (s *Store) Researcher(ctx context.Context, id string) (types.Researcher, error) {
	r, err := s.ResearcherStrict(ctx, id)
	if !errors.Is(err, ErrNotFound) {
		return r, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+researcherColumns+` FROM researchers ORDER BY seq LIMIT 1`)
	return s.loadResearcher(ctx, row)
}

// ResearcherStrict returns the researcher with id or ErrNotFound.
func (s *Store) ResearcherStrict(ctx context.Context, id string) (types.Researcher, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+researcherColumns+` FROM researchers WHERE id = ?`, id)
	return s.loadResearcher(ctx, row)
}

func (s *Store) loadResearcher(ctx context.Context, row *sql.Row) (types.Researcher, error) {
	r, err := scanResearcher(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Researcher{}, ErrNotFound
	}
	if err != nil {
		return types.Researcher{}, err
	}
	if r.Works, err = s.works(ctx, r.Name); err != nil {
		return types.Researcher{}, err
	}
	return r, nil
}

// works lists the catalog papers that name author among their authors.
func (s *Store) works(ctx context.Context, author string) ([]types.Work, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, year, citations FROM papers
		 WHERE EXISTS (SELECT 1 FROM json_each(papers.authors) WHERE json_each.value = ?)
		 ORDER BY seq`,
		author)
	if err != nil {
		return nil, fmt.Errorf("querying works: %w", err)
	}
	defer rows.Close()

	works := []types.Work{}
	for rows.Next() {
		var w types.Work
		if err := rows.Scan(&w.ID, &w.Title, &w.Year, &w.Citations); err != nil {
			return nil, fmt.Errorf("scanning work: %w", err)
		}
		works = append(works, w)
	}
	return works, rows.Err()
}

func (s *Store) queryPapers(ctx context.Context, query string, args ...any) ([]types.CatalogPaper, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	papers := []types.CatalogPaper{}
	for rows.Next() {
		var (
			p       types.CatalogPaper
			authors string
		)
		if err := rows.Scan(&p.ID, &p.Title, &authors, &p.Abstract, &p.Journal, &p.Year, &p.Citations, &p.DOI); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		if err := json.Unmarshal([]byte(authors), &p.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors of paper %s: %w", p.ID, err)
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating papers: %w", err)
	}
	return papers, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResearcher(row scanner) (types.Researcher, error) {
	var (
		r                                         types.Researcher
		citations, publications, jobs, education string
	)
	err := row.Scan(&r.ID, &r.Name, &r.ORCID, &r.Avatar, &r.Bio, &r.Institution, &r.Country, &r.HIndex,
		&citations, &publications, &jobs, &education)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("scanning researcher: %w", err)
	}

	for _, col := range []struct {
		name string
		raw  string
		dst  any
	}{
		{"citations", citations, &r.Citations},
		{"publications", publications, &r.Publications},
		{"jobs", jobs, &r.Jobs},
		{"education", education, &r.Education},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			return r, fmt.Errorf("decoding %s of researcher %s: %w", col.name, r.ID, err)
		}
	}
	if r.Citations == nil {
		r.Citations = map[int]int{}
	}
	if r.Publications == nil {
		r.Publications = map[int]int{}
	}
	if r.Jobs == nil {
		r.Jobs = []types.Job{}
	}
	if r.Education == nil {
		r.Education = []types.Education{}
	}
	return r, nil
}

// Stats turns a researcher's yearly counts into chart series sorted by
// year, with totals.
func Stats(r types.Researcher) types.ResearcherStats {
	st := types.ResearcherStats{
		CitationsByYear:    series(r.Citations),
		PublicationsByYear: series(r.Publications),
	}
	for _, p := range st.CitationsByYear {
		st.TotalCitations += p.Count
	}
	for _, p := range st.PublicationsByYear {
		st.TotalPublications += p.Count
	}
	return st
}

func series(m map[int]int) []types.YearCount {
	out := make([]types.YearCount, 0, len(m))
	for year, n := range m {
		out = append(out, types.YearCount{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for orquideira.
// Paper and Author are the two normalized search result shapes; Result is
// the tagged variant that carries exactly one of them. CatalogPaper and
// Researcher back the mock profile and dashboard views.
package types

import "strconv"

// Placeholders substituted for missing upstream paper fields.
const (
	AbstractPlaceholder = "Resumo não disponível"
	DOIPlaceholder      = "N/A"
)

// PaperRef is an opaque cross-reference to another work, used for
// references and recommendations. Only fields present upstream are kept.
type PaperRef struct {
	PaperID string `json:"paperId,omitempty" yaml:"paper_id,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Year    int    `json:"year,omitempty" yaml:"year,omitempty"`
}

// Paper is a normalized paper search result. Every field has a usable value:
// counts default to 0, text to a placeholder, and collections to empty
// non-nil slices. Year is nil when the source does not know it.
type Paper struct {
	// Title is the paper title with markup stripped.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// CitationCount is the number of citations (0 when unknown).
	CitationCount int `json:"citationCount" yaml:"citation_count"`

	// Year is the publication year, or nil when absent.
	Year *int `json:"year" yaml:"year"`

	// Abstract is the abstract text or AbstractPlaceholder.
	Abstract string `json:"abstract" yaml:"abstract"`

	// DOI is the bare DOI or DOIPlaceholder.
	DOI string `json:"doi" yaml:"doi"`

	References      []PaperRef `json:"references" yaml:"references"`
	Recommendations []PaperRef `json:"recommendations" yaml:"recommendations"`

	// FieldsOfStudy holds distinct field names in source order.
	FieldsOfStudy []string `json:"fieldsOfStudy" yaml:"fields_of_study"`
}

// YearString returns the year as text, or "N/A" when absent.
func (p Paper) YearString() string {
	if p.Year == nil {
		return "N/A"
	}
	return strconv.Itoa(*p.Year)
}

// CatalogPaper is a paper from the local mock catalog.
type CatalogPaper struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Authors   []string `json:"authors" yaml:"authors"`
	Abstract  string   `json:"abstract" yaml:"abstract"`
	Journal   string   `json:"journal" yaml:"journal"`
	Year      int      `json:"year" yaml:"year"`
	Citations int      `json:"citations" yaml:"citations"`
	DOI       string   `json:"doi,omitempty" yaml:"doi,omitempty"`
}

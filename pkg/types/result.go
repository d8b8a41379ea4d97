// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// SearchMode selects which search branch runs.
type SearchMode string

const (
	ModePapers  SearchMode = "papers"
	ModeAuthors SearchMode = "authors"
)

// ParseSearchMode accepts "papers" or "authors" (case-insensitive). The
// Portuguese labels "publicacoes" and "autores" are accepted as aliases.
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "papers", "paper", "publicacoes", "publicações":
		return ModePapers, nil
	case "authors", "author", "autores":
		return ModeAuthors, nil
	default:
		return "", fmt.Errorf("unknown search mode %q: use papers or authors", s)
	}
}

// Valid reports whether m is one of the known modes.
func (m SearchMode) Valid() bool {
	return m == ModePapers || m == ModeAuthors
}

// ResultKind tags which variant a Result carries.
type ResultKind string

const (
	KindPaper  ResultKind = "paper"
	KindAuthor ResultKind = "author"
)

// Result is a search result holding exactly one of Paper or Author. Build
// it with PaperResult or AuthorResult so Kind and the payload agree.
type Result struct {
	Kind   ResultKind `json:"kind" yaml:"kind"`
	Paper  *Paper     `json:"paper,omitempty" yaml:"paper,omitempty"`
	Author *Author    `json:"author,omitempty" yaml:"author,omitempty"`
}

// PaperResult wraps p as a Result.
func PaperResult(p Paper) Result {
	return Result{Kind: KindPaper, Paper: &p}
}

// AuthorResult wraps a as a Result.
func AuthorResult(a Author) Result {
	return Result{Kind: KindAuthor, Author: &a}
}

// Heading returns the paper title or the author name.
func (r Result) Heading() string {
	switch r.Kind {
	case KindPaper:
		if r.Paper != nil {
			return r.Paper.Title
		}
	case KindAuthor:
		if r.Author != nil {
			return r.Author.Name
		}
	}
	return ""
}

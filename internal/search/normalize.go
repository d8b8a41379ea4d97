// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pdiddy/orquideira/pkg/types"
)

// textPolicy strips every tag. Upstream abstracts and titles sometimes
// carry JATS or HTML markup.
var textPolicy = bluemonday.StrictPolicy()

// cleanText removes markup, decodes entities, and collapses whitespace.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		s = html.UnescapeString(textPolicy.Sanitize(s))
	}
	return strings.Join(strings.Fields(s), " ")
}

// normalizePaper applies the paper defaults: 0 for missing counts,
// placeholders for missing text, empty slices for missing collections.
func normalizePaper(p semanticPaper) types.Paper {
	out := types.Paper{
		Title:           cleanText(p.Title),
		Authors:         make([]string, 0, len(p.Authors)),
		CitationCount:   nonNegative(p.CitationCount),
		Abstract:        cleanText(p.Abstract),
		DOI:             strings.TrimSpace(p.DOI),
		References:      paperRefs(p.References),
		Recommendations: paperRefs(p.Recommendations),
		FieldsOfStudy:   distinct(p.FieldsOfStudy),
	}

	if p.Year != nil {
		year := *p.Year
		out.Year = &year
	}

	for _, a := range p.Authors {
		if name := cleanText(a.Name); name != "" {
			out.Authors = append(out.Authors, name)
		}
	}

	if out.Abstract == "" {
		out.Abstract = types.AbstractPlaceholder
	}
	if out.DOI == "" {
		out.DOI = externalID(p.ExternalIDs, "DOI")
	}
	if out.DOI == "" {
		out.DOI = types.DOIPlaceholder
	}
	return out
}

func paperRefs(refs []semanticPaperRef) []types.PaperRef {
	out := make([]types.PaperRef, 0, len(refs))
	for _, r := range refs {
		out = append(out, types.PaperRef{
			PaperID: r.PaperID,
			Title:   cleanText(r.Title),
			Year:    r.Year,
		})
	}
	return out
}

// distinct returns the non-empty values of in, first occurrence kept.
func distinct(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/orquideira/pkg/types"
)

// PreviewLimit is how many references, recommendations, or publications a
// detail view lists before collapsing the rest into a remainder line.
const PreviewLimit = 5

const unavailable = "Não disponível"

// Row is one line of the list view.
type Row struct {
	Index    int              `json:"index"`
	Kind     types.ResultKind `json:"kind"`
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Meta     string           `json:"meta"`
}

// Field is a labelled value in a detail view.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a bounded preview of a sequence. Remaining counts the items
// left out; More is the line shown for them and is empty when nothing was
// left out.
type Section struct {
	Heading   string   `json:"heading"`
	Items     []string `json:"items"`
	Remaining int      `json:"remaining"`
	More      string   `json:"more,omitempty"`
	Empty     string   `json:"empty,omitempty"`
}

// Detail is the full view of one result.
type Detail struct {
	Kind     types.ResultKind `json:"kind"`
	Heading  string           `json:"heading"`
	Fields   []Field          `json:"fields"`
	Sections []Section        `json:"sections"`
}

// Rows builds the list view.
func Rows(results []types.Result) []Row {
	rows := make([]Row, 0, len(results))
	for i, r := range results {
		row := Row{Index: i, Kind: r.Kind}
		switch {
		case r.Kind == types.KindPaper && r.Paper != nil:
			p := r.Paper
			row.Title = p.Title
			row.Subtitle = "Autores: " + strings.Join(p.Authors, ", ")
			row.Meta = fmt.Sprintf("Áreas: %s • Citações: %d", strings.Join(p.FieldsOfStudy, ", "), p.CitationCount)
		case r.Kind == types.KindAuthor && r.Author != nil:
			a := r.Author
			row.Title = a.Name
			row.Subtitle = "Formação: " + orUnavailable(a.EducationSummary)
			row.Meta = fmt.Sprintf("Índice H: %d", a.HIndex)
		default:
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// DetailOf builds the detail view of r.
func DetailOf(r types.Result) Detail {
	switch {
	case r.Kind == types.KindPaper && r.Paper != nil:
		return paperDetail(*r.Paper)
	case r.Kind == types.KindAuthor && r.Author != nil:
		return authorDetail(*r.Author)
	}
	return Detail{Kind: r.Kind, Fields: []Field{}, Sections: []Section{}}
}

func paperDetail(p types.Paper) Detail {
	d := Detail{
		Kind:    types.KindPaper,
		Heading: "Detalhes do Paper: " + p.Title,
		Fields: []Field{
			{"Resumo", orUnavailable(p.Abstract)},
			{"Ano", p.YearString()},
			{"Autores", strings.Join(p.Authors, ", ")},
			{"DOI", p.DOI},
			{"Número de citações", strconv.Itoa(p.CitationCount)},
			{"Áreas", joinOrUnavailable(p.FieldsOfStudy)},
			{"Referências", strconv.Itoa(len(p.References))},
		},
		Sections: []Section{},
	}
	if len(p.References) > 0 {
		d.Sections = append(d.Sections, preview("Lista de referências", refLines(p.References), "referências", ""))
	}
	if len(p.Recommendations) > 0 {
		d.Sections = append(d.Sections, preview("Artigos recomendados semanticamente", refLines(p.Recommendations), "recomendações", ""))
	}
	return d
}

func authorDetail(a types.Author) Detail {
	page := unavailable
	if a.PersonalPageURL != nil && *a.PersonalPageURL != "" {
		page = *a.PersonalPageURL
	}
	pubs := make([]string, 0, len(a.Publications))
	for _, p := range a.Publications {
		pubs = append(pubs, fmt.Sprintf("%s (%s)", p.Title, p.Year))
	}
	return Detail{
		Kind:    types.KindAuthor,
		Heading: "Detalhes do Autor: " + a.Name,
		Fields: []Field{
			{"ORCID ID", a.ExternalID},
			{"Página pessoal", page},
			{"Afiliações", joinOrUnavailable(a.Affiliations)},
			{"Experiências profissionais", joinOrUnavailable(a.ProfessionalExperiences)},
			{"Formação acadêmica", joinOrUnavailable(a.EducationDetails)},
			{"Número total de publicações", strconv.Itoa(a.TotalPublications)},
			{"Número total de citações", strconv.Itoa(a.TotalCitations)},
			{"Índice H", strconv.Itoa(a.HIndex)},
		},
		Sections: []Section{
			preview("Lista de publicações (resumo)", pubs, "publicações", "Não há publicações disponíveis"),
		},
	}
}

// preview keeps the first PreviewLimit items and records how many were cut.
func preview(heading string, items []string, noun, empty string) Section {
	s := Section{Heading: heading, Items: items}
	if len(items) > PreviewLimit {
		s.Items = items[:PreviewLimit]
		s.Remaining = len(items) - PreviewLimit
		s.More = fmt.Sprintf("E mais %d %s...", s.Remaining, noun)
	}
	if len(items) == 0 {
		s.Items = []string{}
		s.Empty = empty
	}
	return s
}

func refLines(refs []types.PaperRef) []string {
	lines := make([]string, 0, len(refs))
	for _, r := range refs {
		title := r.Title
		if title == "" {
			title = types.WorkTitlePlaceholder
		}
		year := types.WorkYearPlaceholder
		if r.Year > 0 {
			year = strconv.Itoa(r.Year)
		}
		lines = append(lines, fmt.Sprintf("%s (%s)", title, year))
	}
	return lines
}

func orUnavailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return unavailable
	}
	return s
}

func joinOrUnavailable(items []string) string {
	if len(items) == 0 {
		return unavailable
	}
	return strings.Join(items, ", ")
}

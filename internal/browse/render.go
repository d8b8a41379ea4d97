// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"fmt"
	"io"
)

// RenderError writes the single-line failure message.
func RenderError(w io.Writer, msg string) {
	fmt.Fprintf(w, "Erro ao buscar dados: %s\n", msg)
}

// RenderList writes the result list with one-based item numbers.
func RenderList(w io.Writer, rows []Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "Nenhum resultado encontrado.")
		return
	}
	fmt.Fprintf(w, "Resultados da busca (%d)\n\n", len(rows))
	for _, r := range rows {
		fmt.Fprintf(w, "[%d] %s\n", r.Index+1, r.Title)
		fmt.Fprintf(w, "    %s\n", r.Subtitle)
		fmt.Fprintf(w, "    %s\n", r.Meta)
	}
}

// RenderDetail writes one detail view.
func RenderDetail(w io.Writer, d Detail) {
	fmt.Fprintln(w, d.Heading)
	fmt.Fprintln(w)
	for _, f := range d.Fields {
		fmt.Fprintf(w, "%s: %s\n", f.Label, f.Value)
	}
	for _, s := range d.Sections {
		fmt.Fprintf(w, "\n%s:\n", s.Heading)
		if len(s.Items) == 0 && s.Empty != "" {
			fmt.Fprintf(w, "  %s\n", s.Empty)
			continue
		}
		for _, item := range s.Items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
		if s.More != "" {
			fmt.Fprintf(w, "  %s\n", s.More)
		}
	}
}

// Render writes whatever s currently shows: progress, the error, the
// selected detail, or the list.
func Render(w io.Writer, s State) {
	switch {
	case s.Loading:
		fmt.Fprintln(w, "Buscando...")
	case s.Err != "":
		RenderError(w, s.Err)
	default:
		if r, ok := s.Selection(); ok {
			RenderDetail(w, DetailOf(r))
			return
		}
		RenderList(w, Rows(s.Results))
	}
}

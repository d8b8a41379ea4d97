// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/orquideira/internal/catalog"
	"github.com/pdiddy/orquideira/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the local catalog of sample papers and researchers",
	Long: `Catalog searches the bundled sample dataset. Matching is a case-insensitive
substring test on titles, authors, and abstracts for papers, and on names,
institutions, and bios for researchers. An empty query lists everything.

Set catalog.fixture to replace the bundled dataset with your own YAML file.`,
}

var catalogPapersCmd = &cobra.Command{
	Use:   "papers [query]",
	Short: "List catalog papers matching a query",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := catalog.Open(cmd.Context(), appCfg.Catalog)
		if err != nil {
			return err
		}
		defer store.Close()

		papers, err := store.SearchPapers(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return writeCatalog(cmd, papers, func(w io.Writer) { printPapers(w, papers) })
	},
}

var catalogResearchersCmd = &cobra.Command{
	Use:   "researchers [query]",
	Short: "List catalog researchers matching a query",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := catalog.Open(cmd.Context(), appCfg.Catalog)
		if err != nil {
			return err
		}
		defer store.Close()

		rs, err := store.SearchResearchers(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return writeCatalog(cmd, rs, func(w io.Writer) {
			if len(rs) == 0 {
				fmt.Fprintln(w, "Nenhum pesquisador encontrado.")
				return
			}
			for _, r := range rs {
				fmt.Fprintf(w, "%s  %s\n", r.ID, r.Name)
				fmt.Fprintf(w, "    %s, %s • Índice H: %d\n", r.Institution, r.Country, r.HIndex)
			}
		})
	},
}

var hotCmd = &cobra.Command{
	Use:   "hot",
	Short: "Show the most cited catalog papers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("limit")
		if n <= 0 {
			return fmt.Errorf("--limit must be positive")
		}

		store, err := catalog.Open(cmd.Context(), appCfg.Catalog)
		if err != nil {
			return err
		}
		defer store.Close()

		papers, err := store.HotPapers(cmd.Context(), n)
		if err != nil {
			return err
		}
		return writeCatalog(cmd, papers, func(w io.Writer) {
			fmt.Fprintln(w, "Papers em alta")
			fmt.Fprintln(w)
			printPapers(w, papers)
		})
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile [researcher-id]",
	Short: "Show a researcher profile with citation and publication history",
	Long: `Profile shows a catalog researcher: affiliation, positions, education,
works, and yearly citation and publication counts. Without an id it shows
the signed-in user's catalog entry, or the first researcher when nobody is
signed in or the id is unknown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) == 1 {
		id = args[0]
	} else if sess, err := openSession(); err == nil {
		if u, ok := sess.Current(); ok {
			id = u.ID
		}
	}

	store, err := catalog.Open(cmd.Context(), appCfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Researcher(cmd.Context(), id)
	if err != nil {
		return err
	}
	stats := catalog.Stats(r)

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	switch format {
	case "json", "yaml":
		return encode(os.Stdout, format, struct {
			Researcher types.Researcher      `json:"researcher" yaml:"researcher"`
			Stats      types.ResearcherStats `json:"stats" yaml:"stats"`
		}{r, stats})
	}
	printProfile(os.Stdout, r, stats)
	return nil
}

func printPapers(w io.Writer, papers []types.CatalogPaper) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "Nenhum paper encontrado.")
		return
	}
	for i, p := range papers {
		fmt.Fprintf(w, "[%d] %s\n", i+1, p.Title)
		fmt.Fprintf(w, "    %s\n", strings.Join(p.Authors, ", "))
		fmt.Fprintf(w, "    %s, %d • Citações: %d\n", p.Journal, p.Year, p.Citations)
	}
}

func printProfile(w io.Writer, r types.Researcher, s types.ResearcherStats) {
	fmt.Fprintln(w, r.Name)
	fmt.Fprintf(w, "ORCID: %s\n", r.ORCID)
	fmt.Fprintf(w, "%s, %s\n", r.Institution, r.Country)
	if r.Bio != "" {
		fmt.Fprintf(w, "\n%s\n", r.Bio)
	}
	fmt.Fprintf(w, "\nÍndice H: %d • Citações: %d • Publicações: %d\n", r.HIndex, s.TotalCitations, s.TotalPublications)

	if len(r.Jobs) > 0 {
		fmt.Fprintln(w, "\nExperiência:")
		for _, j := range r.Jobs {
			end := j.EndDate
			if end == "" {
				end = "atual"
			}
			fmt.Fprintf(w, "  - %s, %s (%s - %s)\n", j.Role, j.Organization, j.StartDate, end)
		}
	}
	if len(r.Education) > 0 {
		fmt.Fprintln(w, "\nFormação:")
		for _, e := range r.Education {
			fmt.Fprintf(w, "  - %s, %s\n", e.Degree, e.Institution)
		}
	}
	if len(r.Works) > 0 {
		fmt.Fprintln(w, "\nTrabalhos:")
		for _, wk := range r.Works {
			fmt.Fprintf(w, "  - %s (%d) • Citações: %d\n", wk.Title, wk.Year, wk.Citations)
		}
	}

	fmt.Fprintln(w, "\nCitações por ano:")
	for _, yc := range s.CitationsByYear {
		fmt.Fprintf(w, "  %d  %d\n", yc.Year, yc.Count)
	}
	fmt.Fprintln(w, "\nPublicações por ano:")
	for _, yc := range s.PublicationsByYear {
		fmt.Fprintf(w, "  %d  %d\n", yc.Year, yc.Count)
	}
}

// writeCatalog encodes v when --json or --yaml is set and calls text otherwise.
func writeCatalog(cmd *cobra.Command, v any, text func(io.Writer)) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if format == "text" {
		text(os.Stdout)
		return nil
	}
	return encode(os.Stdout, format, v)
}

func encode(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	for _, c := range []*cobra.Command{catalogPapersCmd, catalogResearchersCmd, hotCmd, profileCmd} {
		addOutputFlags(c)
	}
	hotCmd.Flags().IntP("limit", "n", catalog.DefaultHotPapers, "number of papers to show")

	catalogCmd.AddCommand(catalogPapersCmd)
	catalogCmd.AddCommand(catalogResearchersCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(hotCmd)
	rootCmd.AddCommand(profileCmd)
}

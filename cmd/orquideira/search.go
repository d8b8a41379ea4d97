// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/orquideira/internal/browse"
	"github.com/pdiddy/orquideira/internal/search"
	"github.com/pdiddy/orquideira/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Semantic Scholar for papers or authors",
	Long: `Search queries Semantic Scholar for papers (default) or authors. In author
mode every author with an ORCID iD is enriched with education and works
from the ORCID registry; authors whose profile cannot be fetched are left
out of the results.

Use --select to show the detail view of one result instead of the list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	selected, _ := cmd.Flags().GetInt("select")
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	mode, err := types.ParseSearchMode(modeFlag)
	if err != nil {
		return err
	}

	b := browse.New(search.NewSearcher(appCfg.Search))
	if err := b.Submit(cmd.Context(), mode, strings.Join(args, " ")); err != nil {
		if errors.Is(err, search.ErrEmptyQuery) || errors.Is(err, search.ErrUnknownMode) {
			return err
		}
		browse.Render(os.Stdout, b.Snapshot())
		return errReported
	}
	if selected > 0 {
		if err := b.Select(selected - 1); err != nil {
			return fmt.Errorf("--select %d: %d result(s) available: %w", selected, len(b.Snapshot().Results), browse.ErrNoSuchItem)
		}
	}
	return writeState(os.Stdout, b.Snapshot(), format)
}

// writeState prints s as text, JSON, or YAML. Structured output carries
// the selected result only when one is selected.
func writeState(w io.Writer, s browse.State, format string) error {
	var v any = s.Results
	if r, ok := s.Selection(); ok {
		v = r
	}
	if format == "text" {
		browse.Render(w, s)
		return nil
	}
	return encode(w, format, v)
}

// outputFormat reads the mutually exclusive --json and --yaml flags.
func outputFormat(cmd *cobra.Command) (string, error) {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	switch {
	case asJSON && asYAML:
		return "", fmt.Errorf("--json and --yaml are mutually exclusive")
	case asJSON:
		return "json", nil
	case asYAML:
		return "yaml", nil
	default:
		return "text", nil
	}
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "output results as JSON")
	cmd.Flags().Bool("yaml", false, "output results as YAML")
}

func init() {
	searchCmd.Flags().StringP("mode", "m", string(types.ModePapers), "search mode: papers or authors")
	searchCmd.Flags().Int("select", 0, "show the detail view of result n (one-based)")
	addOutputFlags(searchCmd)

	rootCmd.AddCommand(searchCmd)
}

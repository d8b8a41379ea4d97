// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/pdiddy/orquideira/internal/browse"
	"github.com/pdiddy/orquideira/internal/search"
	"github.com/pdiddy/orquideira/pkg/types"
)

const browseHelp = `Comandos:
  <texto>     buscar no modo atual
  #<n>        abrir o resultado n
  b           voltar para a lista
  :p / :a     buscar publicações / autores
  ?           ajuda
  q           sair`

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search interactively and open result details",
	Long: `Browse starts an interactive prompt. Type a query to search in the current
mode, #n to open result n, b to return to the list, :p or :a to switch
between papers and authors, and q to quit. Ctrl-C while a search runs
cancels that search only.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := types.ParseSearchMode(modeFlag)
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	b := browse.New(search.NewSearcher(appCfg.Search))
	fmt.Fprintln(os.Stdout, browseHelp)

	prompt := func() (string, error) {
		input, err := line.Prompt(promptFor(mode))
		if err == nil && strings.TrimSpace(input) != "" {
			line.AppendHistory(strings.TrimSpace(input))
		}
		return input, err
	}
	return browseLoop(cmd.Context(), b, &mode, prompt, os.Stdout)
}

// browseLoop reads input until q or the end of input. Each line runs under
// its own interrupt-scoped context derived from ctx without its
// cancellation, so an interrupt aborts only the search in flight.
func browseLoop(ctx context.Context, b *browse.Browser, mode *types.SearchMode, next func() (string, error), w io.Writer) error {
	base := context.WithoutCancel(ctx)
	for {
		input, err := next()
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		stepCtx, stop := signal.NotifyContext(base, os.Interrupt)
		quit := browseStep(stepCtx, b, mode, input, w)
		stop()
		if quit {
			return nil
		}
	}
}

// browseStep applies one line of input and prints the resulting view.
// It reports whether the session should end.
func browseStep(ctx context.Context, b *browse.Browser, mode *types.SearchMode, input string, w io.Writer) bool {
	switch input {
	case "q", "sair":
		return true
	case "?":
		fmt.Fprintln(w, browseHelp)
		return false
	case "b", "voltar":
		b.Back()
		browse.Render(w, b.Snapshot())
		return false
	case ":p":
		*mode = types.ModePapers
		return false
	case ":a":
		*mode = types.ModeAuthors
		return false
	}

	if ref, ok := strings.CutPrefix(input, "#"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(ref))
		if err != nil || b.Select(n-1) != nil {
			fmt.Fprintf(w, "Nenhum resultado na posição %s\n", ref)
			return false
		}
		browse.Render(w, b.Snapshot())
		return false
	}

	fmt.Fprintln(w, "Buscando...")
	if err := b.Submit(ctx, *mode, input); errors.Is(err, search.ErrEmptyQuery) {
		return false
	}
	browse.Render(w, b.Snapshot())
	return false
}

func promptFor(mode types.SearchMode) string {
	if mode == types.ModeAuthors {
		return "autores> "
	}
	return "publicações> "
}

func init() {
	browseCmd.Flags().StringP("mode", "m", string(types.ModePapers), "initial search mode: papers or authors")

	rootCmd.AddCommand(browseCmd)
}

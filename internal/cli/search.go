package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// searchCommand creates the search command for querying the package index.
func (c *CLI) searchCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the package index",
		Long: `Search the package index by name and description.

Results are ordered by vote count and capped at the configured
max_results. Cached index responses are reused until they expire; pass
--refresh to query the index directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), args[0], refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")

	return cmd
}

func (c *CLI) runSearch(ctx context.Context, term string, refresh bool) error {
	tk, err := c.newToolkit()
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Searching for %s...", term))
	spinner.Start()
	pkgs, err := tk.index.Search(ctx, term, refresh)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("searching for %s: %w", term, err)
	}
	if len(pkgs) == 0 {
		printInfo("No package matches %s", term)
		return nil
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Votes > pkgs[j].Votes })

	shown := len(pkgs)
	if shown > tk.cfg.MaxResults {
		shown = tk.cfg.MaxResults
	}
	for _, pkg := range pkgs[:shown] {
		fmt.Printf("%s %s %s\n",
			StyleValue.Render(pkg.Name),
			StyleNumber.Render(pkg.Version),
			StyleDim.Render(fmt.Sprintf("(%d votes, %.2f popularity)", pkg.Votes, pkg.Popularity)))
		if pkg.Description != "" {
			printDetail("%s", pkg.Description)
		}
	}
	if shown < len(pkgs) {
		printNewline()
		printDetail("%d more matches not shown", len(pkgs)-shown)
	}
	return nil
}

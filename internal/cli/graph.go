package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aurum/pkg/install"
	"github.com/matzehuels/aurum/pkg/render"
)

// graphCommand creates the graph command for exporting a package's
// resolved dependency graph.
func (c *CLI) graphCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "graph <package>",
		Short: "Export a package's AUR dependency graph",
		Long: `Resolve a package's AUR dependencies without building anything and
export the resulting graph.

The output format follows the file extension: .dot for Graphviz source,
.svg for a rendered image, .json for machine-readable node/edge lists.
Without --output the DOT source is printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot, .svg, or .json)")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, name, output string) error {
	tk, err := c.newToolkit()
	if err != nil {
		return err
	}

	// Resolution only: fetch everything, build nothing, ask nothing.
	opts := install.Options{DownloadOnly: true, NoConfirm: true}
	walker := c.newWalker(tk, opts)
	sess := install.NewSession()
	if _, err := walker.Process(ctx, name, sess, opts); err != nil {
		return err
	}

	g := render.FromSession(sess)
	c.Logger.Debug("resolved graph", "nodes", len(g.Nodes), "edges", len(g.Edges))

	if output == "" {
		fmt.Print(render.ToDOT(g))
		return nil
	}

	switch filepath.Ext(output) {
	case ".dot":
		if err := os.WriteFile(output, []byte(render.ToDOT(g)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
	case ".svg":
		spinner := newSpinner(ctx, "Rendering graph...")
		spinner.Start()
		data, err := render.RenderSVG(ctx, render.ToDOT(g))
		spinner.Stop()
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
	case ".json":
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		defer f.Close()
		if err := render.WriteJSON(g, f); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
	default:
		return fmt.Errorf("unsupported output format %q (use .dot, .svg, or .json)", filepath.Ext(output))
	}

	printSuccess("Exported dependency graph of %s", StyleHighlight.Render(name))
	printFile(output)
	return nil
}

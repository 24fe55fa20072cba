package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// infoCommand creates the info command for showing one index record.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Show one package's index record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runInfo(ctx context.Context, name string) error {
	tk, err := c.newToolkit()
	if err != nil {
		return err
	}

	pkg, err := tk.index.Lookup(ctx, name, false)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", name, err)
	}

	printKeyValue("Name", pkg.Name)
	if pkg.PackageBase != "" && pkg.PackageBase != pkg.Name {
		printKeyValue("Base", pkg.PackageBase)
	}
	printKeyValue("Version", pkg.Version)
	if pkg.Description != "" {
		printKeyValue("Description", pkg.Description)
	}
	if pkg.URL != "" {
		printKeyValue("URL", StyleLink.Render(pkg.URL))
	}
	maintainer := pkg.Maintainer
	if maintainer == "" {
		maintainer = "none (orphaned)"
	}
	printKeyValue("Maintainer", maintainer)
	printKeyValue("Votes", fmt.Sprintf("%d", pkg.Votes))
	printKeyValue("Popularity", fmt.Sprintf("%.2f", pkg.Popularity))
	if pkg.OutOfDate > 0 {
		printKeyValue("Out of date", time.Unix(pkg.OutOfDate, 0).Format("2006-01-02"))
	}
	if pkg.LastModified > 0 {
		printKeyValue("Modified", time.Unix(pkg.LastModified, 0).Format("2006-01-02"))
	}
	return nil
}

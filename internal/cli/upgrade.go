package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/aurum/pkg/install"
)

// runUpgrade scans foreign packages for newer index versions and, after
// one batch confirmation, walks every candidate through the dependency
// engine with fresh sources.
func (c *CLI) runUpgrade(ctx context.Context, flags *rootFlags) error {
	tk, err := c.newToolkit()
	if err != nil {
		return err
	}

	scanner := install.NewScanner(tk.pacman, tk.index, c.Logger)
	spinner := newSpinner(ctx, "Scanning foreign packages...")
	spinner.Start()
	report, err := scanner.Scan(ctx)
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, name := range report.Missing {
		printWarning("%s is not in the index anymore", name)
	}
	for _, cand := range report.NonStandard {
		printWarning("%s has a non-standard version (%s installed, %s in the index), not auto-upgraded",
			cand.Name, cand.Local, cand.Remote)
	}

	if len(report.Candidates) == 0 {
		printInfo("Everything is up to date")
		return nil
	}

	printInfo("%d packages are outdated:", len(report.Candidates))
	for _, cand := range report.Candidates {
		printDetail("%s %s", cand.Name, formatVersionChange(cand.Local, cand.Remote))
	}

	opts := flags.options()
	if !opts.NoConfirm && !askYesNo(fmt.Sprintf("Upgrade %d packages?", len(report.Candidates))) {
		printInfo("Nothing upgraded")
		return nil
	}

	walker := c.newWalker(tk, opts)
	sess := install.NewSession()
	prog := newProgress(c.Logger)
	sum, err := walker.ProcessUpgrades(ctx, report.Candidates, sess, opts)
	if sum != nil {
		c.printSummary(sum, opts)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Upgraded %d packages", len(sum.Succeeded)))
	return nil
}

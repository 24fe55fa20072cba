package cli

import (
	"context"
	"fmt"
)

// runClean removes cached sources for packages that are no longer
// installed. Disk usage is best-effort; an unreadable entry still shows
// up, just without a size.
func (c *CLI) runClean(ctx context.Context, flags *rootFlags) error {
	tk, err := c.newToolkit()
	if err != nil {
		return err
	}

	foreign, err := tk.pacman.Foreign(ctx)
	if err != nil {
		return fmt.Errorf("listing installed packages: %w", err)
	}
	installed := make([]string, len(foreign))
	for i, pkg := range foreign {
		installed[i] = pkg.Name
	}

	orphans, err := tk.store.Orphans(installed)
	if err != nil {
		return err
	}
	if len(orphans) == 0 {
		printInfo("Cache is clean")
		return nil
	}

	var total int64
	printInfo("%d cached packages are no longer installed:", len(orphans))
	for _, name := range orphans {
		size, err := tk.store.DiskUsage(name)
		if err != nil {
			printDetail("%s", name)
			continue
		}
		total += size
		printDetail("%s (%s)", name, formatSize(size))
	}

	opts := flags.options()
	if !opts.NoConfirm && !askYesNo(fmt.Sprintf("Remove them (%s)?", formatSize(total))) {
		printInfo("Nothing removed")
		return nil
	}

	for _, name := range orphans {
		if err := tk.store.Remove(name); err != nil {
			return fmt.Errorf("removing %s: %w", name, err)
		}
		c.Logger.Debug("removed cached sources", "pkg", name)
	}
	printSuccess("Removed %d cached packages, freed %s", len(orphans), formatSize(total))
	return nil
}

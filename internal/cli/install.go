package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/aurum/pkg/aur"
	"github.com/matzehuels/aurum/pkg/install"
	"github.com/matzehuels/aurum/pkg/makepkg"
	"github.com/matzehuels/aurum/pkg/pkgbuild"
	"github.com/matzehuels/aurum/pkg/srcrepo"
)

// runInstall resolves each requested name against the index and walks it
// through the dependency engine. Names the index does not know are
// reported and skipped; everything else shares one session so packages
// pulled in by several roots are handled once.
func (c *CLI) runInstall(ctx context.Context, names []string, flags *rootFlags) error {
	tk, err := c.newToolkit()
	if err != nil {
		return err
	}

	opts := flags.options()
	walker := c.newWalker(tk, opts)
	sess := install.NewSession()
	prog := newProgress(c.Logger)
	sum := &install.Summary{}

	for _, name := range names {
		pkg, err := c.resolveRoot(ctx, tk, name, flags.force)
		if err != nil {
			return err
		}
		if pkg == nil {
			continue
		}

		outcome, err := walker.Process(ctx, pkg.Name, sess, opts)
		if err != nil {
			return err
		}
		sum.Add(pkg.Name, outcome)
	}

	c.printSummary(sum, opts)
	handled := len(sum.Succeeded) + len(sum.Skipped) + len(sum.Failed)
	prog.done(fmt.Sprintf("Handled %d root packages", handled))
	return nil
}

// resolveRoot finds the index record for a requested name: an exact match
// wins, otherwise the search results go through the picker. A nil record
// with a nil error means this root is skipped, not the batch.
func (c *CLI) resolveRoot(ctx context.Context, tk *toolkit, name string, refresh bool) (*aur.Package, error) {
	spinner := newSpinner(ctx, fmt.Sprintf("Looking up %s...", name))
	spinner.Start()
	pkg, err := tk.index.Lookup(ctx, name, refresh)
	spinner.Stop()
	if err == nil {
		return pkg, nil
	}
	if !errors.Is(err, aur.ErrNotFound) {
		return nil, fmt.Errorf("looking up %s: %w", name, err)
	}

	spinner = newSpinner(ctx, fmt.Sprintf("Searching for %s...", name))
	spinner.Start()
	matches, err := tk.index.Search(ctx, name, refresh)
	spinner.Stop()
	if err != nil {
		return nil, fmt.Errorf("searching for %s: %w", name, err)
	}
	if len(matches) == 0 {
		printError("No package matches %s", name)
		return nil, nil
	}
	if len(matches) > tk.cfg.MaxResults {
		matches = matches[:tk.cfg.MaxResults]
	}

	choice, err := choosePackage(matches)
	if err != nil {
		return nil, err
	}
	if choice == nil {
		printWarning("Skipping %s", name)
	}
	return choice, nil
}

// newWalker wires the dependency engine to its process-backed
// collaborators: git working copies, the PKGBUILD reader, pacman, and
// makepkg. Prompts and progress go through this package.
func (c *CLI) newWalker(tk *toolkit, opts install.Options) *install.Walker {
	return install.NewWalker(install.WalkerConfig{
		Fetcher:  &cloningFetcher{store: tk.store},
		Remover:  tk.store,
		Parser:   pkgbuild.NewDirParser(tk.store.Root()),
		Oracle:   tk.pacman,
		Builder:  makepkg.New(tk.store.Root(), opts.NoConfirm),
		Notifier: &printNotifier{},
		Confirm: func(name string) bool {
			return askYesNo(fmt.Sprintf("Build %s?", name))
		},
		Logger: c.Logger,
	})
}

// cloningFetcher shows a spinner while a working copy is cloned for the
// first time; cached entries pass straight through.
type cloningFetcher struct {
	store *srcrepo.Store
}

func (f *cloningFetcher) Ensure(ctx context.Context, name string) error {
	if f.store.Has(name) {
		return f.store.Ensure(ctx, name)
	}
	spinner := newSpinner(ctx, fmt.Sprintf("Cloning %s...", name))
	spinner.Start()
	err := f.store.Ensure(ctx, name)
	spinner.Stop()
	if err == nil {
		printInfo("Fetched %s", StyleHighlight.Render(name))
	}
	return err
}

// printNotifier renders walk events for the terminal.
type printNotifier struct{}

func (printNotifier) DepsResolved(pkg string, deps []string) {
	printInfo("%s needs %d from the AUR", StyleHighlight.Render(pkg), len(deps))
	for _, dep := range deps {
		printDetail("%s", dep)
	}
}

func (printNotifier) BuildStarted(pkg string) {
	printInfo("Building %s", StyleHighlight.Render(pkg))
}

func (printNotifier) BuildSucceeded(pkg string, products []string) {
	printSuccess("Installed %s", StyleHighlight.Render(pkg))
	if len(products) > 1 {
		printDetail("products: %s", strings.Join(products, ", "))
	}
}

func (printNotifier) BuildFailed(pkg string, err error) {
	printError("Build of %s failed: %v", pkg, err)
}

// printSummary reports the batch outcome per package.
func (c *CLI) printSummary(sum *install.Summary, opts install.Options) {
	printNewline()
	for _, name := range sum.Succeeded {
		printSuccess("%s installed", name)
	}
	for _, name := range sum.Skipped {
		if opts.DownloadOnly {
			printInfo("%s downloaded", name)
		} else {
			printInfo("%s skipped", name)
		}
	}
	for _, name := range sum.Failed {
		printError("%s failed", name)
	}
}

// Package cli implements the aurum command-line interface.
package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aurum/pkg/aur"
	"github.com/matzehuels/aurum/pkg/buildinfo"
	"github.com/matzehuels/aurum/pkg/config"
	"github.com/matzehuels/aurum/pkg/httputil"
	"github.com/matzehuels/aurum/pkg/install"
	"github.com/matzehuels/aurum/pkg/pacman"
	"github.com/matzehuels/aurum/pkg/srcrepo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Root Command
// =============================================================================

// rootFlags holds the mode and session flags of the bare aurum invocation.
type rootFlags struct {
	force        bool
	downloadOnly bool
	yes          bool
	noConfirm    bool
	upgrade      bool
	clean        bool
}

// options converts the confirm-related flags into walker options.
func (f *rootFlags) options() install.Options {
	return install.Options{
		Force:        f.force,
		DownloadOnly: f.downloadOnly,
		NoConfirm:    f.yes || f.noConfirm,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "aurum [flags] [package...]",
		Short: "Aurum builds and installs packages from the AUR",
		Long: `Aurum is an AUR helper: it fetches build recipes, resolves their
AUR dependencies recursively, and builds everything in dependency order.
Without -u or -c it installs the named packages; -u upgrades outdated
foreign packages and -c sweeps orphaned entries out of the source cache.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case flags.upgrade:
				return c.runUpgrade(cmd.Context(), flags)
			case flags.clean:
				return c.runClean(cmd.Context(), flags)
			case len(args) > 0:
				return c.runInstall(cmd.Context(), args, flags)
			default:
				_ = cmd.Help()
				return errors.New("no packages named and no mode selected")
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.Flags().BoolVarP(&flags.force, "force", "f", false, "discard cached sources before processing")
	root.Flags().BoolVarP(&flags.downloadOnly, "download-only", "d", false, "fetch sources and resolve dependencies without building")
	root.Flags().BoolVarP(&flags.yes, "yes", "y", false, "answer every prompt with yes")
	root.Flags().BoolVar(&flags.noConfirm, "noconfirm", false, "alias for --yes, matching pacman")
	root.Flags().BoolVarP(&flags.upgrade, "upgrade", "u", false, "upgrade outdated foreign packages")
	root.Flags().BoolVarP(&flags.clean, "clean-cache", "c", false, "remove cached sources for packages no longer installed")

	// Register all subcommands
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Toolkit Factory
// =============================================================================

// toolkit bundles the collaborators commands share: configuration, the
// source cache, the package index client, and the system package manager.
type toolkit struct {
	cfg    config.Config
	store  *srcrepo.Store
	index  *aur.Client
	pacman *pacman.Client
}

// newToolkit loads configuration and wires the shared collaborators. A
// failing response cache degrades to uncached queries rather than aborting.
func (c *CLI) newToolkit() (*toolkit, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	cache, err := httputil.NewCache(cfg.APIDir(), cfg.ResultTTL)
	if err != nil {
		c.Logger.Debug("response cache unavailable", "err", err)
		cache = nil
	}

	store, err := srcrepo.New(cfg.PkgDir(), cfg.AURURL)
	if err != nil {
		return nil, err
	}

	return &toolkit{
		cfg:    cfg,
		store:  store,
		index:  aur.New(cfg.AURURL, cache),
		pacman: pacman.New(),
	}, nil
}

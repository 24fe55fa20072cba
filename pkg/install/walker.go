package install

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aurum/pkg/pkgbuild"
)

// Fetcher materializes a package's working copy, clone-if-absent.
type Fetcher interface {
	Ensure(ctx context.Context, name string) error
}

// CacheRemover discards a package's working copy. The walker calls it for
// the force flag's pre-clean and for upgrade re-fetches, always before any
// fetch or parse of the same name.
type CacheRemover interface {
	Remove(name string) error
}

// RecipeParser reads the recipe out of a materialized working copy.
type RecipeParser interface {
	Parse(name string) (*pkgbuild.Recipe, error)
}

// Oracle reports whether a dependency is satisfiable without a build,
// from the installed system or its sync repositories.
type Oracle interface {
	Satisfiable(ctx context.Context, name string) bool
}

// Builder builds and installs one materialized package.
type Builder interface {
	Build(ctx context.Context, name string) error
}

// ConfirmFunc asks whether to proceed with building name.
type ConfirmFunc func(name string) bool

// Options configure one session's walks. They are fixed for the session.
type Options struct {
	// Force discards cached sources the first time each package is
	// processed, so the walk fetches fresh working copies.
	Force bool

	// DownloadOnly stops every walk after dependency resolution: sources
	// are materialized, nothing is built.
	DownloadOnly bool

	// NoConfirm answers every build prompt with yes.
	NoConfirm bool
}

// Outcome is the per-package result of a walk.
type Outcome int

const (
	// Success means the package was built and installed.
	Success Outcome = iota
	// Skipped means no build was attempted: already handled this session,
	// download-only, or declined by the user.
	Skipped
	// Failed means the build ran and failed. Failed packages are not
	// recorded as completed, so a later request may retry them.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Walker resolves and installs packages depth-first: dependencies are
// fully handled before their dependent's own build, so builds execute in a
// valid dependency order by construction.
//
// A Walker is stateless across calls; all walk state lives in the Session
// passed to Process. Walks are synchronous and must not share one Session
// across goroutines.
type Walker struct {
	fetcher Fetcher
	remover CacheRemover
	parser  RecipeParser
	oracle  Oracle
	builder Builder
	notify  Notifier
	confirm ConfirmFunc
	logger  *log.Logger
}

// WalkerConfig wires a Walker's collaborators. Fetcher, Remover, Parser,
// Oracle, and Builder are required; the rest default to no-ops (and
// Confirm to always-yes).
type WalkerConfig struct {
	Fetcher  Fetcher
	Remover  CacheRemover
	Parser   RecipeParser
	Oracle   Oracle
	Builder  Builder
	Notifier Notifier
	Confirm  ConfirmFunc
	Logger   *log.Logger
}

// NewWalker returns a Walker using the given collaborators.
func NewWalker(cfg WalkerConfig) *Walker {
	w := &Walker{
		fetcher: cfg.Fetcher,
		remover: cfg.Remover,
		parser:  cfg.Parser,
		oracle:  cfg.Oracle,
		builder: cfg.Builder,
		notify:  cfg.Notifier,
		confirm: cfg.Confirm,
		logger:  cfg.Logger,
	}
	if w.notify == nil {
		w.notify = NopNotifier{}
	}
	if w.confirm == nil {
		w.confirm = func(string) bool { return true }
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	return w
}

// Process ensures name and every AUR-resolvable dependency it transitively
// requires are fetched and, unless opts.DownloadOnly, built in dependency
// order, each at most once per session.
//
// A non-nil error aborts the whole invocation: dependency cycles, fetch
// failures, and unusable recipes leave nothing sensible to continue with.
// Build failures are not errors; they surface as a Failed outcome (for the
// requested package) or through notifications (for dependencies), and the
// walk carries on best-effort.
func (w *Walker) Process(ctx context.Context, name string, sess *Session, opts Options) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Failed, err
	}
	if sess.Completed(name) {
		w.logger.Debug("already handled this session", "pkg", name)
		return Skipped, nil
	}
	if sess.OnPath(name) {
		return Failed, &CycleError{Path: append(sess.Path(), name)}
	}

	sess.push(name)
	defer sess.pop()

	if opts.Force {
		w.logger.Debug("discarding cached sources", "pkg", name)
		if err := w.remover.Remove(name); err != nil {
			return Failed, fmt.Errorf("discarding cached sources for %s: %w", name, err)
		}
	}

	if err := w.fetcher.Ensure(ctx, name); err != nil {
		return Failed, fmt.Errorf("fetching %s: %w", name, err)
	}

	recipe, err := w.parser.Parse(name)
	if err != nil {
		return Failed, fmt.Errorf("reading recipe for %s: %w", name, err)
	}
	w.logger.Debug("parsed recipe",
		"pkg", name,
		"products", len(recipe.Names),
		"depends", len(recipe.Depends),
		"makedepends", len(recipe.MakeDepends))

	var pending []string
	for _, dep := range dedupeDeps(recipe.Depends, recipe.MakeDepends) {
		switch {
		case recipe.Provides(dep):
			// A split recipe may list its own products as dependencies;
			// this very build satisfies them.
			w.logger.Debug("dependency produced by this recipe", "pkg", name, "dep", dep)
		case w.oracle.Satisfiable(ctx, dep):
			w.logger.Debug("dependency satisfiable without build", "pkg", name, "dep", dep)
		case sess.Completed(dep):
			w.logger.Debug("dependency already handled", "pkg", name, "dep", dep)
			sess.recordEdge(name, dep)
		default:
			pending = append(pending, dep)
			sess.recordEdge(name, dep)
		}
	}

	if len(pending) > 0 {
		w.notify.DepsResolved(name, pending)
	}
	for _, dep := range pending {
		// A dependency's build failure is reported through its own
		// notifications and does not block this package's attempt.
		if _, err := w.Process(ctx, dep, sess, opts); err != nil {
			return Failed, err
		}
	}

	if opts.DownloadOnly {
		w.logger.Debug("download only, skipping build", "pkg", name)
		sess.MarkCompleted(name)
		return Skipped, nil
	}

	if !opts.NoConfirm && !w.confirm(name) {
		w.logger.Debug("build declined", "pkg", name)
		return Skipped, nil
	}

	w.notify.BuildStarted(name)
	if err := w.builder.Build(ctx, name); err != nil {
		w.notify.BuildFailed(name, err)
		return Failed, nil
	}
	sess.MarkCompleted(name)
	w.notify.BuildSucceeded(name, recipe.Names)
	return Success, nil
}

// dedupeDeps unions dependency lists, reducing each spec to its bare name
// and keeping first-seen order.
func dedupeDeps(lists ...[]string) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, list := range lists {
		for _, spec := range list {
			name := pkgbuild.StripConstraint(spec)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			deps = append(deps, name)
		}
	}
	return deps
}

// Summary tallies outcomes across a batch of root requests.
type Summary struct {
	Succeeded []string
	Skipped   []string
	Failed    []string
}

// Add records the outcome for name.
func (s *Summary) Add(name string, o Outcome) {
	switch o {
	case Success:
		s.Succeeded = append(s.Succeeded, name)
	case Skipped:
		s.Skipped = append(s.Skipped, name)
	case Failed:
		s.Failed = append(s.Failed, name)
	}
}

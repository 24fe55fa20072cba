package install

// Notifier receives walk progress events. Implementations render them for
// the user; the walker itself never prints.
type Notifier interface {
	// DepsResolved fires after pkg's recipe is parsed, with the
	// dependencies that will be walked through the index.
	DepsResolved(pkg string, deps []string)

	// BuildStarted fires immediately before pkg's build runs.
	BuildStarted(pkg string)

	// BuildSucceeded fires after pkg built and installed, with every
	// product the recipe declared.
	BuildSucceeded(pkg string, products []string)

	// BuildFailed fires when pkg's build ran and failed.
	BuildFailed(pkg string, err error)
}

// NopNotifier ignores all events.
type NopNotifier struct{}

func (NopNotifier) DepsResolved(string, []string)   {}
func (NopNotifier) BuildStarted(string)             {}
func (NopNotifier) BuildSucceeded(string, []string) {}
func (NopNotifier) BuildFailed(string, error)       {}

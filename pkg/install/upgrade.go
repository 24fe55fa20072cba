package install

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aurum/pkg/aur"
	"github.com/matzehuels/aurum/pkg/pacman"
	"github.com/matzehuels/aurum/pkg/vercmp"
)

// ForeignLister lists installed packages that no sync repository owns.
type ForeignLister interface {
	Foreign(ctx context.Context) ([]pacman.Installed, error)
}

// IndexQuerier batch-looks-up exact package names in the index. Names the
// index does not know are simply absent from the result.
type IndexQuerier interface {
	Info(ctx context.Context, names ...string) ([]aur.Package, error)
}

// Candidate pairs a package's installed version with the index version.
// Versions are kept raw; sanitizing happens only during comparison.
type Candidate struct {
	Name   string
	Local  string
	Remote string
}

// Report is the result of one upgrade scan.
type Report struct {
	// Candidates have a strictly newer index version.
	Candidates []Candidate
	// Missing are installed but absent from the index, typically renamed
	// or deleted upstream.
	Missing []string
	// NonStandard carry versions the comparator cannot order, so no
	// upgrade decision is made for them.
	NonStandard []Candidate
}

// Scanner finds foreign packages whose index version is newer than the
// installed one.
type Scanner struct {
	lister ForeignLister
	index  IndexQuerier
	logger *log.Logger
}

// NewScanner returns a Scanner. A nil logger falls back to log.Default().
func NewScanner(lister ForeignLister, index IndexQuerier, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{lister: lister, index: index, logger: logger}
}

// Scan compares every foreign package against the index. Packages missing
// from the index or carrying non-standard versions land in the report
// rather than failing the scan; only listing or index errors do that.
func (s *Scanner) Scan(ctx context.Context) (*Report, error) {
	foreign, err := s.lister.Foreign(ctx)
	if err != nil {
		return nil, err
	}
	report := &Report{}
	if len(foreign) == 0 {
		return report, nil
	}

	names := make([]string, len(foreign))
	for i, pkg := range foreign {
		names[i] = pkg.Name
	}
	s.logger.Debug("scanning foreign packages", "count", len(names))
	remote, err := s.index.Info(ctx, names...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	versions := make(map[string]string, len(remote))
	for _, pkg := range remote {
		versions[pkg.Name] = pkg.Version
	}

	for _, pkg := range foreign {
		remoteVersion, ok := versions[pkg.Name]
		if !ok {
			s.logger.Debug("not in index", "pkg", pkg.Name)
			report.Missing = append(report.Missing, pkg.Name)
			continue
		}
		local, lok := vercmp.Sanitize(pkg.Version)
		idx, rok := vercmp.Sanitize(remoteVersion)
		if !lok || !rok {
			s.logger.Debug("version not comparable",
				"pkg", pkg.Name, "local", pkg.Version, "remote", remoteVersion)
			report.NonStandard = append(report.NonStandard, Candidate{
				Name: pkg.Name, Local: pkg.Version, Remote: remoteVersion,
			})
			continue
		}
		if vercmp.Compare(local, idx) < 0 {
			report.Candidates = append(report.Candidates, Candidate{
				Name: pkg.Name, Local: pkg.Version, Remote: remoteVersion,
			})
		}
	}
	return report, nil
}

// ProcessUpgrades walks every candidate through one shared session. The
// session's completed set is cleared first, so anything handled earlier in
// the run is processed again if a candidate pulls it in, and each
// candidate's cached sources are discarded up front so dependency walks
// fetch fresh copies.
func (w *Walker) ProcessUpgrades(ctx context.Context, candidates []Candidate, sess *Session, opts Options) (*Summary, error) {
	sess.Reset()
	for _, c := range candidates {
		if err := w.remover.Remove(c.Name); err != nil {
			return nil, fmt.Errorf("discarding cached sources for %s: %w", c.Name, err)
		}
	}
	sum := &Summary{}
	for _, c := range candidates {
		outcome, err := w.Process(ctx, c.Name, sess, opts)
		if err != nil {
			return sum, err
		}
		sum.Add(c.Name, outcome)
	}
	return sum, nil
}

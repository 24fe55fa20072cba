// Package srcrepo manages the local store of cloned package sources.
//
// The store is a flat directory tree, one working copy per package, fed by
// git clones from the package repository. It backs two very different
// consumers: the install walker, which materializes entries on demand and
// discards them under the force flag, and the cache sweeper, which removes
// entries for packages that are no longer installed.
package srcrepo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrBadName is returned for package names that cannot form a safe entry
// path (empty, hidden, or containing separators).
var ErrBadName = errors.New("invalid package name")

// Store is an on-disk cache of package working copies.
type Store struct {
	root   string
	remote string
	run    runFunc
}

type runFunc func(ctx context.Context, args ...string) ([]byte, error)

// New returns a Store rooted at root, cloning from the repository at
// remote (the package name and a ".git" suffix are appended per entry).
// The root directory is created when missing.
func New(root, remote string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		root:   root,
		remote: strings.TrimSuffix(remote, "/"),
		run: func(ctx context.Context, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, "git", args...).CombinedOutput()
		},
	}, nil
}

// Root returns the store directory.
func (s *Store) Root() string { return s.root }

// Path returns the entry directory for name, whether or not it exists.
func (s *Store) Path(name string) string { return filepath.Join(s.root, name) }

// Has reports whether an entry for name exists.
func (s *Store) Has(name string) bool {
	if checkName(name) != nil {
		return false
	}
	info, err := os.Stat(s.Path(name))
	return err == nil && info.IsDir()
}

// Ensure materializes the working copy for name, cloning it when absent.
// An existing entry is left untouched, whatever its state; a failed clone
// leaves no partial entry behind.
func (s *Store) Ensure(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	path := s.Path(name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	out, err := s.run(ctx, "clone", "--", s.remote+"/"+name+".git", path)
	if err != nil {
		os.RemoveAll(path)
		return fmt.Errorf("cloning %s: %w: %s", name, err, firstLine(string(out)))
	}
	return nil
}

// Remove deletes the entry for name. Removing an absent entry is a no-op.
func (s *Store) Remove(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	return os.RemoveAll(s.Path(name))
}

// Entries lists the store's package names in lexical order.
func (s *Store) Entries() ([]string, error) {
	dirents, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	var names []string
	for _, d := range dirents {
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			names = append(names, d.Name())
		}
	}
	return names, nil
}

// Orphans returns the entries whose package is not in installed, in
// lexical order. These are the candidates the cache sweeper offers for
// deletion.
func (s *Store) Orphans(installed []string) ([]string, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(installed))
	for _, name := range installed {
		keep[name] = true
	}
	var orphans []string
	for _, name := range entries {
		if !keep[name] {
			orphans = append(orphans, name)
		}
	}
	return orphans, nil
}

// DiskUsage returns the total size in bytes of the entry for name.
func (s *Store) DiskUsage(name string) (int64, error) {
	if err := checkName(name); err != nil {
		return 0, err
	}
	var total int64
	err := filepath.WalkDir(s.Path(name), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/\\") || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

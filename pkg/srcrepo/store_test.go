package srcrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, run runFunc) *Store {
	t.Helper()
	s, err := New(t.TempDir(), "https://aur.example.org")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if run != nil {
		s.run = run
	}
	return s
}

// cloningRun simulates a successful git clone by creating the target
// directory with a recipe file in it.
func cloningRun(t *testing.T, calls *[][]string) runFunc {
	t.Helper()
	return func(ctx context.Context, args ...string) ([]byte, error) {
		*calls = append(*calls, args)
		target := args[len(args)-1]
		if err := os.MkdirAll(target, 0o755); err != nil {
			return nil, err
		}
		return nil, os.WriteFile(filepath.Join(target, "PKGBUILD"), []byte("pkgname=x\n"), 0o644)
	}
}

func TestEnsureClonesOnce(t *testing.T) {
	t.Parallel()

	var calls [][]string
	s := newTestStore(t, cloningRun(t, &calls))
	ctx := context.Background()

	if err := s.Ensure(ctx, "ripgrep-git"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("git invoked %d times, want 1", len(calls))
	}
	if calls[0][0] != "clone" || !strings.HasSuffix(calls[0][2], "/ripgrep-git.git") {
		t.Errorf("unexpected git invocation %v", calls[0])
	}
	if !s.Has("ripgrep-git") {
		t.Error("Has = false after Ensure")
	}

	// A second Ensure must leave the existing entry alone.
	if err := s.Ensure(ctx, "ripgrep-git"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if len(calls) != 1 {
		t.Errorf("git invoked %d times, want 1 (entry already present)", len(calls))
	}
}

func TestEnsureCleansUpFailedClone(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, func(ctx context.Context, args ...string) ([]byte, error) {
		target := args[len(args)-1]
		os.MkdirAll(target, 0o755)
		return []byte("fatal: repository not found\nmore output"), errors.New("exit status 128")
	})

	err := s.Ensure(context.Background(), "no-such-package")
	if err == nil {
		t.Fatal("Ensure succeeded, want clone failure")
	}
	if !strings.Contains(err.Error(), "repository not found") {
		t.Errorf("error %q should carry the first line of git output", err)
	}
	if s.Has("no-such-package") {
		t.Error("failed clone left a partial entry behind")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	var calls [][]string
	s := newTestStore(t, cloningRun(t, &calls))
	ctx := context.Background()

	if err := s.Ensure(ctx, "ripgrep-git"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if err := s.Remove("ripgrep-git"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Has("ripgrep-git") {
		t.Error("entry still present after Remove")
	}
	if err := s.Remove("ripgrep-git"); err != nil {
		t.Errorf("Remove of absent entry: %v, want nil", err)
	}
}

func TestEntriesAndOrphans(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, nil)
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if err := os.MkdirAll(s.Path(name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// Stray files and hidden directories are not entries.
	if err := os.WriteFile(filepath.Join(s.Root(), "stray.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(s.Root(), ".hidden"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if want := []string{"alpha", "beta", "gamma"}; !equalStrings(entries, want) {
		t.Errorf("Entries = %v, want %v", entries, want)
	}

	orphans, err := s.Orphans([]string{"beta"})
	if err != nil {
		t.Fatalf("Orphans: %v", err)
	}
	if want := []string{"alpha", "gamma"}; !equalStrings(orphans, want) {
		t.Errorf("Orphans = %v, want %v", orphans, want)
	}
}

func TestDiskUsage(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, nil)
	dir := s.Path("alpha")
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "PKGBUILD"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "src", "main.c"), make([]byte, 400), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := s.DiskUsage("alpha")
	if err != nil {
		t.Fatalf("DiskUsage: %v", err)
	}
	if n != 500 {
		t.Errorf("DiskUsage = %d, want 500", n)
	}
}

func TestBadNames(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, nil)
	for _, name := range []string{"", ".", "..", "../evil", "a/b", ".hidden"} {
		if err := s.Ensure(context.Background(), name); !errors.Is(err, ErrBadName) {
			t.Errorf("Ensure(%q) error = %v, want ErrBadName", name, err)
		}
		if err := s.Remove(name); !errors.Is(err, ErrBadName) {
			t.Errorf("Remove(%q) error = %v, want ErrBadName", name, err)
		}
		if s.Has(name) {
			t.Errorf("Has(%q) = true, want false", name)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

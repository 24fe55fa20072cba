package pkgbuild

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleRecipe = `
pkgname=ripgrep-git
pkgver=14.1.0
pkgrel=2
pkgdesc="line-oriented search tool"
arch=('x86_64')
depends=('glibc' 'gcc-libs>=12' "pcre2")
makedepends=('rust' 'git')

build() {
    cargo build --release
}

package() {
    install -Dm755 target/release/rg "$pkgdir/usr/bin/rg"
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	rec, err := Parse(strings.NewReader(sampleRecipe), "PKGBUILD")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := rec.Names, []string{"ripgrep-git"}; !equal(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
	if rec.Version != "14.1.0-2" {
		t.Errorf("Version = %q, want %q", rec.Version, "14.1.0-2")
	}
	if got, want := rec.Depends, []string{"glibc", "gcc-libs>=12", "pcre2"}; !equal(got, want) {
		t.Errorf("Depends = %v, want %v", got, want)
	}
	if got, want := rec.MakeDepends, []string{"rust", "git"}; !equal(got, want) {
		t.Errorf("MakeDepends = %v, want %v", got, want)
	}
	if rec.Split() {
		t.Error("Split() = true for single-package recipe")
	}
	if !rec.Provides("ripgrep-git") || rec.Provides("ripgrep") {
		t.Error("Provides misreports produced packages")
	}
}

func TestParseSplitPackage(t *testing.T) {
	t.Parallel()

	src := `
pkgbase=python-example
pkgname=("python-example" "python-example-docs")
pkgver=1.0
pkgrel=1
depends=("$pkgbase-core")
`
	rec, err := Parse(strings.NewReader(src), "PKGBUILD")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := rec.Names, []string{"python-example", "python-example-docs"}; !equal(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
	if !rec.Split() {
		t.Error("Split() = false for split recipe")
	}
	if got, want := rec.Depends, []string{"python-example-core"}; !equal(got, want) {
		t.Errorf("Depends = %v, want %v (variable reference not resolved)", got, want)
	}
}

func TestParseAppendAssignment(t *testing.T) {
	t.Parallel()

	src := `
pkgname=demo
pkgver=1.0
pkgrel=1
depends=('alpha')
depends+=('beta')
`
	rec, err := Parse(strings.NewReader(src), "PKGBUILD")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := rec.Depends, []string{"alpha", "beta"}; !equal(got, want) {
		t.Errorf("Depends = %v, want %v", got, want)
	}
}

func TestParseDropsUnevaluatableWords(t *testing.T) {
	t.Parallel()

	src := `
pkgname=demo
pkgver=1.0
pkgrel=1
depends=('alpha' "$(uname -m)-toolchain" 'beta')
`
	rec, err := Parse(strings.NewReader(src), "PKGBUILD")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := rec.Depends, []string{"alpha", "beta"}; !equal(got, want) {
		t.Errorf("Depends = %v, want %v (command substitution must be dropped)", got, want)
	}
}

func TestParseEpochVersion(t *testing.T) {
	t.Parallel()

	src := `
pkgname=demo
epoch=2
pkgver=1.4
pkgrel=3
`
	rec, err := Parse(strings.NewReader(src), "PKGBUILD")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.Version != "2:1.4-3" {
		t.Errorf("Version = %q, want %q", rec.Version, "2:1.4-3")
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "no package names", src: "pkgver=1.0\npkgrel=1\n"},
		{name: "syntax error", src: "pkgname=demo\nif then fi\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse(strings.NewReader(tt.src), "PKGBUILD"); err == nil {
				t.Error("Parse succeeded, want error")
			}
		})
	}
}

func TestStripConstraint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dep  string
		want string
	}{
		{dep: "glibc", want: "glibc"},
		{dep: "gcc-libs>=12", want: "gcc-libs"},
		{dep: "python<3.13", want: "python"},
		{dep: "openssl=3.0", want: "openssl"},
		{dep: " spaced ", want: "spaced"},
	}
	for _, tt := range tests {
		if got := StripConstraint(tt.dep); got != tt.want {
			t.Errorf("StripConstraint(%q) = %q, want %q", tt.dep, got, tt.want)
		}
	}
}

func TestDirParser(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "ripgrep-git")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(sampleRecipe), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewDirParser(root)
	rec, err := p.Parse("ripgrep-git")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rec.Names) != 1 || rec.Names[0] != "ripgrep-git" {
		t.Errorf("Names = %v, want [ripgrep-git]", rec.Names)
	}

	if _, err := p.Parse("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Parse(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func equal(a, b []string) bool {
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

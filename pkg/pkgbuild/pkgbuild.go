// Package pkgbuild extracts package metadata from PKGBUILD build recipes.
//
// A PKGBUILD is a bash script, but the metadata this tool needs lives in a
// small declarative subset: top-level assignments to pkgname, pkgver,
// pkgrel, depends, and makedepends. The parser walks the script's syntax
// tree and reads those assignments without executing anything; words that
// would require real shell evaluation (command substitution, arithmetic)
// are dropped rather than guessed at.
package pkgbuild

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// FileName is the canonical recipe file name inside a package's working copy.
const FileName = "PKGBUILD"

// Recipe is the parsed metadata of one build recipe.
type Recipe struct {
	// Names lists the packages the recipe produces. More than one entry
	// means a split package.
	Names []string

	// Version is the full declared version ([epoch:]pkgver-pkgrel), empty
	// when the recipe does not declare pkgver as a plain value.
	Version string

	// Depends and MakeDepends hold the raw runtime and build-time
	// dependency specs, possibly carrying version constraints.
	Depends     []string
	MakeDepends []string
}

// Split reports whether the recipe produces more than one package.
func (r *Recipe) Split() bool { return len(r.Names) > 1 }

// Provides reports whether name is among the recipe's produced packages.
func (r *Recipe) Provides(name string) bool {
	for _, n := range r.Names {
		if n == name {
			return true
		}
	}
	return false
}

// StripConstraint truncates a dependency spec at the first version
// constraint operator ("<", ">", "="), leaving the bare package name.
func StripConstraint(dep string) string {
	if i := strings.IndexAny(dep, "<>="); i >= 0 {
		dep = dep[:i]
	}
	return strings.TrimSpace(dep)
}

// ParseFile reads and parses the recipe at path.
func ParseFile(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recipe: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads a recipe from r. The name is used in error messages only.
// An error is returned when the script cannot be parsed or declares no
// package names, both of which mean the recipe is unusable.
func Parse(r io.Reader, name string) (*Recipe, error) {
	file, err := syntax.NewParser().Parse(r, name)
	if err != nil {
		return nil, fmt.Errorf("parsing recipe: %w", err)
	}

	rec := &Recipe{}
	vars := map[string]string{}
	for _, stmt := range file.Stmts {
		call, ok := stmt.Cmd.(*syntax.CallExpr)
		if !ok || len(call.Args) > 0 {
			// Only bare top-level assignments carry metadata; function
			// bodies and commands are build logic, not declarations.
			continue
		}
		for _, as := range call.Assigns {
			applyAssign(rec, vars, as)
		}
	}

	if len(rec.Names) == 0 {
		return nil, fmt.Errorf("recipe %s declares no package names", name)
	}
	rec.Version = versionOf(vars)
	return rec, nil
}

func applyAssign(rec *Recipe, vars map[string]string, as *syntax.Assign) {
	if as.Name == nil {
		return
	}
	key := as.Name.Value

	// Remember plain scalar values so later words can reference them
	// ("$pkgname-git" in a depends array is common).
	if as.Value != nil && !as.Append {
		if v, ok := flattenWord(as.Value, vars); ok {
			vars[key] = v
		}
	}

	switch key {
	case "pkgname":
		rec.Names = assignTo(rec.Names, as, vars)
	case "depends":
		rec.Depends = assignTo(rec.Depends, as, vars)
	case "makedepends":
		rec.MakeDepends = assignTo(rec.MakeDepends, as, vars)
	}
}

func assignTo(dst []string, as *syntax.Assign, vars map[string]string) []string {
	vals := assignValues(as, vars)
	if as.Append {
		return append(dst, vals...)
	}
	return vals
}

// assignValues resolves an assignment's right-hand side to literal strings,
// accepting both scalar and array forms.
func assignValues(as *syntax.Assign, vars map[string]string) []string {
	switch {
	case as.Array != nil:
		vals := make([]string, 0, len(as.Array.Elems))
		for _, el := range as.Array.Elems {
			if el.Value == nil {
				continue
			}
			if v, ok := flattenWord(el.Value, vars); ok && v != "" {
				vals = append(vals, v)
			}
		}
		return vals
	case as.Value != nil:
		if v, ok := flattenWord(as.Value, vars); ok && v != "" {
			return []string{v}
		}
	}
	return nil
}

// flattenWord resolves a word to its literal text. Plain literals, quoting,
// and references to previously assigned scalars are supported; anything
// needing shell evaluation reports false.
func flattenWord(w *syntax.Word, vars map[string]string) (string, bool) {
	var b strings.Builder
	for _, part := range w.Parts {
		if !flattenPart(&b, part, vars) {
			return "", false
		}
	}
	return b.String(), true
}

func flattenPart(b *strings.Builder, part syntax.WordPart, vars map[string]string) bool {
	switch p := part.(type) {
	case *syntax.Lit:
		b.WriteString(p.Value)
	case *syntax.SglQuoted:
		b.WriteString(p.Value)
	case *syntax.DblQuoted:
		for _, inner := range p.Parts {
			if !flattenPart(b, inner, vars) {
				return false
			}
		}
	case *syntax.ParamExp:
		if p.Excl || p.Length || p.Width || p.Index != nil || p.Slice != nil || p.Repl != nil || p.Exp != nil {
			return false
		}
		if p.Param == nil {
			return false
		}
		v, ok := vars[p.Param.Value]
		if !ok {
			return false
		}
		b.WriteString(v)
	default:
		return false
	}
	return true
}

func versionOf(vars map[string]string) string {
	ver := vars["pkgver"]
	if ver == "" {
		return ""
	}
	if rel := vars["pkgrel"]; rel != "" {
		ver += "-" + rel
	}
	if epoch := vars["epoch"]; epoch != "" && epoch != "0" {
		ver = epoch + ":" + ver
	}
	return ver
}

// DirParser reads recipes out of a source cache directory laid out as one
// working copy per package.
type DirParser struct {
	root string
}

// NewDirParser returns a parser rooted at the given cache directory.
func NewDirParser(root string) *DirParser {
	return &DirParser{root: root}
}

// Parse reads the recipe for name from <root>/<name>/PKGBUILD.
func (p *DirParser) Parse(name string) (*Recipe, error) {
	return ParseFile(filepath.Join(p.root, name, FileName))
}

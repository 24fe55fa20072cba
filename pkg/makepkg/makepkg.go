// Package makepkg drives the native build tool in package working copies.
package makepkg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Builder runs makepkg builds inside store entries under root.
//
// Builds are interactive by design: makepkg talks to the terminal for
// signature prompts and privilege escalation during the install step, so
// the process inherits the caller's standard streams.
type Builder struct {
	root      string
	noConfirm bool
	run       func(ctx context.Context, dir string, args []string) error
}

// New returns a Builder for working copies under root. With noConfirm set,
// the package manager prompts triggered by the build are auto-affirmed.
func New(root string, noConfirm bool) *Builder {
	b := &Builder{root: root, noConfirm: noConfirm}
	b.run = runInteractive
	return b
}

// Build builds and installs the package from the working copy for name.
// Missing repository dependencies are synced by the build tool itself, and
// a previously built artifact in the entry does not block a rebuild.
func (b *Builder) Build(ctx context.Context, name string) error {
	args := []string{"-s", "-i", "-f"}
	if b.noConfirm {
		args = append(args, "--noconfirm")
	}
	if err := b.run(ctx, filepath.Join(b.root, name), args); err != nil {
		return fmt.Errorf("building %s: %w", name, err)
	}
	return nil
}

func runInteractive(ctx context.Context, dir string, args []string) error {
	cmd := exec.CommandContext(ctx, "makepkg", args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Package pacman queries the system package manager.
//
// Three questions matter to the tool: can a dependency be satisfied without
// building it (installed already, or available from a sync repository),
// which installed packages came from outside the sync repositories, and
// what version a foreign package is at. Everything is answered by running
// the pacman binary; this package never modifies the system.
package pacman

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Installed is one locally installed package with its version.
type Installed struct {
	Name    string
	Version string
}

// Client runs read-only pacman queries.
type Client struct {
	run runFunc
}

type runFunc func(ctx context.Context, args ...string) ([]byte, error)

// New returns a Client backed by the pacman binary on PATH.
func New() *Client {
	return &Client{
		run: func(ctx context.Context, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, "pacman", args...).Output()
		},
	}
}

// Satisfiable reports whether name can be satisfied without a build:
// either the installed system already provides it (pacman -T, which
// understands virtual provides) or a sync repository carries it
// (pacman -Si). Names that fail both checks are candidates for recursive
// resolution.
func (c *Client) Satisfiable(ctx context.Context, name string) bool {
	if _, err := c.run(ctx, "-T", name); err == nil {
		return true
	}
	if _, err := c.run(ctx, "-Si", name); err == nil {
		return true
	}
	return false
}

// Foreign lists installed packages absent from the sync repositories
// (pacman -Qm), which is the set this tool built or the user installed by
// hand. The returned order is pacman's own (alphabetical).
func (c *Client) Foreign(ctx context.Context) ([]Installed, error) {
	out, err := c.run(ctx, "-Qm")
	if err != nil {
		// An empty filter result exits non-zero with no output; that is
		// "nothing foreign installed", not a failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(strings.TrimSpace(string(out))) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("listing foreign packages: %w", err)
	}
	return parseQueryOutput(string(out))
}

// LocalVersion returns the installed version of name (pacman -Q), or an
// error when the package is not installed.
func (c *Client) LocalVersion(ctx context.Context, name string) (string, error) {
	out, err := c.run(ctx, "-Q", name)
	if err != nil {
		return "", fmt.Errorf("querying %s: %w", name, err)
	}
	pkgs, err := parseQueryOutput(string(out))
	if err != nil {
		return "", err
	}
	if len(pkgs) == 0 {
		return "", fmt.Errorf("querying %s: empty response", name)
	}
	return pkgs[0].Version, nil
}

// parseQueryOutput reads "name version" lines as printed by pacman -Q.
func parseQueryOutput(out string) ([]Installed, error) {
	var pkgs []Installed
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed query line %q", line)
		}
		pkgs = append(pkgs, Installed{Name: fields[0], Version: fields[1]})
	}
	return pkgs, nil
}

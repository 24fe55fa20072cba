package makepkg

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestBuildInvocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		noConfirm bool
		wantArgs  []string
	}{
		{name: "interactive", wantArgs: []string{"-s", "-i", "-f"}},
		{name: "noconfirm", noConfirm: true, wantArgs: []string{"-s", "-i", "-f", "--noconfirm"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotDir string
			var gotArgs []string
			b := New("/cache/pkg", tt.noConfirm)
			b.run = func(ctx context.Context, dir string, args []string) error {
				gotDir = dir
				gotArgs = args
				return nil
			}

			if err := b.Build(context.Background(), "ripgrep-git"); err != nil {
				t.Fatalf("Build: %v", err)
			}
			if want := filepath.Join("/cache/pkg", "ripgrep-git"); gotDir != want {
				t.Errorf("dir = %q, want %q", gotDir, want)
			}
			if len(gotArgs) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", gotArgs, tt.wantArgs)
			}
			for i := range tt.wantArgs {
				if gotArgs[i] != tt.wantArgs[i] {
					t.Errorf("args = %v, want %v", gotArgs, tt.wantArgs)
					break
				}
			}
		})
	}
}

func TestBuildFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("exit status 4")
	b := New("/cache/pkg", false)
	b.run = func(ctx context.Context, dir string, args []string) error { return boom }

	err := b.Build(context.Background(), "ripgrep-git")
	if !errors.Is(err, boom) {
		t.Fatalf("Build error = %v, want wrapped %v", err, boom)
	}
}

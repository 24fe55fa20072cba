package cli

import (
	"strings"
	"testing"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}

	for _, tt := range tests {
		if got := formatSize(tt.bytes); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatVersionChange(t *testing.T) {
	got := formatVersionChange("1.0", "2.0")
	if !strings.Contains(got, "1.0") || !strings.Contains(got, "2.0") {
		t.Errorf("formatVersionChange should contain both versions, got %q", got)
	}
}

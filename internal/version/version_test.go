package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestPretty_PlainWhenColorDisabled(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	origVersion := Version
	defer func() { Version = origVersion }()

	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.0.0-beta.1", "1.0.0-beta.1"},
		{"weird", "weird"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Pretty(); got != tt.want {
			t.Errorf("Pretty(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestLine_IncludesOptionalFields(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version, GitCommit, BuildDate = "1.2.3", "abc123", "2024-01-15"
	if got, want := Line(), "momo 1.2.3 (abc123) built 2024-01-15"; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}

	GitCommit, BuildDate = "", ""
	if got, want := Line(), "momo 1.2.3"; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

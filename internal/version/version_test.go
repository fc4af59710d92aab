package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersionParts(t *testing.T) {
	if got, want := Version(), Major+"."+Minor+"."+Patch+Suffix; got != want {
		t.Fatalf("Version() = %q, want %q", got, want)
	}
}

func TestColoredWithoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	if got := Colored(); got != Version() {
		t.Fatalf("Colored() = %q, want plain %q", got, Version())
	}
}

func TestCommitPrefersLdflags(t *testing.T) {
	saved := GitCommit
	GitCommit = " abc123 "
	defer func() { GitCommit = saved }()

	if got := Commit(); got != "abc123" {
		t.Fatalf("Commit() = %q", got)
	}
	if strings.TrimSpace(Version()) == "" {
		t.Fatal("empty version")
	}
}

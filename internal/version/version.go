package version

import (
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// Version information for the cnode CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Major, Minor and Patch form the semantic version.
	Major = "0"
	Minor = "3"
	Patch = "0"
	// Suffix is appended after the patch number, e.g. "-dev".
	Suffix = "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Version returns the plain semantic version.
func Version() string {
	return Major + "." + Minor + "." + Patch + Suffix
}

// Colored returns Version with each component tinted; colors follow
// fatih/color's global NoColor unless forced by the caller.
func Colored() string {
	return versionMajorColor.Sprint(Major) + "." + versionMinorColor.Sprint(Minor) + "." + versionPatchColor.Sprint(Patch) + Suffix
}

// Commit returns GitCommit, falling back to the vcs.revision recorded by
// the Go toolchain when the binary was built from a checkout.
func Commit() string {
	if c := strings.TrimSpace(GitCommit); c != "" {
		return c
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

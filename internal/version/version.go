// Package version provides version information for the application.
package version

import "fmt"

// Version information - set by main package
// Populated from main.go, which receives them via ldflags at release time
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the version string
// Returns "dev" for development builds, or the release tag (e.g., "v0.3.0")
func GetVersion() string {
	if Version == "dev" {
		return "dev"
	}
	return Version
}

// GetFullVersion returns version with build information
// Format: "v0.3.0 (commit: abc123, built: 2026-01-12T10:30:00Z)"
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

// UserAgent is the User-Agent sent on every backend request.
func UserAgent() string {
	return "apim-gov/" + GetVersion()
}

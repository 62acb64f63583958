// Package version holds build information set at link time.
package version

// These variables are set via ldflags during the release build.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit hash of the build.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

package version

import "fmt"

var (
	// Version is the semantic version, overridden via ldflags on release builds.
	Version = "0.1.0"
	// Commit is the short git SHA of the build.
	Commit = "none"
	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"
)

// Full returns the version line printed by the version subcommand.
func Full() string {
	return fmt.Sprintf("notify-arrival %s (commit %s, built %s)", Version, Commit, BuildTime)
}

// Package version holds the build identification of the rpgen binary.
package version

import "fmt"

// Build-time variables set by ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	return fmt.Sprintf("rpgen version %s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}

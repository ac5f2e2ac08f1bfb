// Package version holds build information injected at link time via
// -ldflags, the same way the rest of the toolchain reports its version.
package version

import "fmt"

var (
	// Version is the release tag this binary was built from.
	Version = "dev"
	// Commit is the git commit hash this binary was built from.
	Commit = "none"
	// Date is the build timestamp, set by the release pipeline.
	Date = "unknown"
)

// Info is a snapshot of the build-time version variables.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get returns the current build's version information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String renders the version info the way `cratepack version` prints it.
func (i Info) String() string {
	return fmt.Sprintf("cratepack %s (commit %s, built %s)", i.Version, i.Commit, i.Date)
}

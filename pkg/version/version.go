package version

import "fmt"

// Values for these are injected at build time via -ldflags -X.
var (
	version = "devel"
	commit  = "unknown"
)

// Version returns the seafood version. This is usually a semantic version, but
// unreleased builds report "devel".
func Version() string {
	return version
}

// Commit returns the git commit SHA the binary was built from.
func Commit() string {
	return commit
}

// String renders the version and commit together, as shown by --version.
func String() string {
	return fmt.Sprintf("%s -- commit %s", version, commit)
}

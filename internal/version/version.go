// Package version carries build identification stamped in by the linker.
package version

import "fmt"

// Overridden at build time via -ldflags "-X".
var (
	Version   = "dev"
	GitSHA    = "unknown"
	BuildTime = "unknown"
)

// String returns the one-line build identification.
func String() string {
	return fmt.Sprintf("scangeom %s (%s, built %s)", Version, GitSHA, BuildTime)
}

// Package buildinfo holds build metadata injected via ldflags.
package buildinfo

//nolint:gochecknoglobals // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

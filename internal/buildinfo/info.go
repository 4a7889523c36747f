package buildinfo

// Set via -ldflags at build time, e.g.
// -X github.com/actual-tools/intesa2actual/internal/buildinfo.Version=v1.0.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Package version provides build information for the spoofwatch binaries
package version

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information, stamped at build time:
//
//	go build -ldflags "-X 'spoofwatch/internal/core/version.version=v0.1.0'
//	  -X 'spoofwatch/internal/core/version.commit=abcd'
//	  -X 'spoofwatch/internal/core/version.date=2026-10-01'"
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	service = "spoofwatch"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Package version provides information about the build version of the service.
package version

import (
	"runtime"
	"runtime/debug"
)

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service" example:"socialfeed-api"`
	Version string `json:"version" example:"v0.3.0"`
	Commit  string `json:"commit" example:"4f1c2ab"`
	Date    string `json:"date" example:"2026-01-12"`
	Go      string `json:"go" example:"go1.25.0"`
}

// Service is the name reported by Info
const Service = "socialfeed-api"

// Set via -ldflags "-X 'socialfeed/internal/core/version.version=v0.3.0'
// -X 'socialfeed/internal/core/version.commit=abcd' -X 'socialfeed/internal/core/version.date=2026-01-12'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// readBuildInfo is swapped in tests
var readBuildInfo = debug.ReadBuildInfo

// Info returns the build information. Without ldflags the commit and date fall
// back to the vcs stamp the go tool embeds
func Info() BuildInfo {
	bi := BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}
	if commit != "none" {
		return bi
	}
	info, ok := readBuildInfo()
	if !ok {
		return bi
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			bi.Commit = s.Value
		case "vcs.time":
			if date == "unknown" {
				bi.Date = s.Value
			}
		}
	}
	return bi
}

package app

import (
	"fmt"
	"runtime/debug"
)

// Build-time variables set via ldflags, e.g.
//
//	-ldflags "-X github.com/tejashwikalptaru/tunelist/internal/app.Version=v1.2.0"
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// GetVersionInfo returns the ldflags values, filling the commit and build
// time from the embedded VCS stamp when they were not set.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.GitCommit == "":
			info.GitCommit = s.Value
		case s.Key == "vcs.time" && info.BuildTime == "":
			info.BuildTime = s.Value
		}
	}
	return info
}

// FullString returns a one-line version string.
func (v VersionInfo) FullString() string {
	commit := v.GitCommit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if commit == "" {
		commit = "unknown"
	}
	built := v.BuildTime
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("tunelist %s (commit: %s, built: %s)", v.Version, commit, built)
}

package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// set via -ldflags at release time
var (
	Version    = "v1.0.0"
	CommitHash = "unknown"
)

const serviceName = "checklist-sync"

type Info struct {
	Service    string `json:"service"`
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	GoVersion  string `json:"go_version,omitempty"`
}

// GetBuildInfo falls back to the VCS revision embedded by the Go toolchain
// when the commit was not set at link time.
func GetBuildInfo() Info {
	info := Info{
		Service:    serviceName,
		Version:    Version,
		CommitHash: CommitHash,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.CommitHash == "unknown" {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				info.CommitHash = s.Value
			}
		}
	}
	return info
}

// UserAgent is sent with outbound requests to identity providers and by the client.
func UserAgent() string {
	return fmt.Sprintf("%s/%s (commit=%s)", serviceName, Version, CommitHash)
}

// Package consts houses some constants needed across jsminify
package consts

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version contains the current semantic version of jsminify.
const Version = "0.1.0"

// Name is the binary name used in help and log messages.
const Name = "jsminify"

// EnvPrefix is prepended to every environment variable jsminify reads.
const EnvPrefix = "JSMINIFY_"

// FullVersion returns the maximally full version and build information for
// the currently running jsminify executable.
func FullVersion() string {
	goVersionArch := fmt.Sprintf("%s, %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return fmt.Sprintf("%s (%s)", Version, goVersionArch)
	}

	var (
		commit string
		dirty  bool
	)
	for _, s := range buildInfo.Settings {
		switch s.Key {
		case "vcs.revision":
			commitLen := 10
			if len(s.Value) < commitLen {
				commitLen = len(s.Value)
			}
			commit = s.Value[:commitLen]
		case "vcs.modified":
			if s.Value == "true" {
				dirty = true
			}
		default:
		}
	}

	if commit == "" {
		return fmt.Sprintf("%s (%s)", Version, goVersionArch)
	}

	if dirty {
		commit += "-dirty"
	}

	return fmt.Sprintf("%s (commit/%s, %s)", Version, commit, goVersionArch)
}

// VersionDetails returns the structured details about version
func VersionDetails() map[string]string {
	return map[string]string{
		"version":    Version,
		"go_version": runtime.Version(),
		"go_os":      runtime.GOOS,
		"go_arch":    runtime.GOARCH,
	}
}

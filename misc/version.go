// Package misc keeps small helpers which do not belong anywhere else.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "pdc"

// GetAppName returns short program name used for logs, temporary files and CLI help.
func GetAppName() string {
	return appName
}

var buildInfo = sync.OnceValue(func() *debug.BuildInfo {
	if bi, ok := debug.ReadBuildInfo(); ok {
		return bi
	}
	return nil
})

// GetVersion returns module version recorded during the build.
func GetVersion() string {
	bi := buildInfo()
	if bi == nil || bi.Main.Version == "" {
		return "unknown"
	}
	return bi.Main.Version
}

// GetGitHash returns vcs revision recorded during the build.
func GetGitHash() string {
	bi := buildInfo()
	if bi == nil {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}

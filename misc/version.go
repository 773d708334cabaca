// Package misc keeps build related information.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X hslc/misc.version=... -X hslc/misc.gitHash=..." at build time.
var (
	version = "dev"
	gitHash = ""
	appName = ""
)

// GetAppName returns program name, used for log and report file names.
func GetAppName() string {
	if len(appName) != 0 {
		return appName
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from, when linker did not set it
// vcs information embedded by the go tool is used.
func GetGitHash() string {
	if len(gitHash) != 0 {
		return gitHash
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "unknown"
}

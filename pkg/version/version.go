// Package version reports the build version of ecofocus.
package version

import "runtime/debug"

// version, gitCommit and buildDate are set with -ldflags "-X ..." at release time.
//
//nolint:gochecknoglobals // Link-time build metadata.
var (
	version   = ""
	gitCommit = ""
	buildDate = ""
)

const devVersion = "v0.0.0-dev"

// GetVersion returns the release version, the module version recorded by
// go install, or a development placeholder.
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}

// GetGitCommit returns the commit the binary was built from, if known.
func GetGitCommit() string { return gitCommit }

// GetBuildDate returns the build date, if known.
func GetBuildDate() string { return buildDate }

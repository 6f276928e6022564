// Package version holds build metadata reported by the bumerge CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const unknown = "unknown"

var (
	// Version is the application version, set via ldflags. It falls back to
	// the module version recorded by "go install".
	Version = getVersion()
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// String returns the version line printed by "bumerge --version".
func String() string {
	return fmt.Sprintf("%s (revision %s, %s %s/%s)", Version, Revision, GoVersion, GoOS, GoArch)
}

// Info returns all build metadata, one "key: value" pair per line. Fields
// that were not set at build time are omitted.
func Info() string {
	var b strings.Builder

	for _, kv := range [][2]string{
		{"version", Version},
		{"revision", Revision},
		{"branch", Branch},
		{"build user", BuildUser},
		{"build date", BuildDate},
		{"go version", GoVersion},
		{"platform", GoOS + "/" + GoArch},
	} {
		if kv[1] == "" {
			continue
		}

		fmt.Fprintf(&b, "%s: %s\n", kv[0], kv[1])
	}

	return b.String()
}

func getVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok || buildInfo.Main.Version == "" || buildInfo.Main.Version == "(devel)" {
		return "devel"
	}

	return buildInfo.Main.Version
}

func getRevision() string {
	rev := unknown

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}

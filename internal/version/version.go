// Package version reports which planner build is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X github.com/example/planner/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// String returns "planner <version> (commit: <hash>, built: <time>)".
// Commit and build time fall back to the VCS stamp embedded by the Go toolchain.
func String() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		rev, at := vcsStamp()
		if commit == "" {
			commit = rev
		}
		if built == "" {
			built = at
		}
	}
	return fmt.Sprintf("planner %s (commit: %s, built: %s)", Version, short(commit), orUnknown(built))
}

func vcsStamp() (revision, at string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return revision, at
}

func short(commit string) string {
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return orUnknown(commit)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

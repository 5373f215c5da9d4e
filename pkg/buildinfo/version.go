// Package buildinfo reports which shiftgraph build is running.
//
// Release builds stamp the variables through the linker:
//
//	go build -ldflags "-X github.com/matzehuels/shiftgraph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/shiftgraph/pkg/buildinfo.Commit=$(git rev-parse HEAD)" \
//	    ./cmd/shiftgraph
//
// Binaries built with go install carry no stamp; their version and VCS
// revision are read from the embedded module information instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the release tag, "dev" when unstamped.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = "none"
	// Date is the UTC build time.
	Date = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// ShortCommit returns the first twelve characters of Commit.
func ShortCommit() string {
	if len(Commit) > 12 {
		return Commit[:12]
	}
	return Commit
}

// String returns a one-line summary such as "shiftgraph v0.3.0 (1a2b3c4d5e6f, 2026-01-02T10:00:00Z)".
func String() string {
	return fmt.Sprintf("shiftgraph %s (%s, %s)", Version, ShortCommit(), Date)
}

// Template returns the cobra version template.
func Template() string {
	return String() + "\n"
}

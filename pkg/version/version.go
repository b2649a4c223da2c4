package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at link time with -ldflags "-X". Values left at their defaults are
// filled from the module build info.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

const shortCommit = 12

// Info describes the running jio binary
type Info struct {
	Version  string `json:"version" yaml:"version"`
	Commit   string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`
	Modified bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
	Go       string `json:"go" yaml:"go"`
	Platform string `json:"platform" yaml:"platform"`
}

// Get returns the link-time version information
func Get() Info {
	return Info{
		Version:  Version,
		Commit:   Commit,
		Date:     Date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// FromBuildInfo completes i with what the Go toolchain stamped into the
// binary. Link-time values take precedence.
func (i Info) FromBuildInfo(bi *debug.BuildInfo) Info {
	if bi == nil {
		return i
	}
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "" {
				i.Commit = s.Value
			}
		case "vcs.time":
			if i.Date == "" {
				i.Date = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
	if len(i.Commit) > shortCommit {
		i.Commit = i.Commit[:shortCommit]
	}
	return i
}

// String renders i on a single line, e.g.
// "jio v1.2.0 (3f2c9a1b7d4e, 2025-01-02T15:04:05Z) go1.24.0 linux/amd64".
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "jio %s", i.Version)

	var meta []string
	if i.Commit != "" {
		commit := i.Commit
		if i.Modified {
			commit += "-dirty"
		}
		meta = append(meta, commit)
	}
	if i.Date != "" {
		meta = append(meta, i.Date)
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(meta, ", "))
	}

	fmt.Fprintf(&b, " %s %s", i.Go, i.Platform)
	return b.String()
}

// Package build provides variables that are set at build-time with the -X
// ldflag. Values not given at build-time are taken from [debug.BuildInfo].
package build

import (
	"regexp"
	"runtime/debug"
	"strings"
	"sync"
)

var (
	version   string
	buildTime string
)

var once sync.Once

var semverRe = regexp.MustCompile(`v?\d+(\.\d+){0,2}`)

func semver(v string) string {
	loc := semverRe.FindStringIndex(v)
	if loc == nil {
		return v
	}
	return v[loc[0]:loc[1]]
}

func load() {
	if version != "" {
		version = semver(version)
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if version == "" {
		version = info.Main.Version
	}
	if buildTime == "" {
		for _, s := range info.Settings {
			if s.Key == "vcs.time" {
				buildTime = s.Value
				if t, ok := strings.CutSuffix(buildTime, "Z"); ok {
					buildTime = t + "+00:00"
				}
				break
			}
		}
	}
}

// Version returns the semantic version, or "(devel)" for local builds.
func Version() string {
	once.Do(load)
	return version
}

func BuildTime() string {
	once.Do(load)
	return buildTime
}

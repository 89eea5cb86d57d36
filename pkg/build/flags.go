// SPDX-License-Identifier: MIT
//
// Package build carries the metadata stamped into the scope binary at link
// time. The values are injected with linker flags, for example:
//
//	go build -ldflags "-X scope/pkg/build.buildName=scope \
//	  -X scope/pkg/build.buildVersion=0.3.0 \
//	  -X scope/pkg/build.buildCommit=$(git rev-parse --short HEAD) \
//	  -X scope/pkg/build.buildTime=$(date -u +%FT%TZ)"
//
// Development builds run without them and report "unknown".
package build

import (
	"errors"
	"fmt"
)

const unknown = "unknown"

type ldFlags struct {
	Name    string
	Time    string
	Commit  string
	Version string
}

// String renders the flags the way the CLI prints them for --version.
func (f *ldFlags) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", f.Version, f.Commit, f.Time)
}

// Package-level variables populated by -ldflags.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildFlags   = defaultFlags()
)

func defaultFlags() *ldFlags {
	return &ldFlags{
		Name:    "scope",
		Time:    unknown,
		Commit:  unknown,
		Version: unknown,
	}
}

// Initialize copies the linker-provided values into the build flags. Every
// missing value is reported in the returned error; values that are present
// are still applied, so callers may log the error and keep running.
func Initialize() error {
	var errs []error

	if buildName == "" {
		errs = append(errs, errors.New("BuildName is required"))
	} else {
		buildFlags.Name = buildName
	}
	if buildTime == "" {
		errs = append(errs, errors.New("BuildTime is required"))
	} else {
		buildFlags.Time = buildTime
	}
	if buildCommit == "" {
		errs = append(errs, errors.New("BuildCommit is required"))
	} else {
		buildFlags.Commit = buildCommit
	}
	if buildVersion == "" {
		errs = append(errs, errors.New("BuildVersion is required"))
	} else {
		buildFlags.Version = buildVersion
	}

	return errors.Join(errs...)
}

// GetBuildFlags returns the current build information.
func GetBuildFlags() *ldFlags {
	return buildFlags
}

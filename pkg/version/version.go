// Package version exposes the build version of policyexport.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// version is set at build time:
//
//	go build -ldflags "-X github.com/rshade/policyexport/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Overridden by the linker.
var version = "0.0.0-dev"

// GetVersion returns the build version in canonical semver form without a
// leading "v". Values that do not parse are returned trimmed but otherwise
// unchanged.
func GetVersion() string {
	return normalize(version)
}

func normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "0.0.0-dev"
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return raw
	}
	return v.String()
}

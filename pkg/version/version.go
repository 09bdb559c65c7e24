// Package version reads a workflow's version, either from the plain-text
// version file next to info.plist or from the descriptor itself.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/types"
)

// Filename is the version file's name inside the workflow directory.
const Filename = "version"

// Version is a parsed semantic version. Short forms such as "1.0" and a
// leading "v" are accepted.
type Version = semver.Version

// Parse parses s after trimming surrounding whitespace.
func Parse(s string) (*Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New(errors.ErrVersionInvalid, "empty version string")
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVersionInvalid, "invalid version %q", s)
	}
	return v, nil
}

// MustParse is Parse for constants; it panics on error.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ReadFile reads and parses the version file at path.
func ReadFile(fsys types.FS, path string) (*Version, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVersionNotFound, "failed to read %s", path)
	}
	return Parse(string(data))
}

// Newer reports whether a is strictly newer than b.
func Newer(a, b *Version) bool {
	return a.GreaterThan(b)
}

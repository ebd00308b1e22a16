// Package langversion gates version-dependent declaration syntax.
package langversion

import (
	"strings"

	"github.com/arthur-debert/apishape/pkg/errors"
	"golang.org/x/mod/semver"
)

// Version is a target language version in canonical semver form
// (v<major>.<minor>.0).
type Version struct {
	canonical string
	label     string
}

const (
	latest  = "v12.0.0"
	preview = "v13.0.0"
)

// Feature is a piece of syntax that only some versions understand.
type Feature int

const (
	ReadOnlyStructs Feature = iota
	RefStructs
	NullableReferenceTypes
	Records
	InitAccessors
	RequiredMembers
)

var introducedIn = map[Feature]string{
	ReadOnlyStructs:        "v7.2.0",
	RefStructs:             "v7.2.0",
	NullableReferenceTypes: "v8.0.0",
	Records:                "v9.0.0",
	InitAccessors:          "v9.0.0",
	RequiredMembers:        "v11.0.0",
}

// Default is the version used when none is configured.
func Default() Version { return Version{canonical: latest, label: "default"} }

// Parse accepts default, latest, preview or a numeric <major>[.<minor>]
// version. Anything else is a configuration error.
func Parse(s string) (Version, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "default":
		return Default(), nil
	case "latest", "latestmajor":
		return Version{canonical: latest, label: "latest"}, nil
	case "preview":
		return Version{canonical: preview, label: "preview"}, nil
	}

	v := "v" + s
	if strings.Count(s, ".") > 1 || !semver.IsValid(v) || strings.ContainsAny(s, "-+") {
		return Version{}, errors.Newf(errors.ErrConfigInvalid, "invalid language version %q", s).
			WithDetail("value", s)
	}
	if semver.Compare(v, "v1.0.0") < 0 {
		return Version{}, errors.Newf(errors.ErrConfigInvalid, "language version %q is out of range", s)
	}
	return Version{canonical: semver.Canonical(v), label: s}, nil
}

// Supports reports whether v understands f.
func (v Version) Supports(f Feature) bool {
	c := v.canonical
	if c == "" {
		c = latest
	}
	return semver.Compare(c, introducedIn[f]) >= 0
}

// String returns the version as configured.
func (v Version) String() string {
	if v.label == "" {
		return "default"
	}
	return v.label
}

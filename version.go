package oasguard

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver"
	"github.com/tidwall/gjson"
)

// SpecVersion identifies the OpenAPI/Swagger dialect a document declares,
// per spec §3: a (keyword, major, minor) triple.
type SpecVersion struct {
	Keyword string // "swagger" or "openapi"
	Major   string
	Minor   string

	constraint semver.Constraints
}

// Equal reports whether two SpecVersions name the same (keyword, major, minor).
func (v SpecVersion) Equal(o SpecVersion) bool {
	return v.Keyword == o.Keyword && v.Major == o.Major && v.Minor == o.Minor
}

func (v SpecVersion) String() string {
	return fmt.Sprintf("%s %s.%s", v.Keyword, v.Major, v.Minor)
}

// Matches reports whether the semver constraint bound to v accepts ver.
func (v SpecVersion) Matches(ver *semver.Version) bool {
	ok, _ := v.constraint.Validate(ver)
	return ok
}

func mustConstraint(expr string) semver.Constraints {
	c, err := semver.NewConstraint(expr)
	if err != nil {
		panic(fmt.Sprintf("oasguard: invalid built-in semver constraint %q: %v", expr, err))
	}
	return *c
}

// known OpenAPI/Swagger versions, in the declaration order VersionFinder
// must try them: newest first, so V32 wins ties over V31 over V30 over V2.
var (
	V32 = SpecVersion{Keyword: "openapi", Major: "3", Minor: "2", constraint: mustConstraint(">= 3.2.0, < 3.3.0")}
	V31 = SpecVersion{Keyword: "openapi", Major: "3", Minor: "1", constraint: mustConstraint(">= 3.1.0, < 3.2.0")}
	V30 = SpecVersion{Keyword: "openapi", Major: "3", Minor: "0", constraint: mustConstraint(">= 3.0.0, < 3.1.0")}
	V2  = SpecVersion{Keyword: "swagger", Major: "2", Minor: "0", constraint: mustConstraint(">= 2.0.0, < 2.1.0")}

	knownVersions = []SpecVersion{V32, V31, V30, V2}

	versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)(\..*)?$`)
)

// FindVersion inspects the document root (raw JSON) and returns the first
// known SpecVersion whose keyword is present and whose value's major.minor
// matches, per spec §4.2. Extra patch digits are ignored.
func FindVersion(document []byte) (SpecVersion, error) {
	for _, known := range knownVersions {
		raw := gjson.GetBytes(document, known.Keyword)
		if !raw.Exists() {
			continue
		}
		m := versionPattern.FindStringSubmatch(raw.String())
		if m == nil {
			continue
		}
		if m[1] == known.Major && m[2] == known.Minor {
			return known, nil
		}
	}
	return SpecVersion{}, ErrOpenAPIVersionNotFound
}

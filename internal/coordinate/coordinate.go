// Package coordinate models dependency coordinates of the form
// group:artifact[:version] and orders their versions.
package coordinate

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Coordinate identifies a module, optionally at a specific version.
type Coordinate struct {
	Group   string
	Name    string
	Version string
}

// Parse reads a "group:artifact" or "group:artifact:version" notation.
func Parse(notation string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(notation), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Coordinate{}, fmt.Errorf("invalid dependency notation %q: expected group:artifact[:version]", notation)
	}
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("invalid dependency notation %q: empty segment", notation)
		}
	}
	c := Coordinate{Group: parts[0], Name: parts[1]}
	if len(parts) == 3 {
		c.Version = parts[2]
	}
	return c, nil
}

// MustParse is like Parse but panics on error. Meant for package-level constants.
func MustParse(notation string) Coordinate {
	c, err := Parse(notation)
	if err != nil {
		panic(err)
	}
	return c
}

// Module returns the version-less "group:artifact" key.
func (c Coordinate) Module() string {
	return c.Group + ":" + c.Name
}

// WithVersion returns a copy of c at version v.
func (c Coordinate) WithVersion(v string) Coordinate {
	c.Version = v
	return c
}

func (c Coordinate) String() string {
	if c.Version == "" {
		return c.Module()
	}
	return c.Module() + ":" + c.Version
}

// IsSemver reports whether v reads as a semantic version, with or without
// the leading "v" Go tooling expects.
func IsSemver(v string) bool {
	return semver.IsValid(canonical(v))
}

// Compare orders two versions. Semantic versions are compared with
// golang.org/x/mod/semver; anything else falls back to a segment-wise
// numeric comparison, then to plain string order.
func Compare(a, b string) int {
	ca, cb := canonical(a), canonical(b)
	if semver.IsValid(ca) && semver.IsValid(cb) {
		return semver.Compare(ca, cb)
	}
	return compareSegments(a, b)
}

func canonical(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

func compareSegments(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var x, y string
		if i < len(as) {
			x = as[i]
		}
		if i < len(bs) {
			y = bs[i]
		}
		xi, xerr := strconv.Atoi(x)
		yi, yerr := strconv.Atoi(y)
		switch {
		case xerr == nil && yerr == nil:
			if xi != yi {
				if xi < yi {
					return -1
				}
				return 1
			}
		default:
			if c := strings.Compare(x, y); c != 0 {
				return c
			}
		}
	}
	return 0
}

package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BumpLevel selects which component of a version to advance
type BumpLevel int

const (
	BumpPatch BumpLevel = iota
	BumpMinor
	BumpMajor
)

func (b BumpLevel) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	default:
		return "patch"
	}
}

// ParseBumpLevel maps a label name to a bump level. Unknown labels are not
// a bump signal, so the boolean reports whether the name was recognized.
func ParseBumpLevel(name string) (BumpLevel, bool) {
	switch strings.TrimSpace(name) {
	case "major":
		return BumpMajor, true
	case "minor":
		return BumpMinor, true
	case "patch":
		return BumpPatch, true
	default:
		return BumpPatch, false
	}
}

// HighestBump picks the strongest bump signal from a set of label names,
// defaulting to patch when none match.
func HighestBump(labels []string) BumpLevel {
	level := BumpPatch
	for _, l := range labels {
		b, ok := ParseBumpLevel(l)
		if !ok {
			continue
		}
		if b > level {
			level = b
		}
	}
	return level
}

// Version is a strict major.minor.patch triple
type Version struct {
	Major int
	Minor int
	Patch int
}

var versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// ParseVersion parses a strict "major.minor.patch" string
func ParseVersion(s string) (Version, error) {
	m := versionRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, fmt.Errorf("invalid version: %q", s)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns the next version for the given level. Major resets minor and
// patch, minor resets patch.
func (v Version) Bump(level BumpLevel) Version {
	switch level {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// Compare orders versions by lexicographic triple comparison.
// Returns -1, 0, or 1.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		return cmpInt(v.Major, o.Major)
	}
	if v.Minor != o.Minor {
		return cmpInt(v.Minor, o.Minor)
	}
	return cmpInt(v.Patch, o.Patch)
}

// Less reports whether v orders before o
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

package domain

import (
	"fmt"
	"strings"
)

// TagName builds the release tag for a crate version
func TagName(crate string, v Version) string {
	return fmt.Sprintf("%s-%s", crate, v)
}

// NextAvailableTag returns base if it is not taken, otherwise the first
// "base-1", "base-2", ... not present in existing. Existing tags are never
// reused or overwritten.
func NextAvailableTag(base string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		taken[t] = struct{}{}
	}
	name := base
	for n := 1; ; n++ {
		if _, ok := taken[name]; !ok {
			return name
		}
		name = fmt.Sprintf("%s-%d", base, n)
	}
}

// LatestTagFor finds the release tag with the highest version for a crate
// among existing tags. Only exact "crate-major.minor.patch" names are
// considered; collision-suffixed tags ("crate-1.2.3-1") are re-runs of the
// same version and do not participate in ordering. The boolean is false
// when the crate has no release tag yet.
func LatestTagFor(crate string, existing []string) (string, Version, bool) {
	prefix := crate + "-"
	var (
		best     Version
		bestName string
		found    bool
	)
	for _, t := range existing {
		if !strings.HasPrefix(t, prefix) {
			continue
		}
		v, err := ParseVersion(strings.TrimPrefix(t, prefix))
		if err != nil {
			continue
		}
		if !found || best.Less(v) {
			best = v
			bestName = t
			found = true
		}
	}
	return bestName, best, found
}

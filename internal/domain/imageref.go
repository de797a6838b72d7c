package domain

import (
	"fmt"
	"regexp"
)

// ImageRef locates and rewrites container image references to one crate's
// published image inside a build file. Two tag forms are recognized: the
// pinned "<registry>:<crate>-<major.minor.patch>" form and the floating
// "<registry>:sha-<hex>" form. Both are normalized to the pinned form.
type ImageRef struct {
	registry string
	crate    string
	pinned   *regexp.Regexp
	floating *regexp.Regexp
}

// NewImageRef builds the matchers for one registry image and crate
func NewImageRef(registry, crate string) ImageRef {
	r := regexp.QuoteMeta(registry)
	c := regexp.QuoteMeta(crate)
	return ImageRef{
		registry: registry,
		crate:    crate,
		pinned:   regexp.MustCompile(r + ":" + c + `-(\d+\.\d+\.\d+)`),
		floating: regexp.MustCompile(r + `:sha-[0-9a-f]+`),
	}
}

// PinnedVersion returns the version currently referenced by the pinned tag
// form. The boolean is false when the build file does not reference this
// crate's image at all.
func (ir ImageRef) PinnedVersion(text string) (Version, bool) {
	match := ir.pinned.FindStringSubmatch(text)
	if match == nil {
		return Version{}, false
	}
	v, err := ParseVersion(match[1])
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// Rewrite replaces every pinned and floating reference with the pinned tag
// for the new version.
func (ir ImageRef) Rewrite(text string, v Version) string {
	replacement := fmt.Sprintf("%s:%s-%s", ir.registry, ir.crate, v)
	out := ir.pinned.ReplaceAllString(text, replacement)
	out = ir.floating.ReplaceAllString(out, replacement)
	return out
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// ChangelogTitle is the first line written when a crate has no changelog yet
const ChangelogTitle = "# Changelog"

// ChangelogSection renders one release section: a dated heading followed by
// one bullet per commit subject, newest first.
func ChangelogSection(v Version, date time.Time, subjects []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s (%s)\n\n", v, date.Format("2006-01-02"))
	for _, s := range subjects {
		fmt.Fprintf(&b, "* %s\n", s)
	}
	b.WriteString("\n")
	return b.String()
}

// InsertChangelogSection places section immediately after the changelog's
// title line, preserving everything already below it. Content without a
// trailing newline after the title still gets the section on its own lines.
func InsertChangelogSection(content, section string) string {
	lines := strings.SplitAfter(content, "\n")
	if len(lines) > 1 || (len(lines) == 1 && strings.HasSuffix(lines[0], "\n")) {
		var b strings.Builder
		b.WriteString(lines[0])
		b.WriteString(section)
		for _, l := range lines[1:] {
			b.WriteString(l)
		}
		return b.String()
	}
	// Title only, no newline yet.
	return content + "\n" + section
}

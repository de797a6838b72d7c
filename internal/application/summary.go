package application

import (
	"fmt"
	"os"
	"strings"

	"tagger/internal/domain"
)

// RenderSummary formats the step-summary section for a run's downstream
// updates. Only successful propagations appear; failed ones produce no
// partial entries.
func RenderSummary(updates []domain.DownstreamUpdate) string {
	if len(updates) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Downstream Repository Updates\n")
	for _, u := range updates {
		fmt.Fprintf(&b,
			"- **Crate**: %s | **Repo**: [%s](https://github.com/%s) | **New Version**: %s | **PR**: [#%d](%s)\n",
			u.Crate, u.Repo, u.Repo, u.NewVersion, u.PRNumber, u.PRURL)
	}
	return b.String()
}

// AppendSummary appends the rendered section to the summary sink file
// (e.g. the GitHub step summary). An empty path or empty update set is a
// no-op.
func AppendSummary(path string, updates []domain.DownstreamUpdate) error {
	section := RenderSummary(updates)
	if path == "" || section == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open summary file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(section); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

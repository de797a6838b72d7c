package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"tagger/internal/ports"
)

// DetectCommand finds the crates whose files changed in the latest commit
type DetectCommand struct {
	repo     ports.Repository
	appsRoot string
	log      *slog.Logger
}

// NewDetectCommand creates a new DetectCommand
func NewDetectCommand(repo ports.Repository, appsRoot string, log *slog.Logger) *DetectCommand {
	return &DetectCommand{repo: repo, appsRoot: appsRoot, log: log}
}

// Execute returns the sorted, deduplicated crate names touched by HEAD.
// When HEAD has no parent or the diff cannot be computed, every tracked
// file counts as changed. An empty result is a valid no-op run.
func (c *DetectCommand) Execute(ctx context.Context) ([]string, error) {
	files, err := c.repo.DiffAgainstParent(ctx)
	if err != nil {
		c.log.Warn("diff against parent failed, falling back to tracked files", "error", err)
		files, err = c.repo.TrackedFiles(ctx)
		if err != nil {
			return nil, err
		}
	}

	crates := cratesFromPaths(files, c.appsRoot)
	c.log.Info("detected changed crates", "crates", crates)
	return crates, nil
}

func cratesFromPaths(files []string, appsRoot string) []string {
	prefix := strings.TrimSuffix(appsRoot, "/") + "/"
	seen := make(map[string]struct{})
	for _, f := range files {
		rest, ok := strings.CutPrefix(f, prefix)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(rest, "/")
		if name == "" {
			continue
		}
		seen[name] = struct{}{}
	}

	crates := make([]string, 0, len(seen))
	for name := range seen {
		crates = append(crates, name)
	}
	sort.Strings(crates)
	return crates
}

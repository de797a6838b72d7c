package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"tagger/internal/config"
	"tagger/internal/domain"
	"tagger/internal/ports"
)

// BumpCommand resolves the run-wide bump level from pull request labels
type BumpCommand struct {
	forge ports.Forge
	cfg   config.Config
	log   *slog.Logger
}

// NewBumpCommand creates a new BumpCommand
func NewBumpCommand(forge ports.Forge, cfg config.Config, log *slog.Logger) *BumpCommand {
	return &BumpCommand{forge: forge, cfg: cfg, log: log}
}

// eventPayload is the slice of the GitHub event document we care about
type eventPayload struct {
	PullRequest struct {
		Number int `json:"number"`
	} `json:"pull_request"`
}

// Execute returns the bump level for the whole run. Missing or unreadable
// event metadata degrades to patch; a failing label lookup against the API
// is a hard error because the decision applies to every crate.
func (c *BumpCommand) Execute(ctx context.Context) (domain.BumpLevel, error) {
	if c.cfg.EventName != "pull_request" {
		c.log.Info("not a pull_request event, defaulting bump level", "event", c.cfg.EventName, "bump", domain.BumpPatch)
		return domain.BumpPatch, nil
	}

	number, ok := c.prNumber()
	if !ok {
		return domain.BumpPatch, nil
	}

	owner, repo, err := c.cfg.OwnerRepo()
	if err != nil {
		c.log.Warn("cannot determine repository for label lookup", "error", err)
		return domain.BumpPatch, nil
	}

	labels, err := c.forge.PullRequestLabels(ctx, owner, repo, number)
	if err != nil {
		return domain.BumpPatch, fmt.Errorf("resolve bump level for PR #%d: %w", number, err)
	}

	level := domain.HighestBump(labels)
	c.log.Info("resolved bump level", "pr", number, "labels", labels, "bump", level)
	return level, nil
}

func (c *BumpCommand) prNumber() (int, bool) {
	if c.cfg.EventPath == "" {
		c.log.Warn("pull_request event without event payload path")
		return 0, false
	}
	raw, err := os.ReadFile(c.cfg.EventPath)
	if err != nil {
		c.log.Warn("cannot read event payload", "path", c.cfg.EventPath, "error", err)
		return 0, false
	}
	var payload eventPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.log.Warn("cannot parse event payload", "path", c.cfg.EventPath, "error", err)
		return 0, false
	}
	if payload.PullRequest.Number == 0 {
		c.log.Warn("event payload carries no pull request number")
		return 0, false
	}
	return payload.PullRequest.Number, true
}

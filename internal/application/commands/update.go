package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tagger/internal/application"
	"tagger/internal/config"
	"tagger/internal/domain"
	"tagger/internal/ports"
)

// UpdateCommand advances one crate's version, changelog, commit history and
// tag set. Updates mutate the shared working tree, so callers run them
// sequentially.
type UpdateCommand struct {
	git ports.Repository
	ws  ports.Workspace
	cfg config.Config
	log *slog.Logger
	now func() time.Time
}

// NewUpdateCommand creates a new UpdateCommand
func NewUpdateCommand(git ports.Repository, ws ports.Workspace, cfg config.Config, log *slog.Logger) *UpdateCommand {
	return &UpdateCommand{git: git, ws: ws, cfg: cfg, log: log, now: time.Now}
}

// Execute bumps the crate and returns the new version and created tag.
//
// Missing manifest and malformed version are skip conditions
// (application.SkipsCrate); every later failure is an *application.UpdateError
// and may leave uncommitted local state behind.
func (c *UpdateCommand) Execute(ctx context.Context, crate domain.Crate, level domain.BumpLevel) (domain.UpdatedCrate, error) {
	log := c.log.With("crate", crate.Name)

	if !c.ws.ManifestExists(crate) {
		return domain.UpdatedCrate{}, fmt.Errorf("%s: %w", crate.ManifestPath, application.ErrManifestMissing)
	}
	manifest, err := c.ws.ReadManifest(crate)
	if err != nil {
		return domain.UpdatedCrate{}, &application.UpdateError{Crate: crate.Name, Stage: "read", Err: err}
	}
	current, err := manifest.Version()
	if err != nil {
		return domain.UpdatedCrate{}, fmt.Errorf("%s: %v: %w", crate.ManifestPath, err, application.ErrMalformedVersion)
	}

	next := current.Bump(level)
	log.Info("bumping crate", "from", current, "to", next, "bump", level)

	tags, err := c.git.Tags(ctx)
	if err != nil {
		return domain.UpdatedCrate{}, &application.UpdateError{Crate: crate.Name, Stage: "tags", Err: err}
	}
	tagName := domain.NextAvailableTag(domain.TagName(crate.Name, next), tags)

	updated := domain.UpdatedCrate{
		Crate:      crate,
		OldVersion: current,
		NewVersion: next,
		Tag:        tagName,
	}

	if c.cfg.DryRun {
		log.Info("dry run: would update manifest, changelog, commit, tag and push", "tag", tagName)
		return updated, nil
	}

	if err := c.ws.WriteManifest(crate, manifest.WithVersion(next)); err != nil {
		return domain.UpdatedCrate{}, &application.UpdateError{Crate: crate.Name, Stage: "write", Err: err}
	}

	if err := c.updateChangelog(ctx, crate, next, tags, log); err != nil {
		return domain.UpdatedCrate{}, &application.UpdateError{Crate: crate.Name, Stage: "changelog", Err: err}
	}

	message := fmt.Sprintf("chore: bump %s version to %s [skip ci]", crate.Name, next)
	if err := c.git.Commit(ctx, message, crate.ManifestPath, crate.ChangelogPath); err != nil {
		return domain.UpdatedCrate{}, &application.UpdateError{Crate: crate.Name, Stage: "commit", Err: err}
	}

	if err := c.git.CreateTag(ctx, tagName, fmt.Sprintf("Release %s %s", crate.Name, next)); err != nil {
		return domain.UpdatedCrate{}, &application.UpdateError{Crate: crate.Name, Stage: "tag", Err: err}
	}

	if err := c.git.Push(ctx, c.cfg.Token, tagName); err != nil {
		return domain.UpdatedCrate{}, &application.UpdateError{Crate: crate.Name, Stage: "push", Err: err}
	}

	log.Info("crate updated", "version", next, "tag", tagName)
	return updated, nil
}

// updateChangelog prepends a release section built from the commit subjects
// touching the crate since its latest release tag. No qualifying commits
// means the changelog stays untouched.
func (c *UpdateCommand) updateChangelog(ctx context.Context, crate domain.Crate, next domain.Version, tags []string, log *slog.Logger) error {
	content, err := c.ws.EnsureChangelog(crate)
	if err != nil {
		return err
	}

	fromTag, _, found := domain.LatestTagFor(crate.Name, tags)
	if !found {
		fromTag = "" // full history
	}

	subjects, err := c.git.SubjectsSince(ctx, fromTag, crate.Dir)
	if err != nil {
		log.Warn("collecting commit subjects failed, changelog left untouched", "error", err)
		return nil
	}
	if len(subjects) == 0 {
		log.Info("no commits since last tag, changelog left untouched", "from", fromTag)
		return nil
	}

	section := domain.ChangelogSection(next, c.now(), subjects)
	return c.ws.WriteChangelog(crate, domain.InsertChangelogSection(content, section))
}

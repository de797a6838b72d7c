package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"tagger/internal/application"
	"tagger/internal/config"
	"tagger/internal/domain"
	"tagger/internal/ports"
)

// PropagateCommand pushes one crate's new version into its downstream
// repository via a pull request. Each invocation works in its own temp
// clone, so propagations for distinct crates run in parallel safely.
type PropagateCommand struct {
	ws    ports.Workspace
	forge ports.Forge
	git   ports.DownstreamGit
	cfg   config.Config
	log   *slog.Logger
	// workdir returns a fresh directory for the clone; overridable in tests.
	workdir func() string
}

// NewPropagateCommand creates a new PropagateCommand
func NewPropagateCommand(ws ports.Workspace, forge ports.Forge, git ports.DownstreamGit, cfg config.Config, log *slog.Logger) *PropagateCommand {
	return &PropagateCommand{
		ws:    ws,
		forge: forge,
		git:   git,
		cfg:   cfg,
		log:   log,
		workdir: func() string {
			return filepath.Join(os.TempDir(), "downstream-"+uuid.NewString())
		},
	}
}

// Execute propagates the update and returns the resulting pull request
// identity. No-op conditions (no linked repository, no image reference,
// already current) surface as application.SkipsPropagation errors.
func (c *PropagateCommand) Execute(ctx context.Context, updated domain.UpdatedCrate) (domain.DownstreamUpdate, error) {
	crate := updated.Crate
	log := c.log.With("crate", crate.Name)

	manifest, err := c.ws.ReadManifest(crate)
	if err != nil {
		return domain.DownstreamUpdate{}, &application.PropagationError{Crate: crate.Name, Stage: "manifest", Err: err}
	}
	url := manifest.RepositoryURL()
	if url == "" {
		return domain.DownstreamUpdate{}, fmt.Errorf("%s: %w", crate.Name, application.ErrNoRepository)
	}
	owner, name, ok := domain.GitHubRepo(url)
	if !ok {
		return domain.DownstreamUpdate{}, fmt.Errorf("%s: %q: %w", crate.Name, url, application.ErrNoRepository)
	}
	repo := owner + "/" + name
	log = log.With("repo", repo)

	text, found, err := c.forge.FileAtHead(ctx, owner, name, c.cfg.BuildFile)
	if err != nil {
		return domain.DownstreamUpdate{}, &application.PropagationError{Crate: crate.Name, Repo: repo, Stage: "fetch", Err: err}
	}
	if !found {
		return domain.DownstreamUpdate{}, fmt.Errorf("%s has no %s: %w", repo, c.cfg.BuildFile, application.ErrNoImageReference)
	}

	ref := domain.NewImageRef(c.cfg.Registry, crate.Name)
	pinned, ok := ref.PinnedVersion(text)
	if !ok {
		return domain.DownstreamUpdate{}, fmt.Errorf("%s does not reference %s: %w", repo, crate.Name, application.ErrNoImageReference)
	}
	if pinned == updated.NewVersion {
		return domain.DownstreamUpdate{}, fmt.Errorf("%s already pins %s: %w", repo, pinned, application.ErrAlreadyCurrent)
	}

	rewritten := ref.Rewrite(text, updated.NewVersion)
	branch := fmt.Sprintf("update-%s-to-%s", crate.Name, updated.NewVersion)
	title := fmt.Sprintf("Upgrading GSM Version to: %s-%s", crate.Name, updated.NewVersion)

	if c.cfg.DryRun {
		log.Info("dry run: would push branch and open pull request", "branch", branch, "title", title)
		return domain.DownstreamUpdate{
			Crate:      crate.Name,
			Repo:       repo,
			NewVersion: updated.NewVersion,
			PRURL:      fmt.Sprintf("https://github.com/%s/pulls", repo),
		}, nil
	}

	if err := c.pushBranch(ctx, repo, branch, rewritten, updated, log); err != nil {
		return domain.DownstreamUpdate{}, err
	}

	pr, err := c.ensurePullRequest(ctx, owner, name, title, branch, updated, log)
	if err != nil {
		return domain.DownstreamUpdate{}, err
	}

	log.Info("downstream updated", "pr", pr.Number, "url", pr.URL)
	return domain.DownstreamUpdate{
		Crate:      crate.Name,
		Repo:       repo,
		NewVersion: updated.NewVersion,
		PRNumber:   pr.Number,
		PRURL:      pr.URL,
	}, nil
}

func (c *PropagateCommand) pushBranch(ctx context.Context, repo, branch, content string, updated domain.UpdatedCrate, log *slog.Logger) error {
	crate := updated.Crate.Name
	dir := c.workdir()
	defer os.RemoveAll(dir)

	fail := func(stage string, err error) error {
		return &application.PropagationError{Crate: crate, Repo: repo, Stage: stage, Err: err}
	}

	if err := c.git.Clone(ctx, repo, dir); err != nil {
		return fail("clone", err)
	}
	if err := c.git.CheckoutBranch(ctx, dir, branch); err != nil {
		return fail("branch", err)
	}
	if err := os.WriteFile(filepath.Join(dir, c.cfg.BuildFile), []byte(content), 0o644); err != nil {
		return fail("write", err)
	}
	message := fmt.Sprintf("chore: update %s to version %s", crate, updated.NewVersion)
	if err := c.git.CommitFile(ctx, dir, c.cfg.BuildFile, message); err != nil {
		return fail("commit", err)
	}
	if err := c.git.PushBranch(ctx, dir, branch); err != nil {
		return fail("push", err)
	}
	log.Info("pushed downstream branch", "branch", branch)
	return nil
}

// ensurePullRequest reuses an open pull request with the exact expected
// title, creating one otherwise. The title is the dedupe key.
func (c *PropagateCommand) ensurePullRequest(ctx context.Context, owner, name, title, branch string, updated domain.UpdatedCrate, log *slog.Logger) (domain.PullRequest, error) {
	crate := updated.Crate.Name
	repo := owner + "/" + name

	prs, err := c.forge.OpenPullRequests(ctx, owner, name)
	if err != nil {
		return domain.PullRequest{}, &application.PropagationError{Crate: crate, Repo: repo, Stage: "pr list", Err: err}
	}
	for _, pr := range prs {
		if pr.Title == title {
			log.Info("pull request already open", "pr", pr.Number)
			return pr, nil
		}
	}

	base, err := c.forge.DefaultBranch(ctx, owner, name)
	if err != nil {
		log.Warn("default branch lookup failed, using configured base", "base", c.cfg.BaseBranch, "error", err)
		base = c.cfg.BaseBranch
	}

	body := fmt.Sprintf("Updating to the latest version of %s: %s", crate, updated.NewVersion)
	pr, err := c.forge.CreatePullRequest(ctx, owner, name, title, body, branch, base)
	if err != nil {
		return domain.PullRequest{}, &application.PropagationError{Crate: crate, Repo: repo, Stage: "pr create", Err: err}
	}
	return pr, nil
}

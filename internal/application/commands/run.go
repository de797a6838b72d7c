package commands

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tagger/internal/application"
	"tagger/internal/config"
	"tagger/internal/domain"
	"tagger/internal/ports"
)

// RunCommand sequences the whole workflow: detect changed crates, resolve
// the bump level once, update crates sequentially, fan out downstream
// propagation, then write the summary.
type RunCommand struct {
	git   ports.Repository
	down  ports.DownstreamGit
	forge ports.Forge
	ws    ports.Workspace
	cfg   config.Config
	log   *slog.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(git ports.Repository, down ports.DownstreamGit, forge ports.Forge, ws ports.Workspace, cfg config.Config, log *slog.Logger) *RunCommand {
	return &RunCommand{git: git, down: down, forge: forge, ws: ws, cfg: cfg, log: log}
}

// RunResult summarizes one invocation
type RunResult struct {
	Changed    []string
	Bump       domain.BumpLevel
	Updated    []domain.UpdatedCrate
	Downstream []domain.DownstreamUpdate
}

// Execute runs the workflow. Per-crate failures are logged and skipped;
// only a failing bump resolution (a run-wide decision) aborts the run.
func (c *RunCommand) Execute(ctx context.Context) (*RunResult, error) {
	log := c.log.With("run", uuid.NewString()[:8])
	log.Info("starting versioning workflow", "dry_run", c.cfg.DryRun)

	if err := c.git.Prepare(ctx); err != nil {
		log.Warn("repository preparation failed", "error", err)
	}

	changed, err := NewDetectCommand(c.git, c.cfg.AppsRoot, log).Execute(ctx)
	if err != nil {
		return nil, err
	}
	if len(changed) == 0 {
		log.Info("no changed crates, nothing to do")
		return &RunResult{}, nil
	}

	level, err := NewBumpCommand(c.forge, c.cfg, log).Execute(ctx)
	if err != nil {
		return nil, err
	}

	// Updates mutate the shared working tree and tag namespace: strictly
	// sequential.
	update := NewUpdateCommand(c.git, c.ws, c.cfg, log)
	var updated []domain.UpdatedCrate
	for _, name := range changed {
		crate := domain.NewCrate(c.cfg.AppsRoot, name, c.cfg.ManifestName, c.cfg.ChangelogName)
		u, err := update.Execute(ctx, crate, level)
		if err != nil {
			if application.SkipsCrate(err) {
				log.Warn("skipping crate", "crate", name, "reason", err)
			} else {
				log.Error("crate update failed", "crate", name, "error", err)
			}
			continue
		}
		updated = append(updated, u)
	}

	downstream := c.propagateAll(ctx, updated, log)

	if err := application.AppendSummary(c.cfg.SummaryPath, downstream); err != nil {
		log.Error("writing summary failed", "error", err)
	}

	log.Info("versioning workflow completed",
		"changed", len(changed), "updated", len(updated), "downstream", len(downstream))
	return &RunResult{
		Changed:    changed,
		Bump:       level,
		Updated:    updated,
		Downstream: downstream,
	}, nil
}

// propagateAll fans propagation out over a bounded worker pool. Each task
// touches an independent external repository; results arrive in completion
// order and failures never abort sibling tasks.
func (c *RunCommand) propagateAll(ctx context.Context, updated []domain.UpdatedCrate, log *slog.Logger) []domain.DownstreamUpdate {
	propagate := NewPropagateCommand(c.ws, c.forge, c.down, c.cfg, log)

	var (
		mu      sync.Mutex
		results []domain.DownstreamUpdate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Workers)
	for _, u := range updated {
		u := u
		g.Go(func() error {
			res, err := propagate.Execute(gctx, u)
			if err != nil {
				if application.SkipsPropagation(err) {
					log.Info("no downstream update needed", "crate", u.Crate.Name, "reason", err)
				} else {
					log.Error("downstream propagation failed", "crate", u.Crate.Name, "error", err)
				}
				return nil
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; Wait is just the join point.
	_ = g.Wait()
	return results
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagger/internal/adapters/gitcli"
	"tagger/internal/adapters/github"
	"tagger/internal/adapters/workspace"
	"tagger/internal/application/commands"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full release workflow",
	Long: `Run the full release workflow against the current checkout.

Detects crates changed in the latest commit, resolves the bump level
from the merged pull request's labels, updates each crate's manifest
and changelog, commits, tags, pushes, and propagates the new versions
into downstream repositories.

Examples:
  tagger run
  tagger run --dry-run
  tagger run --repo /srv/checkout --timeout 5m`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		repo := gitcli.NewRepository(repoDir)
		down := gitcli.NewDownstream(cfg.Token)
		forge := github.NewForge(ctx, cfg.Token)
		ws := workspace.New(repoDir)

		run := commands.NewRunCommand(repo, down, forge, ws, cfg, log)
		result, err := run.Execute(ctx)
		if err != nil {
			return err
		}

		if len(result.Changed) == 0 {
			fmt.Println("No crates changed.")
			return nil
		}
		fmt.Printf("Bump level: %s\n", result.Bump)
		for _, u := range result.Updated {
			fmt.Printf("Updated %s: %s -> %s (tag %s)\n", u.Crate.Name, u.OldVersion, u.NewVersion, u.Tag)
		}
		for _, d := range result.Downstream {
			fmt.Printf("Downstream %s: %s now at %s (%s)\n", d.Repo, d.Crate, d.NewVersion, d.PRURL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

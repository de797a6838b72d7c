package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagger/internal/adapters/github"
	"tagger/internal/application/commands"
)

var bumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Resolve the bump level for this run",
	Long: `Resolve the semver bump level from the GitHub event context and
print it. Reads GITHUB_EVENT_NAME and GITHUB_EVENT_PATH; anything other
than a labeled pull_request event resolves to patch.

Examples:
  tagger bump`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		forge := github.NewForge(ctx, cfg.Token)
		bump := commands.NewBumpCommand(forge, cfg, log)
		level, err := bump.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(level)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)
}

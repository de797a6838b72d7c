package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagger/internal/adapters/gitcli"
	"tagger/internal/application/commands"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "List crates changed in the latest commit",
	Long: `List the crates whose files changed in the latest commit, one per
line. Prints nothing when no crate changed.

Examples:
  tagger detect
  tagger detect --repo /srv/checkout`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		repo := gitcli.NewRepository(repoDir)
		detect := commands.NewDetectCommand(repo, cfg.AppsRoot, log)
		crates, err := detect.Execute(ctx)
		if err != nil {
			return err
		}
		for _, name := range crates {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

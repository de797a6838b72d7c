package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tagger/internal/config"
	"tagger/internal/logging"
)

var (
	repoDir    string
	configPath string
	dryRun     bool
	timeout    time.Duration

	cfg config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tagger",
	Short: "Release automation for Cargo monorepos",
	Long: `tagger automates crate releases in a Cargo workspace monorepo.

On every merge it detects which crates changed, bumps their versions
according to the merged pull request's labels, updates manifests and
changelogs, tags and pushes the release, and opens pull requests on the
downstream repositories that consume the published images.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dryRun {
			cfg.DryRun = true
		}
		log = logging.New(cfg.LogLevel, cfg.LogJSON)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&repoDir, "repo", "r", ".", "path to the monorepo checkout")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "tagger.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "log actions without mutating anything")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall deadline for the run")
}

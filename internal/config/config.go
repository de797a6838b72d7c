package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults matching the monorepo layout this tool was built for.
const (
	DefaultAppsRoot      = "apps"
	DefaultManifestName  = "Cargo.toml"
	DefaultChangelogName = "CHANGELOG.md"
	DefaultBuildFile     = "Dockerfile"
	DefaultRegistry      = "mbround18/gsm-reference"
	DefaultBaseBranch    = "main"
	DefaultWorkers       = 5
)

// Config is the explicit configuration passed into every component. It is
// assembled once at startup from the process environment plus an optional
// YAML file; nothing else reads the environment.
type Config struct {
	// Layout of the monorepo and downstream build files.
	AppsRoot      string `yaml:"apps_root"`
	ManifestName  string `yaml:"manifest_name"`
	ChangelogName string `yaml:"changelog_name"`
	BuildFile     string `yaml:"build_file"`
	Registry      string `yaml:"registry"`
	BaseBranch    string `yaml:"base_branch"`
	Workers       int    `yaml:"workers"`

	// Run behavior.
	DryRun bool `yaml:"-"`

	// GitHub event context and credentials.
	Token       string `yaml:"-"`
	EventName   string `yaml:"-"`
	EventPath   string `yaml:"-"`
	Repository  string `yaml:"-"` // "owner/name" of the monorepo itself
	SummaryPath string `yaml:"-"`

	// Logging.
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

// Load builds the configuration from the environment, overlaying the YAML
// file at path when it exists. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Config{
		AppsRoot:      DefaultAppsRoot,
		ManifestName:  DefaultManifestName,
		ChangelogName: DefaultChangelogName,
		BuildFile:     DefaultBuildFile,
		Registry:      DefaultRegistry,
		BaseBranch:    DefaultBaseBranch,
		Workers:       DefaultWorkers,
		LogLevel:      "info",
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.DryRun = truthy(os.Getenv("DRY_RUN"))
	cfg.Token = os.Getenv("GH_TOKEN")
	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}
	cfg.EventName = os.Getenv("GITHUB_EVENT_NAME")
	cfg.EventPath = os.Getenv("GITHUB_EVENT_PATH")
	cfg.Repository = os.Getenv("GITHUB_REPOSITORY")
	cfg.SummaryPath = os.Getenv("GITHUB_STEP_SUMMARY")
	if lvl := os.Getenv("TAGGER_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}

	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return cfg, nil
}

// OwnerRepo splits the "owner/name" repository identifier
func (c Config) OwnerRepo() (string, string, error) {
	owner, name, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("GITHUB_REPOSITORY not set or malformed: %q", c.Repository)
	}
	return owner, name, nil
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

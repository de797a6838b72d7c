package domain

import "path"

// Crate is a versioned sub-project under the monorepo's apps root.
// Discovered fresh each run by diffing, never persisted.
type Crate struct {
	Name          string
	Dir           string
	ManifestPath  string
	ChangelogPath string
}

// NewCrate derives a crate's paths from the layout configuration
func NewCrate(appsRoot, name, manifestName, changelogName string) Crate {
	dir := path.Join(appsRoot, name)
	return Crate{
		Name:          name,
		Dir:           dir,
		ManifestPath:  path.Join(dir, manifestName),
		ChangelogPath: path.Join(dir, changelogName),
	}
}

// UpdatedCrate records a completed version bump
type UpdatedCrate struct {
	Crate      Crate
	OldVersion Version
	NewVersion Version
	Tag        string
}

// PullRequest identifies an open pull request on a downstream repository
type PullRequest struct {
	Number int
	Title  string
	URL    string
}

// DownstreamUpdate is the result of one successful propagation. Collected
// into the run summary and discarded afterwards.
type DownstreamUpdate struct {
	Crate      string
	Repo       string // "owner/name"
	NewVersion Version
	PRNumber   int
	PRURL      string
}

package ports

import (
	"context"

	"tagger/internal/domain"
)

// Forge is the hosted-repository API surface the release flow needs:
// label lookup for the bump decision, blob reads for downstream build
// files, and pull request dedupe/creation.
type Forge interface {
	// PullRequestLabels returns the label names on a pull request.
	PullRequestLabels(ctx context.Context, owner, repo string, number int) ([]string, error)
	// FileAtHead fetches a file's text at the default branch tip. The
	// boolean is false when the file does not exist.
	FileAtHead(ctx context.Context, owner, repo, path string) (string, bool, error)
	// DefaultBranch returns the repository's default branch name.
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)
	// OpenPullRequests lists the open pull requests on a repository.
	OpenPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error)
	// CreatePullRequest opens a pull request from head against base.
	CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string) (domain.PullRequest, error)
}

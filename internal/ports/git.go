package ports

import "context"

// Repository defines the git operations the release flow performs on the
// monorepo working tree. The update phase mutates shared repository state
// (index, history, tag namespace), so callers must not run these
// concurrently.
type Repository interface {
	// Prepare marks the checkout as a safe directory and sets a fallback
	// committer identity when none is configured. Needed before any other
	// operation when running inside a container.
	Prepare(ctx context.Context) error
	// DiffAgainstParent lists the file paths that differ between HEAD and
	// its first parent.
	DiffAgainstParent(ctx context.Context) ([]string, error)
	// TrackedFiles lists every file tracked at HEAD. Used as the fallback
	// when HEAD has no parent or the diff cannot be computed.
	TrackedFiles(ctx context.Context) ([]string, error)
	// Tags lists all tag names in the repository.
	Tags(ctx context.Context) ([]string, error)
	// SubjectsSince collects the first line of every commit touching dir,
	// newest first. An empty fromTag means full history; otherwise the tag
	// is the exclusive lower bound.
	SubjectsSince(ctx context.Context, fromTag, dir string) ([]string, error)
	// Commit stages the given paths and records a single commit.
	Commit(ctx context.Context, message string, paths ...string) error
	// CreateTag creates an annotated tag at HEAD.
	CreateTag(ctx context.Context, name, message string) error
	// Push pushes HEAD and, when tag is non-empty, the tag. The token is
	// injected into the origin URL only for the duration of the call and
	// the URL is restored even when the push fails.
	Push(ctx context.Context, token, tag string) error
}

// DownstreamGit drives a disposable clone of a downstream repository. Each
// clone lives in its own temp directory, so propagation tasks are safe to
// run in parallel. Implementations carry their own credentials.
type DownstreamGit interface {
	// Clone checks out the repository into dir.
	Clone(ctx context.Context, ownerRepo, dir string) error
	// CheckoutBranch creates and switches to a new branch in dir.
	CheckoutBranch(ctx context.Context, dir, branch string) error
	// CommitFile stages one file and commits it in dir.
	CommitFile(ctx context.Context, dir, file, message string) error
	// PushBranch pushes the branch to origin.
	PushBranch(ctx context.Context, dir, branch string) error
}

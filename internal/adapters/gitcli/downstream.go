package gitcli

import (
	"context"
	"fmt"
	"strings"
)

// Downstream implements ports.DownstreamGit. Every method takes the clone
// directory explicitly so independent propagations can run in parallel.
// Git prints remote URLs in its failure output, so all errors are scrubbed
// of the token before they propagate.
type Downstream struct {
	token string
}

// NewDownstream creates a Downstream authenticating with token
func NewDownstream(token string) *Downstream {
	return &Downstream{token: token}
}

// Clone checks the repository out into dir
func (d *Downstream) Clone(ctx context.Context, ownerRepo, dir string) error {
	url := "https://github.com/" + ownerRepo + ".git"
	if d.token != "" {
		url = "https://" + d.token + ":x-oauth-basic@github.com/" + ownerRepo + ".git"
	}
	if _, err := gitOutput(ctx, ".", "clone", "--depth", "1", url, dir); err != nil {
		return fmt.Errorf("clone %s: %w", ownerRepo, d.redact(err))
	}
	return nil
}

// CheckoutBranch creates and switches to a new branch
func (d *Downstream) CheckoutBranch(ctx context.Context, dir, branch string) error {
	if _, err := gitOutput(ctx, dir, "checkout", "-b", branch); err != nil {
		return fmt.Errorf("checkout %s: %w", branch, d.redact(err))
	}
	return nil
}

// CommitFile stages one file and commits it
func (d *Downstream) CommitFile(ctx context.Context, dir, file, message string) error {
	if _, err := gitOutput(ctx, dir, "add", "--", file); err != nil {
		return fmt.Errorf("stage %s: %w", file, d.redact(err))
	}
	if _, err := gitOutput(ctx, dir,
		"-c", "user.name=GitHub Actions",
		"-c", "user.email=actions@github.com",
		"commit", "-m", message); err != nil {
		return fmt.Errorf("commit: %w", d.redact(err))
	}
	return nil
}

// PushBranch pushes the branch to origin. The clone URL already carries
// the credentials.
func (d *Downstream) PushBranch(ctx context.Context, dir, branch string) error {
	if _, err := gitOutput(ctx, dir, "push", "origin", branch+":"+branch); err != nil {
		return fmt.Errorf("push %s: %w", branch, d.redact(err))
	}
	return nil
}

func (d *Downstream) redact(err error) error {
	if d.token == "" || err == nil {
		return err
	}
	msg := strings.ReplaceAll(err.Error(), d.token, "***")
	return fmt.Errorf("%s", msg)
}

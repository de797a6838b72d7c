// Package gitcli drives git through the git binary. The corpus of tools
// this one grew out of all shell out rather than reimplement git, and the
// CLI is guaranteed present in the CI images this runs in.
package gitcli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Repository implements ports.Repository for the monorepo checkout
type Repository struct {
	dir string
}

// NewRepository creates a Repository rooted at dir
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir returns the checkout root
func (r *Repository) Dir() string {
	return r.dir
}

// Prepare marks the checkout as a safe directory and sets a fallback
// committer identity. Containerized runners own the checkout as a
// different uid, and git refuses to operate without the safe.directory
// entry.
func (r *Repository) Prepare(ctx context.Context) error {
	if err := r.run(ctx, "config", "--global", "--add", "safe.directory", r.dir); err != nil {
		return fmt.Errorf("configure safe.directory: %w", err)
	}
	if _, err := r.output(ctx, "config", "user.name"); err != nil {
		if err := r.run(ctx, "config", "user.name", "GitHub Actions"); err != nil {
			return fmt.Errorf("set user.name: %w", err)
		}
	}
	if _, err := r.output(ctx, "config", "user.email"); err != nil {
		if err := r.run(ctx, "config", "user.email", "actions@github.com"); err != nil {
			return fmt.Errorf("set user.email: %w", err)
		}
	}
	return nil
}

// DiffAgainstParent lists paths differing between HEAD and its first
// parent. Fails on the initial commit; callers fall back to TrackedFiles.
func (r *Repository) DiffAgainstParent(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "diff", "--name-only", "HEAD^", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("diff against parent: %w", err)
	}
	return splitLines(out), nil
}

// TrackedFiles lists every file tracked at HEAD
func (r *Repository) TrackedFiles(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "ls-files")
	if err != nil {
		return nil, fmt.Errorf("list tracked files: %w", err)
	}
	return splitLines(out), nil
}

// Tags lists all tag names
func (r *Repository) Tags(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "tag", "--list")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return splitLines(out), nil
}

// SubjectsSince collects commit subject lines touching dir, newest first.
// An empty fromTag means full history.
func (r *Repository) SubjectsSince(ctx context.Context, fromTag, dir string) ([]string, error) {
	args := []string{"log", "--pretty=format:%s"}
	if fromTag != "" {
		args = append(args, fromTag+"..HEAD")
	}
	args = append(args, "--", dir)
	out, err := r.output(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", dir, err)
	}
	return splitLines(out), nil
}

// Commit stages paths and records a single commit
func (r *Repository) Commit(ctx context.Context, message string, paths ...string) error {
	if err := r.run(ctx, append([]string{"add", "--"}, paths...)...); err != nil {
		return fmt.Errorf("stage %v: %w", paths, err)
	}
	if err := r.run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// CreateTag creates an annotated tag at HEAD
func (r *Repository) CreateTag(ctx context.Context, name, message string) error {
	if err := r.run(ctx, "tag", "-a", name, "-m", message); err != nil {
		return fmt.Errorf("create tag %s: %w", name, err)
	}
	return nil
}

// Push pushes HEAD and, when tag is non-empty, the tag. The token goes
// into the origin URL only for the duration of the call; the original URL
// is restored on the way out even when the push fails, so the token never
// survives in persisted remote configuration.
func (r *Repository) Push(ctx context.Context, token, tag string) (err error) {
	out, err := r.output(ctx, "remote", "get-url", "origin")
	if err != nil {
		return fmt.Errorf("read origin url: %w", err)
	}
	originURL := strings.TrimSpace(out)

	if token != "" {
		rest, ok := strings.CutPrefix(originURL, "https://")
		if !ok {
			return fmt.Errorf("origin is not an https remote: %s", originURL)
		}
		if err := r.run(ctx, "remote", "set-url", "origin", "https://"+token+":x-oauth-basic@"+rest); err != nil {
			return fmt.Errorf("set tokenized origin url: %w", err)
		}
		defer func() {
			// Restore must happen even when the push failed or the
			// context is already cancelled.
			restoreCtx := context.WithoutCancel(ctx)
			if rerr := r.run(restoreCtx, "remote", "set-url", "origin", originURL); rerr != nil {
				err = errors.Join(err, fmt.Errorf("restore origin url: %w", rerr))
			}
		}()
	}

	if err := r.run(ctx, "push", "origin", "HEAD"); err != nil {
		return fmt.Errorf("push commits: %w", redactToken(err, token))
	}
	if tag != "" {
		if err := r.run(ctx, "push", "origin", tag); err != nil {
			return fmt.Errorf("push tag %s: %w", tag, redactToken(err, token))
		}
	}
	return nil
}

// redactToken scrubs the token from git output embedded in err. Git echoes
// the remote URL in push failure messages.
func redactToken(err error, token string) error {
	if err == nil || token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "***"))
}

func (r *Repository) output(ctx context.Context, args ...string) (string, error) {
	return gitOutput(ctx, r.dir, args...)
}

func (r *Repository) run(ctx context.Context, args ...string) error {
	_, err := gitOutput(ctx, r.dir, args...)
	return err
}

// gitOutput runs git in dir and returns stdout, folding stderr into the
// error for diagnostics.
func gitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

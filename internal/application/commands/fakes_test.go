package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"tagger/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepo is an in-memory ports.Repository
type fakeRepo struct {
	diff        []string
	diffErr     error
	tracked     []string
	trackedErr  error
	tags        []string
	tagsErr     error
	subjects    map[string][]string // crate dir -> subjects
	subjectsErr error

	commitErr error
	tagErr    error
	pushErr   error

	commits     []string // recorded commit messages
	staged      [][]string
	createdTags []string
	pushedTags  []string
}

func (r *fakeRepo) Prepare(ctx context.Context) error { return nil }

func (r *fakeRepo) DiffAgainstParent(ctx context.Context) ([]string, error) {
	return r.diff, r.diffErr
}

func (r *fakeRepo) TrackedFiles(ctx context.Context) ([]string, error) {
	return r.tracked, r.trackedErr
}

func (r *fakeRepo) Tags(ctx context.Context) ([]string, error) {
	return r.tags, r.tagsErr
}

func (r *fakeRepo) SubjectsSince(ctx context.Context, fromTag, dir string) ([]string, error) {
	if r.subjectsErr != nil {
		return nil, r.subjectsErr
	}
	return r.subjects[dir], nil
}

func (r *fakeRepo) Commit(ctx context.Context, message string, paths ...string) error {
	if r.commitErr != nil {
		return r.commitErr
	}
	r.commits = append(r.commits, message)
	r.staged = append(r.staged, paths)
	return nil
}

func (r *fakeRepo) CreateTag(ctx context.Context, name, message string) error {
	if r.tagErr != nil {
		return r.tagErr
	}
	r.createdTags = append(r.createdTags, name)
	r.tags = append(r.tags, name)
	return nil
}

func (r *fakeRepo) Push(ctx context.Context, token, tag string) error {
	if r.pushErr != nil {
		return r.pushErr
	}
	r.pushedTags = append(r.pushedTags, tag)
	return nil
}

// fakeWorkspace is an in-memory ports.Workspace keyed by crate name
type fakeWorkspace struct {
	manifests  map[string]string
	changelogs map[string]string
}

func newFakeWorkspace() *fakeWorkspace {
	return &fakeWorkspace{
		manifests:  make(map[string]string),
		changelogs: make(map[string]string),
	}
}

func (w *fakeWorkspace) ManifestExists(crate domain.Crate) bool {
	_, ok := w.manifests[crate.Name]
	return ok
}

func (w *fakeWorkspace) ReadManifest(crate domain.Crate) (domain.Manifest, error) {
	content, ok := w.manifests[crate.Name]
	if !ok {
		return domain.Manifest{}, fmt.Errorf("manifest for %s not found", crate.Name)
	}
	return domain.NewManifest(content), nil
}

func (w *fakeWorkspace) WriteManifest(crate domain.Crate, m domain.Manifest) error {
	w.manifests[crate.Name] = m.Content()
	return nil
}

func (w *fakeWorkspace) EnsureChangelog(crate domain.Crate) (string, error) {
	if content, ok := w.changelogs[crate.Name]; ok {
		return content, nil
	}
	content := domain.ChangelogTitle + "\n\n"
	w.changelogs[crate.Name] = content
	return content, nil
}

func (w *fakeWorkspace) WriteChangelog(crate domain.Crate, content string) error {
	w.changelogs[crate.Name] = content
	return nil
}

// fakeForge is an in-memory ports.Forge
type fakeForge struct {
	labels        []string
	labelsErr     error
	files         map[string]string // "owner/name/path" -> content
	filesErr      error
	openPRs       []domain.PullRequest
	openPRsErr    error
	defaultBranch string
	createErr     error

	created []createdPR
}

type createdPR struct {
	repo  string
	title string
	head  string
	base  string
}

func (f *fakeForge) PullRequestLabels(ctx context.Context, owner, repo string, number int) ([]string, error) {
	return f.labels, f.labelsErr
}

func (f *fakeForge) FileAtHead(ctx context.Context, owner, repo, path string) (string, bool, error) {
	if f.filesErr != nil {
		return "", false, f.filesErr
	}
	content, ok := f.files[owner+"/"+repo+"/"+path]
	return content, ok, nil
}

func (f *fakeForge) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	if f.defaultBranch == "" {
		return "", fmt.Errorf("no default branch configured")
	}
	return f.defaultBranch, nil
}

func (f *fakeForge) OpenPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error) {
	return f.openPRs, f.openPRsErr
}

func (f *fakeForge) CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string) (domain.PullRequest, error) {
	if f.createErr != nil {
		return domain.PullRequest{}, f.createErr
	}
	f.created = append(f.created, createdPR{repo: owner + "/" + repo, title: title, head: head, base: base})
	number := 100 + len(f.created)
	return domain.PullRequest{
		Number: number,
		Title:  title,
		URL:    fmt.Sprintf("https://github.com/%s/%s/pull/%d", owner, repo, number),
	}, nil
}

// fakeDownstream is an in-memory ports.DownstreamGit
type fakeDownstream struct {
	cloneErr  error
	branchErr error
	commitErr error
	pushErr   error

	cloned   []string
	branches []string
	commits  []string
	pushed   []string
	// contents of files at commit time, keyed by file name
	committed map[string]string
}

func (d *fakeDownstream) Clone(ctx context.Context, ownerRepo, dir string) error {
	if d.cloneErr != nil {
		return d.cloneErr
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	d.cloned = append(d.cloned, ownerRepo)
	return nil
}

func (d *fakeDownstream) CheckoutBranch(ctx context.Context, dir, branch string) error {
	if d.branchErr != nil {
		return d.branchErr
	}
	d.branches = append(d.branches, branch)
	return nil
}

func (d *fakeDownstream) CommitFile(ctx context.Context, dir, file, message string) error {
	if d.commitErr != nil {
		return d.commitErr
	}
	d.commits = append(d.commits, message)
	if raw, err := os.ReadFile(filepath.Join(dir, file)); err == nil {
		if d.committed == nil {
			d.committed = make(map[string]string)
		}
		d.committed[file] = string(raw)
	}
	return nil
}

func (d *fakeDownstream) PushBranch(ctx context.Context, dir, branch string) error {
	if d.pushErr != nil {
		return d.pushErr
	}
	d.pushed = append(d.pushed, branch)
	return nil
}

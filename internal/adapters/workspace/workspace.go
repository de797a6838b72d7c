// Package workspace implements ports.Workspace on the local filesystem.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tagger/internal/domain"
)

// Workspace reads and writes crate release files under the checkout root
type Workspace struct {
	root string
}

// New creates a Workspace rooted at the monorepo checkout
func New(root string) *Workspace {
	return &Workspace{root: root}
}

// ManifestExists reports whether the crate has a manifest
func (w *Workspace) ManifestExists(crate domain.Crate) bool {
	_, err := os.Stat(w.path(crate.ManifestPath))
	return err == nil
}

// ReadManifest loads the crate's manifest
func (w *Workspace) ReadManifest(crate domain.Crate) (domain.Manifest, error) {
	raw, err := os.ReadFile(w.path(crate.ManifestPath))
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("read manifest for %s: %w", crate.Name, err)
	}
	return domain.NewManifest(string(raw)), nil
}

// WriteManifest persists the manifest content
func (w *Workspace) WriteManifest(crate domain.Crate, m domain.Manifest) error {
	if err := os.WriteFile(w.path(crate.ManifestPath), []byte(m.Content()), 0o644); err != nil {
		return fmt.Errorf("write manifest for %s: %w", crate.Name, err)
	}
	return nil
}

// EnsureChangelog returns the changelog content, creating the file with
// its title line first when missing.
func (w *Workspace) EnsureChangelog(crate domain.Crate) (string, error) {
	path := w.path(crate.ChangelogPath)
	raw, err := os.ReadFile(path)
	if err == nil {
		return string(raw), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read changelog for %s: %w", crate.Name, err)
	}
	content := domain.ChangelogTitle + "\n\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("create changelog for %s: %w", crate.Name, err)
	}
	return content, nil
}

// WriteChangelog persists the changelog content
func (w *Workspace) WriteChangelog(crate domain.Crate, content string) error {
	if err := os.WriteFile(w.path(crate.ChangelogPath), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write changelog for %s: %w", crate.Name, err)
	}
	return nil
}

// path maps a repo-relative slash path onto the host filesystem
func (w *Workspace) path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

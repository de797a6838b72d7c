package ports

import "tagger/internal/domain"

// Workspace reads and writes a crate's release files inside the monorepo
// checkout.
type Workspace interface {
	// ManifestExists reports whether the crate has a manifest at all.
	ManifestExists(crate domain.Crate) bool
	// ReadManifest loads the crate's manifest.
	ReadManifest(crate domain.Crate) (domain.Manifest, error)
	// WriteManifest persists the manifest content.
	WriteManifest(crate domain.Crate, m domain.Manifest) error
	// EnsureChangelog returns the changelog content, creating the file
	// with its title line first when it does not exist.
	EnsureChangelog(crate domain.Crate) (string, error)
	// WriteChangelog persists the changelog content.
	WriteChangelog(crate domain.Crate, content string) error
}

package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagger/internal/domain"
)

const manifestContent = `[package]
name = "foo"
version = "1.0.0"
repository = "https://github.com/example/foo"
`

func testCrate(t *testing.T) (*Workspace, domain.Crate) {
	t.Helper()
	root := t.TempDir()
	crate := domain.NewCrate("apps", "foo", "Cargo.toml", "CHANGELOG.md")
	if err := os.MkdirAll(filepath.Join(root, "apps", "foo"), 0o755); err != nil {
		t.Fatal(err)
	}
	return New(root), crate
}

func TestManifestExists(t *testing.T) {
	ws, crate := testCrate(t)

	if ws.ManifestExists(crate) {
		t.Error("manifest should not exist yet")
	}

	path := filepath.Join(ws.root, "apps", "foo", "Cargo.toml")
	if err := os.WriteFile(path, []byte(manifestContent), 0o644); err != nil {
		t.Fatal(err)
	}
	if !ws.ManifestExists(crate) {
		t.Error("manifest should exist")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	ws, crate := testCrate(t)
	path := filepath.Join(ws.root, "apps", "foo", "Cargo.toml")
	if err := os.WriteFile(path, []byte(manifestContent), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := ws.ReadManifest(crate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := m.Version()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.String() != "1.0.0" {
		t.Errorf("version = %s, want 1.0.0", v)
	}

	bumped, err := domain.ParseVersion("1.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.WriteManifest(crate, m.WithVersion(bumped)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `version = "1.1.0"`) {
		t.Errorf("manifest not rewritten:\n%s", raw)
	}
	if !strings.Contains(string(raw), `repository = "https://github.com/example/foo"`) {
		t.Errorf("unrelated manifest content lost:\n%s", raw)
	}
}

func TestReadManifestMissing(t *testing.T) {
	ws, crate := testCrate(t)
	if _, err := ws.ReadManifest(crate); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestEnsureChangelogCreates(t *testing.T) {
	ws, crate := testCrate(t)

	content, err := ws.EnsureChangelog(crate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "# Changelog\n\n" {
		t.Errorf("content = %q", content)
	}

	path := filepath.Join(ws.root, "apps", "foo", "CHANGELOG.md")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("changelog file not created: %v", err)
	}
	if string(raw) != content {
		t.Errorf("file = %q, returned = %q", raw, content)
	}
}

func TestEnsureChangelogKeepsExisting(t *testing.T) {
	ws, crate := testCrate(t)
	existing := "# Changelog\n\n## 1.0.0 (2026-01-01)\n\n* initial release\n"
	path := filepath.Join(ws.root, "apps", "foo", "CHANGELOG.md")
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	content, err := ws.EnsureChangelog(crate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != existing {
		t.Errorf("content = %q, want existing file untouched", content)
	}
}

func TestWriteChangelog(t *testing.T) {
	ws, crate := testCrate(t)
	content := "# Changelog\n\n## 1.1.0 (2026-08-28)\n\n* feat: something\n"
	if err := ws.WriteChangelog(crate, content); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(ws.root, "apps", "foo", "CHANGELOG.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != content {
		t.Errorf("file = %q", raw)
	}
}

package domain

import (
	"fmt"
	"regexp"
)

// Manifest gives targeted access to the two fields the release flow reads
// and writes. Everything outside the matched version field passes through
// byte-for-byte.
type Manifest struct {
	content string
}

var (
	manifestVersionRegex    = regexp.MustCompile(`(?m)^(version\s*=\s*")(\d+\.\d+\.\d+)(")`)
	manifestRepositoryRegex = regexp.MustCompile(`(?m)^repository\s*=\s*"([^"]+)"`)
	githubRepoRegex         = regexp.MustCompile(`https://github\.com/([^/\s]+)/([^/\s"]+)`)
)

// NewManifest wraps raw manifest text
func NewManifest(content string) Manifest {
	return Manifest{content: content}
}

func (m Manifest) Content() string {
	return m.content
}

// Version extracts the current version from the manifest's version field
func (m Manifest) Version() (Version, error) {
	match := manifestVersionRegex.FindStringSubmatch(m.content)
	if match == nil {
		return Version{}, fmt.Errorf("no version field in manifest")
	}
	return ParseVersion(match[2])
}

// WithVersion returns a copy of the manifest with only the version field
// rewritten
func (m Manifest) WithVersion(v Version) Manifest {
	updated := manifestVersionRegex.ReplaceAllString(m.content, "${1}"+v.String()+"${3}")
	return Manifest{content: updated}
}

// RepositoryURL returns the manifest's repository field, or "" when absent
func (m Manifest) RepositoryURL() string {
	match := manifestRepositoryRegex.FindStringSubmatch(m.content)
	if match == nil {
		return ""
	}
	return match[1]
}

// GitHubRepo extracts "owner" and "name" from a github.com repository URL.
// The boolean is false for anything that is not a recognizable hosted URL.
func GitHubRepo(url string) (owner, name string, ok bool) {
	match := githubRepoRegex.FindStringSubmatch(url)
	if match == nil {
		return "", "", false
	}
	name = match[2]
	// Tolerate ".git" clone URLs in the repository field.
	if len(name) > 4 && name[len(name)-4:] == ".git" {
		name = name[:len(name)-4]
	}
	return match[1], name, true
}

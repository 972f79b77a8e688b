// Package urlutils derives local names from repository URLs and scrubs
// credentials from them before they reach the log.
//
// Accepted forms are anything git clone accepts:
//   - https://github.com/owner/repo
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@host/owner/repo.git
//   - file:///srv/git/repo.git or a plain local path
package urlutils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrEmptyURL indicates that no repository URL was given
	ErrEmptyURL = errors.New("empty repository URL")

	// ErrNoRepoName indicates that no directory name can be derived from the URL
	ErrNoRepoName = errors.New("cannot derive repository name from URL")
)

// RepoName returns the directory name git clone creates for rawURL: the
// final path segment with trailing slashes and a ".git" suffix removed.
func RepoName(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", ErrEmptyURL
	}

	// Drop query and fragment so they cannot leak into the name.
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}

	s = strings.TrimRight(s, "/\\")
	s = strings.TrimSuffix(s, "/.git")
	s = strings.TrimRight(s, "/\\")

	// scheme://host with no path has nothing to name the clone after
	if i := strings.Index(s, "://"); i >= 0 && !strings.ContainsAny(s[i+3:], "/\\") {
		return "", fmt.Errorf("%w: %s", ErrNoRepoName, Redact(rawURL))
	}

	name := s
	if i := strings.LastIndexAny(name, "/\\:"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".git")

	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %s", ErrNoRepoName, Redact(rawURL))
	}

	return name, nil
}

// Redact removes any user info from rawURL. Inputs that do not parse as a
// URL (scp-like addresses, local paths) are returned unchanged.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	u.User = nil
	return u.String()
}

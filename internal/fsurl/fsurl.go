// Package fsurl converts between absolute filesystem paths and file:// URLs.
//
// The build pipeline hands integrations their output location as a URL rather
// than a bare path, so the conversion back must be total: a descriptor that
// cannot be resolved yields ("", false), never an error or a panic.
package fsurl

import (
	"net/url"
	"path/filepath"
)

// ToURL converts an absolute filesystem path to a file:// URL.
func ToURL(path string) *url.URL {
	return &url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
}

// DirFromURL resolves a location descriptor to a filesystem path.
// It returns ok=false for nil URLs, non-file schemes, and empty paths.
func DirFromURL(u *url.URL) (string, bool) {
	if u == nil {
		return "", false
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", false
	}
	if u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

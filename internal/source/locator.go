package source

import (
	"net/url"
	"os"
	"path/filepath"
)

// ResolveTemplateURL normalizes a template reference. References without a
// scheme, or with the file scheme, that name an existing path are returned
// as an absolute path so later drift checks work from any directory. Every
// other reference, including scp-style "git@host:org/repo" shorthands, is
// returned unchanged; clone failures surface the real error downstream.
func ResolveTemplateURL(ref string) string {
	path, ok := localPath(ref)
	if !ok {
		return ref
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ref
	}
	if _, err := os.Stat(abs); err != nil {
		return ref
	}
	return abs
}

// localPath reports the filesystem path a reference would denote if it is a
// local reference at all.
func localPath(ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		// "git@github.com:org/repo.git" fails to parse; treat it as a path and
		// let the existence check reject it.
		return ref, true
	}
	switch {
	case u.Scheme == "":
		return ref, true
	case u.Scheme == "file":
		return filepath.Join(u.Host, filepath.FromSlash(u.Path)), true
	case len(u.Scheme) == 1:
		// Windows drive letter, e.g. C:\templates\python.
		return ref, true
	default:
		return "", false
	}
}

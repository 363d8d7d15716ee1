package git

import (
	"path/filepath"
	"strings"

	aidererrors "aider.dev/aider/internal/errors"
)

// NormalizePath canonicalizes a path relative to the repository root, using
// forward slashes. Results are memoized per input string for the lifetime of
// the handle. A path outside the root fails with a PathResolutionError.
func (r *Repo) NormalizePath(path string) (string, error) {
	if res, ok := r.normalized[path]; ok {
		return res, nil
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.Root, path)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(r.Root, abs)
	if err != nil {
		return "", aidererrors.NewPathResolutionError(path, r.Root)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", aidererrors.NewPathResolutionError(path, r.Root)
	}

	rel = filepath.ToSlash(rel)
	r.normalized[path] = rel
	return rel, nil
}

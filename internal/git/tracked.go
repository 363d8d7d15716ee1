package git

import (
	"errors"
	"io"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// maxTreeSkips bounds how many unreadable tree entries a single traversal
// tolerates before giving up, so a wedged iterator cannot loop forever.
const maxTreeSkips = 1000

// TrackedFiles returns the normalized relative paths of all files reachable
// from the head commit's tree plus all staged index entries, excluding
// ignored paths. The tree listing is cached per head-commit identity.
//
// Low-level failures are reported and degrade to an empty result; unreadable
// individual tree entries are skipped and counted in TreeSkipCount.
func (r *Repo) TrackedFiles() []string {
	files := map[string]bool{}

	if commit := r.HeadCommit(); commit != nil {
		treePaths, ok := r.treeFilesFor(commit.Hash)
		if !ok {
			return []string{}
		}
		for p := range treePaths {
			files[p] = true
		}
	}

	if idx, err := r.repo.Storer.Index(); err != nil {
		r.splog.Error("Unable to read staged files: %v", err)
	} else {
		for _, entry := range idx.Entries {
			norm, err := r.NormalizePath(entry.Name)
			if err != nil {
				continue
			}
			files[norm] = true
		}
	}

	var res []string
	for f := range files {
		if !r.IgnoredFile(f) {
			res = append(res, f)
		}
	}
	sort.Strings(res)
	return res
}

// treeFilesFor lists the blob paths of a commit's tree, cached by commit SHA.
// Returns ok=false when the tree cannot be read at all.
func (r *Repo) treeFilesFor(hash plumbing.Hash) (map[string]bool, bool) {
	key := hash.String()
	if cached, ok := r.treeFiles.Get(key); ok {
		return cached.(map[string]bool), true
	}

	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		r.splog.Error("Unable to list files in git repo: %v", err)
		r.splog.Info("Is your git repo corrupted?")
		return nil, false
	}

	tree, err := commit.Tree()
	if err != nil {
		r.splog.Error("Unable to list files in git repo: %v", err)
		r.splog.Info("Is your git repo corrupted?")
		return nil, false
	}

	files := map[string]bool{}
	skipped := 0
	iter := tree.Files()
	for {
		f, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Skip unreadable entries and keep walking the rest of the tree
			skipped++
			if skipped >= maxTreeSkips {
				r.splog.Error("Unable to list files in git repo: %v", err)
				r.splog.Info("Is your git repo corrupted?")
				return nil, false
			}
			continue
		}
		norm, err := r.NormalizePath(f.Name)
		if err != nil {
			continue
		}
		files[norm] = true
	}
	iter.Close()

	r.TreeSkipCount = skipped
	if skipped > 0 {
		r.splog.Warn("Skipped %d unreadable git tree entries.", skipped)
	}

	r.treeFiles.SetDefault(key, files)
	return files, true
}

// PathInRepo reports whether the path is currently tracked
func (r *Repo) PathInRepo(path string) bool {
	if path == "" {
		return false
	}
	norm, err := r.NormalizePath(path)
	if err != nil {
		return false
	}
	for _, f := range r.TrackedFiles() {
		if f == norm {
			return true
		}
	}
	return false
}

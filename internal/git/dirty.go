package git

import (
	"context"
	"sort"
)

// DirtyFiles returns all files with pending changes, staged or in the working
// tree, deduplicated. Failures are reported and degrade to an empty result.
func (r *Repo) DirtyFiles(ctx context.Context) []string {
	dirty := map[string]bool{}

	staged, err := r.runner.RunLines(ctx, "diff", "--name-only", "--cached")
	if err != nil {
		r.splog.Error("Unable to list staged files: %v", err)
	}
	for _, f := range staged {
		dirty[f] = true
	}

	unstaged, err := r.runner.RunLines(ctx, "diff", "--name-only")
	if err != nil {
		r.splog.Error("Unable to list unstaged files: %v", err)
	}
	for _, f := range unstaged {
		dirty[f] = true
	}

	res := make([]string, 0, len(dirty))
	for f := range dirty {
		res = append(res, f)
	}
	sort.Strings(res)
	return res
}

// IsDirty reports whether the repository (or a single path, when given) has
// pending staged or working-tree changes. An untracked path is dirty by
// definition.
func (r *Repo) IsDirty(ctx context.Context, path string) bool {
	if path != "" && !r.PathInRepo(path) {
		return true
	}

	stagedArgs := []string{"diff", "--name-only", "--cached"}
	unstagedArgs := []string{"diff", "--name-only"}
	if path != "" {
		stagedArgs = append(stagedArgs, "--", path)
		unstagedArgs = append(unstagedArgs, "--", path)
	}

	staged, err := r.runner.Run(ctx, stagedArgs...)
	if err == nil && staged != "" {
		return true
	}
	unstaged, err := r.runner.Run(ctx, unstagedArgs...)
	return err == nil && unstaged != ""
}

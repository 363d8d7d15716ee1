package git

import (
	"context"
	"fmt"
	"strings"
)

// Diffs returns unified diff text for the given paths (or the whole repo when
// none are given). When the current branch has at least one commit the diff
// is taken against HEAD; otherwise the staged and unstaged diffs are
// concatenated. Requested paths that are not yet tracked produce an
// "Added <path>" marker line. Diff text is never cached.
//
// Failures are reported and degrade to an empty result.
func (r *Repo) Diffs(ctx context.Context, paths ...string) string {
	var out strings.Builder
	for _, p := range paths {
		if !r.PathInRepo(p) {
			fmt.Fprintf(&out, "Added %s\n", p)
		}
	}

	if r.currentBranchHasCommits() {
		args := append([]string{"diff", "HEAD", "--"}, paths...)
		diff, err := r.runner.RunRaw(ctx, args...)
		if err != nil {
			r.splog.Error("Unable to diff: %v", err)
			return ""
		}
		out.WriteString(diff)
		return out.String()
	}

	// No commits yet: HEAD is meaningless, show index and working tree diffs
	wdArgs := append([]string{"diff", "--"}, paths...)
	indexArgs := append([]string{"diff", "--cached", "--"}, paths...)

	indexDiff, err := r.runner.RunRaw(ctx, indexArgs...)
	if err != nil {
		r.splog.Error("Unable to diff: %v", err)
		return ""
	}
	wdDiff, err := r.runner.RunRaw(ctx, wdArgs...)
	if err != nil {
		r.splog.Error("Unable to diff: %v", err)
		return ""
	}

	out.WriteString(indexDiff)
	out.WriteString(wdDiff)
	return out.String()
}

// currentBranchHasCommits reports whether HEAD is on a branch that has at
// least one commit. Detached state counts as no current branch.
func (r *Repo) currentBranchHasCommits() bool {
	head, err := r.repo.Head()
	if err != nil {
		return false
	}
	if !head.Name().IsBranch() {
		return false
	}
	_, err = r.repo.CommitObject(head.Hash())
	return err == nil
}

// DiffCommits returns the diff between two revisions, colored when pretty is
// true.
func (r *Repo) DiffCommits(ctx context.Context, pretty bool, fromCommit, toCommit string) (string, error) {
	args := []string{"diff"}
	if pretty {
		args = append(args, "--color")
	} else {
		args = append(args, "--color=never")
	}
	args = append(args, fromCommit, toCommit)

	return r.runner.RunRaw(ctx, args...)
}

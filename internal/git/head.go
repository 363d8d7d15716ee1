package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	aidererrors "aider.dev/aider/internal/errors"
)

// detachedMarker suffixes the short hash reported for a detached HEAD
const detachedMarker = " (detached HEAD)"

// HeadCommit returns the commit at HEAD, or nil if the repository has no
// commits yet or the head cannot be read.
func (r *Repo) HeadCommit() *object.Commit {
	head, err := r.repo.Head()
	if err != nil {
		return nil
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil
	}
	return commit
}

// HeadCommitSHA returns the SHA of the head commit, shortened to seven
// characters when short is true. Returns "" when there is no head commit.
func (r *Repo) HeadCommitSHA(short bool) string {
	commit := r.HeadCommit()
	if commit == nil {
		return ""
	}
	sha := commit.Hash.String()
	if short {
		return sha[:7]
	}
	return sha
}

// HeadCommitMessage returns the head commit's message, or the given default
// when there is no head commit.
func (r *Repo) HeadCommitMessage(def string) string {
	commit := r.HeadCommit()
	if commit == nil {
		return def
	}
	return commit.Message
}

// CurrentBranch returns the active branch name. In a detached state it
// returns the short commit hash with a detached marker. When neither can be
// determined the error wraps ErrBranchResolution.
func (r *Repo) CurrentBranch() (string, error) {
	// Read HEAD without resolving so an unborn branch still reports its name
	ref, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("%w: %v", aidererrors.ErrBranchResolution, err)
	}

	switch ref.Type() {
	case plumbing.SymbolicReference:
		target := ref.Target()
		if !target.IsBranch() {
			return "", fmt.Errorf("%w: HEAD points at %s", aidererrors.ErrBranchResolution, target)
		}
		return target.Short(), nil
	case plumbing.HashReference:
		return ref.Hash().String()[:7] + detachedMarker, nil
	default:
		return "", fmt.Errorf("%w: unexpected HEAD reference", aidererrors.ErrBranchResolution)
	}
}

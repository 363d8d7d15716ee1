package git

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	aidererrors "aider.dev/aider/internal/errors"
)

// aiderBranchPrefix namespaces branches created by the workflow manager
const aiderBranchPrefix = "aider/"

// maxBranchNameLength keeps generated branch names well under git's ref
// limits
const maxBranchNameLength = 100

var suffixSanitizeRegex = regexp.MustCompile(`[^\w-]+`)

// resolveWorkflowBranches sets PrimaryBranch and DevelopBranch from the
// existing local branches, by convention. Run once at initialization; it
// never raises, falling back to deterministic defaults on any failure.
func (r *Repo) resolveWorkflowBranches() {
	branches, err := r.BranchNames()
	if err != nil {
		r.workflowBranchFallback(err)
		return
	}

	has := func(name string) bool {
		for _, b := range branches {
			if b == name {
				return true
			}
		}
		return false
	}

	switch {
	case r.cfg.PrimaryBranchName != "" && has(r.cfg.PrimaryBranchName):
		r.PrimaryBranch = r.cfg.PrimaryBranchName
	case has("main"):
		r.PrimaryBranch = "main"
	case has("master"):
		r.PrimaryBranch = "master"
	case has("develop"):
		r.PrimaryBranch = "develop"
		r.splog.Warn("No 'main' or 'master' branch found. Using 'develop' as primary.")
	default:
		current, err := r.CurrentBranch()
		if err != nil {
			r.workflowBranchFallback(err)
			return
		}
		r.PrimaryBranch = current
		r.splog.Warn("No 'main', 'master', or 'develop' branch found. Using current branch '%s' as primary.", current)
	}

	if has("develop") {
		r.DevelopBranch = "develop"
	} else {
		r.DevelopBranch = r.PrimaryBranch
		if r.PrimaryBranch != "develop" {
			r.splog.Warn("No 'develop' branch found. Using primary branch '%s' as the development base.", r.PrimaryBranch)
		}
	}

	r.splog.Info("Identified Primary Branch: %s", r.PrimaryBranch)
	r.splog.Info("Identified Develop Branch: %s", r.DevelopBranch)
}

// workflowBranchFallback applies deterministic defaults when resolution
// fails. The error is surfaced but never raised.
func (r *Repo) workflowBranchFallback(err error) {
	r.splog.Error("Error determining workflow branches: %v. Falling back to defaults.", err)

	r.PrimaryBranch = r.cfg.PrimaryBranchName
	if r.PrimaryBranch == "" {
		r.PrimaryBranch = "main"
	}

	r.DevelopBranch = r.PrimaryBranch
	if branches, berr := r.BranchNames(); berr == nil {
		for _, b := range branches {
			if b == "develop" {
				r.DevelopBranch = "develop"
				break
			}
		}
	}
}

// BranchNames returns all local branch names
func (r *Repo) BranchNames() ([]string, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsBranch() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	return names, nil
}

// Checkout switches to the named branch. Fails with ErrDirtyWorkingTree when
// changes are pending, and wraps underlying command failures as a
// BranchCheckoutError.
func (r *Repo) Checkout(ctx context.Context, branchName string) error {
	if r.IsDirty(ctx, "") {
		return fmt.Errorf("%w: commit or stash changes before switching branches", aidererrors.ErrDirtyWorkingTree)
	}

	if _, err := r.runner.Run(ctx, "checkout", branchName); err != nil {
		return aidererrors.NewBranchCheckoutError(branchName, err)
	}

	r.splog.Info("Switched to branch '%s'.", branchName)
	return nil
}

// CheckoutPrimary switches to the primary branch
func (r *Repo) CheckoutPrimary(ctx context.Context) error {
	return r.Checkout(ctx, r.PrimaryBranch)
}

// CheckoutDevelop switches to the develop branch
func (r *Repo) CheckoutDevelop(ctx context.Context) error {
	if r.DevelopBranch == "" {
		return aidererrors.ErrNoDevelopBranch
	}
	return r.Checkout(ctx, r.DevelopBranch)
}

// CreateFeatureBranch creates and checks out a new feature branch from the
// develop branch, returning the final branch name. The name embeds a UTC
// timestamp and the short hash of the develop head, plus an optional
// sanitized suffix. If the branch already exists it is checked out instead.
func (r *Repo) CreateFeatureBranch(ctx context.Context, suffix string) (string, error) {
	if r.IsDirty(ctx, "") {
		return "", fmt.Errorf("%w: commit or stash changes before creating a new branch", aidererrors.ErrDirtyWorkingTree)
	}

	current, err := r.CurrentBranch()
	if err != nil {
		return "", err
	}
	if current != r.DevelopBranch {
		r.splog.Info("Switching to develop branch '%s' to create feature branch...", r.DevelopBranch)
		if err := r.CheckoutDevelop(ctx); err != nil {
			return "", fmt.Errorf("could not switch to develop branch '%s' to create feature branch: %w", r.DevelopBranch, err)
		}
	}

	branchName := r.featureBranchName(suffix)

	branches, err := r.BranchNames()
	if err == nil {
		for _, b := range branches {
			if b == branchName {
				r.splog.Warn("Branch '%s' already exists. Checking it out.", branchName)
				if err := r.Checkout(ctx, branchName); err != nil {
					return "", err
				}
				return branchName, nil
			}
		}
	}

	if _, err := r.runner.Run(ctx, "checkout", "-b", branchName); err != nil {
		return "", aidererrors.NewBranchCreationError(branchName, err)
	}

	r.splog.Info("Created and switched to new branch '%s'.", branchName)
	return branchName, nil
}

// featureBranchName builds the timestamped branch name
func (r *Repo) featureBranchName(suffix string) string {
	timestamp := time.Now().UTC().Format("20060102-150405")

	shortHash := "nohash"
	if hash, err := r.repo.ResolveRevision(plumbing.Revision(r.DevelopBranch)); err == nil {
		shortHash = hash.String()[:6]
	}

	branchName := fmt.Sprintf("%sfeature-%s-%s", aiderBranchPrefix, timestamp, shortHash)
	if suffix != "" {
		safe := suffixSanitizeRegex.ReplaceAllString(suffix, "-")
		safe = strings.ToLower(strings.Trim(safe, "-"))
		if safe != "" {
			branchName = branchName + "-" + safe
		}
	}

	if len(branchName) > maxBranchNameLength {
		branchName = branchName[:maxBranchNameLength]
	}
	return branchName
}

// ListAiderBranches returns the sorted union of branches under the aider
// namespace and the primary branch.
func (r *Repo) ListAiderBranches() ([]string, error) {
	branches, err := r.BranchNames()
	if err != nil {
		return nil, fmt.Errorf("could not list branches: %w", err)
	}

	seen := map[string]bool{}
	var res []string
	for _, b := range branches {
		if strings.HasPrefix(b, aiderBranchPrefix) && !seen[b] {
			seen[b] = true
			res = append(res, b)
		}
	}
	if r.PrimaryBranch != "" && !seen[r.PrimaryBranch] {
		res = append(res, r.PrimaryBranch)
	}

	sort.Strings(res)
	return res, nil
}

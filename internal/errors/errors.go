// Package errors provides sentinel errors and custom error types for the aider
// git layer. Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrRepositoryNotFound indicates that no git repository could be resolved
	// from the given paths, or that the paths span multiple repositories
	ErrRepositoryNotFound = errors.New("git repository not found")

	// ErrPathOutsideRepo indicates that a path cannot be expressed relative to
	// the repository root
	ErrPathOutsideRepo = errors.New("path outside repository")

	// ErrBranchResolution indicates that the current branch cannot be determined
	ErrBranchResolution = errors.New("cannot determine current branch")

	// ErrDirtyWorkingTree indicates an operation that requires a clean working
	// tree was invoked while changes are pending
	ErrDirtyWorkingTree = errors.New("working tree is dirty")

	// ErrNoDevelopBranch indicates a develop-branch operation was requested but
	// no develop branch is set
	ErrNoDevelopBranch = errors.New("develop branch is not set")
)

// RepositoryNotFoundError represents a failure to resolve exactly one
// repository root from a set of candidate paths
type RepositoryNotFoundError struct {
	Paths []string
	Roots []string
}

func (e *RepositoryNotFoundError) Error() string {
	if len(e.Roots) > 1 {
		return fmt.Sprintf("files are in different git repos: %v", e.Roots)
	}
	return fmt.Sprintf("no git repository found for %v", e.Paths)
}

// Is returns true if the target error is ErrRepositoryNotFound
func (e *RepositoryNotFoundError) Is(target error) bool {
	return target == ErrRepositoryNotFound
}

// NewRepositoryNotFoundError creates a new RepositoryNotFoundError
func NewRepositoryNotFoundError(paths, roots []string) *RepositoryNotFoundError {
	return &RepositoryNotFoundError{Paths: paths, Roots: roots}
}

// PathResolutionError represents a path that cannot be made relative to the
// repository root
type PathResolutionError struct {
	Path string
	Root string
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("path %s is not inside repository %s", e.Path, e.Root)
}

// Is returns true if the target error is ErrPathOutsideRepo
func (e *PathResolutionError) Is(target error) bool {
	return target == ErrPathOutsideRepo
}

// NewPathResolutionError creates a new PathResolutionError
func NewPathResolutionError(path, root string) *PathResolutionError {
	return &PathResolutionError{Path: path, Root: root}
}

// BranchCheckoutError represents a failed checkout of a branch
type BranchCheckoutError struct {
	BranchName string
	Err        error
}

func (e *BranchCheckoutError) Error() string {
	return fmt.Sprintf("could not checkout branch %s: %v", e.BranchName, e.Err)
}

func (e *BranchCheckoutError) Unwrap() error {
	return e.Err
}

// NewBranchCheckoutError creates a new BranchCheckoutError
func NewBranchCheckoutError(branchName string, err error) *BranchCheckoutError {
	return &BranchCheckoutError{BranchName: branchName, Err: err}
}

// BranchCreationError represents a failed branch creation
type BranchCreationError struct {
	BranchName string
	Err        error
}

func (e *BranchCreationError) Error() string {
	return fmt.Sprintf("could not create branch %s: %v", e.BranchName, e.Err)
}

func (e *BranchCreationError) Unwrap() error {
	return e.Err
}

// NewBranchCreationError creates a new BranchCreationError
func NewBranchCreationError(branchName string, err error) *BranchCreationError {
	return &BranchCreationError{BranchName: branchName, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

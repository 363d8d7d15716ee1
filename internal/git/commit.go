package git

import (
	"context"

	"aider.dev/aider/internal/ai"
)

// attributionPrefix marks commit messages written on behalf of the agent
const attributionPrefix = "aider: "

// placeholderMessage is committed when no message could be obtained at all
const placeholderMessage = "(no commit message provided)"

// CommitOptions configures a commit operation
type CommitOptions struct {
	// Paths restricts the commit to explicit files; empty means all modified
	// tracked files
	Paths []string

	// Context is free text given to the commit-message generator
	Context string

	// Message, when set, is used verbatim instead of generating one
	Message string

	// AiderEdits marks the commit as agent-originated for attribution
	AiderEdits bool
}

// CommitResult is the outcome of a successful commit
type CommitResult struct {
	Hash    string
	Message string
}

// Commit stages the requested changes and commits them with a synthesized or
// explicit message, applying attribution. Returns nil when there is nothing
// to commit or the commit could not be performed; VCS failures are reported
// to the notifier, never returned.
func (r *Repo) Commit(ctx context.Context, opts CommitOptions) *CommitResult {
	if len(opts.Paths) == 0 && !r.IsDirty(ctx, "") {
		return nil
	}

	diffs := r.Diffs(ctx, opts.Paths...)
	if diffs == "" {
		return nil
	}

	message := opts.Message
	if message == "" {
		message = r.generateCommitMessage(ctx, diffs, opts.Context)
		if message == "" && len(r.generators) > 0 {
			// Synthesis was attempted and produced nothing
			return nil
		}
	}

	// Author attribution wins when both could apply; only one prefix is ever
	// added. The placeholder is never prefixed.
	if message != "" {
		if opts.AiderEdits && r.cfg.AttributeCommitMessageAuthor {
			message = attributionPrefix + message
		} else if r.cfg.AttributeCommitMessageCommitter {
			message = attributionPrefix + message
		}
	}
	if message == "" {
		message = placeholderMessage
	}

	args := []string{"commit", "-m", message}
	if !r.cfg.CommitVerify {
		args = append(args, "--no-verify")
	}

	if len(opts.Paths) > 0 {
		absPaths := make([]string, 0, len(opts.Paths))
		for _, p := range opts.Paths {
			norm, err := r.NormalizePath(p)
			if err != nil {
				r.splog.Error("Unable to add %s: %v", p, err)
				continue
			}
			abs := r.AbsRootPath(norm)
			if _, err := r.runner.Run(ctx, "add", "--", abs); err != nil {
				r.splog.Error("Unable to add %s: %v", p, err)
			}
			absPaths = append(absPaths, abs)
		}
		args = append(args, "--")
		args = append(args, absPaths...)
	} else {
		args = append(args, "-a")
	}

	env := r.attributionEnv(ctx, opts.AiderEdits)

	if _, err := r.runner.RunWithEnv(ctx, env, args...); err != nil {
		r.splog.Error("Unable to commit: %v", err)
		return nil
	}

	hash := r.HeadCommitSHA(true)
	r.splog.Bold("Commit %s %s", hash, message)
	return &CommitResult{Hash: hash, Message: message}
}

// attributionEnv builds the identity overrides for the single commit
// invocation. Passing them per-invocation keeps the process environment
// untouched on every exit path.
func (r *Repo) attributionEnv(ctx context.Context, aiderEdits bool) []string {
	overrideCommitter := r.cfg.AttributeCommitter
	overrideAuthor := aiderEdits && r.cfg.AttributeAuthor
	if !overrideCommitter && !overrideAuthor {
		return nil
	}

	userName, err := r.runner.Run(ctx, "config", "--get", "user.name")
	if err != nil {
		r.splog.Error("Unable to read git user name: %v", err)
		return nil
	}
	attributed := userName + " (aider)"

	var env []string
	if overrideCommitter {
		env = append(env, "GIT_COMMITTER_NAME="+attributed)
	}
	if overrideAuthor {
		env = append(env, "GIT_AUTHOR_NAME="+attributed)
	}
	return env
}

// generateCommitMessage synthesizes a commit message from the diff text via
// the configured generator backends. Returns "" on failure after reporting.
func (r *Repo) generateCommitMessage(ctx context.Context, diffs, chatContext string) string {
	if len(r.generators) == 0 {
		return ""
	}

	messages := ai.BuildCommitMessages(r.cfg.CommitPrompt, chatContext, diffs)

	message, err := ai.GenerateCommitMessage(ctx, r.generators, messages, func(name string, err error) {
		r.splog.Debug("commit message backend %s failed: %v", name, err)
	})
	if err != nil {
		r.splog.Error("Failed to generate commit message!")
		return ""
	}
	return message
}

package git

import (
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/patrickmn/go-cache"

	"aider.dev/aider/internal/ai"
	"aider.dev/aider/internal/config"
	aidererrors "aider.dev/aider/internal/errors"
	"aider.dev/aider/internal/output"
)

// Repo is the repository handle. It wraps a go-git repository plus a git
// subprocess runner, and carries the caches and branch-role state used by the
// higher-level operations. A Repo is not safe for concurrent use.
type Repo struct {
	// Root is the absolute path of the repository working tree
	Root string

	repo   *gogit.Repository
	runner *CommandRunner
	splog  *output.Splog
	cfg    *config.Config

	generators []ai.Generator

	// normalized memoizes NormalizePath per input string for the lifetime of
	// the handle
	normalized map[string]string

	// treeFiles caches the head commit's blob paths keyed by commit SHA
	treeFiles *cache.Cache

	ignore *IgnoreFilter

	// PrimaryBranch and DevelopBranch are resolved once during NewRepo and
	// never re-resolved automatically
	PrimaryBranch string
	DevelopBranch string

	// TreeSkipCount is the number of tree entries skipped during the most
	// recent tracked-files traversal
	TreeSkipCount int
}

// Options configures repository initialization
type Options struct {
	// Paths are candidate file paths used to locate the repository
	Paths []string

	// GitDir, when set, is used instead of Paths to locate the repository
	GitDir string

	// Config holds attribution and ignore settings; nil means defaults
	Config *config.Config

	// Generators are the commit-message backends in priority order
	Generators []ai.Generator

	// Now is the clock used for ignore-file polling; nil means time.Now.
	// Injectable so tests control invalidation deterministically.
	Now func() time.Time
}

// NewRepo resolves the repository root from the candidate paths, opens it,
// and resolves the primary/develop workflow branches.
//
// Exactly one repository must resolve from the inputs: zero or multiple
// distinct roots is an initialization error.
func NewRepo(splog *output.Splog, opts Options) (*Repo, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	checkPaths := opts.Paths
	if opts.GitDir != "" {
		checkPaths = []string{opts.GitDir}
	}
	if len(checkPaths) == 0 {
		checkPaths = []string{"."}
	}

	roots := map[string]bool{}
	var rootList []string
	for _, p := range checkPaths {
		root, err := DiscoverRoot(p)
		if err != nil {
			continue
		}
		if !roots[root] {
			roots[root] = true
			rootList = append(rootList, root)
		}
	}

	if len(rootList) == 0 {
		return nil, aidererrors.NewRepositoryNotFoundError(checkPaths, nil)
	}
	if len(rootList) > 1 {
		splog.Error("Files are in different git repos.")
		return nil, aidererrors.NewRepositoryNotFoundError(checkPaths, rootList)
	}

	root := rootList[0]
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, aidererrors.NewRepositoryNotFoundError(checkPaths, nil)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	r := &Repo{
		Root:       root,
		repo:       repo,
		runner:     NewCommandRunner(root),
		splog:      splog,
		cfg:        cfg,
		generators: opts.Generators,
		normalized: make(map[string]string),
		treeFiles:  cache.New(cache.NoExpiration, 0),
	}
	r.ignore = NewIgnoreFilter(r, cfg.IgnoreFile, cfg.SubtreeOnly, now)

	r.resolveWorkflowBranches()

	return r, nil
}

// DiscoverRoot finds the working tree root for a candidate path. A path that
// does not exist falls back to its parent directory.
func DiscoverRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		parent := filepath.Dir(abs)
		if _, perr := os.Stat(parent); perr != nil {
			return "", err
		}
		abs = parent
	} else if !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", err
	}

	root := worktree.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return root, nil
}

// Config returns the repository configuration
func (r *Repo) Config() *config.Config {
	return r.cfg
}

// AbsRootPath returns the absolute path of a repo-relative path
func (r *Repo) AbsRootPath(path string) string {
	return filepath.Join(r.Root, path)
}

// RelGitDir returns the repository's .git directory relative to the current
// working directory, falling back to the absolute path.
func (r *Repo) RelGitDir() string {
	gitDir := filepath.Join(r.Root, ".git")
	cwd, err := os.Getwd()
	if err != nil {
		return gitDir
	}
	rel, err := filepath.Rel(cwd, gitDir)
	if err != nil {
		return gitDir
	}
	return rel
}

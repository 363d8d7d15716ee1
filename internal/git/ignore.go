package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/patrickmn/go-cache"
)

// ignoreRecheckInterval is the minimum time between ignore-file freshness
// checks
const ignoreRecheckInterval = time.Second

// IgnoreFilter answers is-ignored queries against the aider ignore-pattern
// file, with a per-path result cache in front of the compiled spec. The spec
// is rebuilt when the file's modification time changes; the file is polled at
// most once per recheck interval.
type IgnoreFilter struct {
	repo        *Repo
	file        string
	subtreeOnly bool
	now         func() time.Time

	lastCheck time.Time
	specMtime time.Time
	matcher   gitignore.Matcher
	results   *cache.Cache
}

// NewIgnoreFilter creates an ignore filter for the repository. The now
// function is the clock used for poll throttling.
func NewIgnoreFilter(repo *Repo, file string, subtreeOnly bool, now func() time.Time) *IgnoreFilter {
	return &IgnoreFilter{
		repo:        repo,
		file:        file,
		subtreeOnly: subtreeOnly,
		now:         now,
		results:     cache.New(cache.NoExpiration, 0),
	}
}

// IgnoredFile reports whether the path is excluded by the subtree restriction
// or the ignore-pattern file. Results are cached per path string until the
// spec rebuilds.
func (r *Repo) IgnoredFile(path string) bool {
	return r.ignore.Ignored(path)
}

// Ignored reports whether the path is ignored
func (f *IgnoreFilter) Ignored(path string) bool {
	f.refresh()

	if cached, ok := f.results.Get(path); ok {
		return cached.(bool)
	}

	result := f.ignoredRaw(path)
	f.results.SetDefault(path, result)
	return result
}

// refresh polls the ignore file for modification, at most once per recheck
// interval, and recompiles the spec when its timestamp changes. The per-path
// result cache is flushed on every rebuild.
func (f *IgnoreFilter) refresh() {
	if f.file == "" {
		return
	}

	now := f.now()
	if now.Sub(f.lastCheck) < ignoreRecheckInterval {
		return
	}
	f.lastCheck = now

	info, err := os.Stat(f.file)
	if err != nil {
		return
	}

	mtime := info.ModTime()
	if mtime.Equal(f.specMtime) {
		return
	}
	f.specMtime = mtime
	f.results.Flush()

	data, err := os.ReadFile(f.file)
	if err != nil {
		return
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	f.matcher = gitignore.NewMatcher(patterns)
}

// ignoredRaw evaluates a single path with no caching
func (f *IgnoreFilter) ignoredRaw(path string) bool {
	if f.subtreeOnly && !f.inWorkingSubtree(path) {
		return true
	}

	if f.file == "" || f.matcher == nil {
		return false
	}
	if _, err := os.Stat(f.file); err != nil {
		return false
	}

	norm, err := f.repo.NormalizePath(path)
	if err != nil {
		return true
	}

	return f.matcher.Match(strings.Split(norm, "/"), false)
}

// inWorkingSubtree reports whether the path is the current working subtree or
// nested beneath it. Resolution failures degrade to false, which the caller
// turns into ignored=true.
func (f *IgnoreFilter) inWorkingSubtree(path string) bool {
	norm, err := f.repo.NormalizePath(path)
	if err != nil {
		return false
	}

	cwd, err := os.Getwd()
	if err != nil {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(cwd); err == nil {
		cwd = resolved
	}

	cwdRel, err := filepath.Rel(f.repo.Root, cwd)
	if err != nil || cwdRel == ".." || strings.HasPrefix(cwdRel, ".."+string(filepath.Separator)) {
		return false
	}
	if cwdRel == "." {
		return true
	}

	cwdRel = filepath.ToSlash(cwdRel)
	return norm == cwdRel || strings.HasPrefix(norm, cwdRel+"/")
}

// GitIgnoredFile reports whether the path is excluded by the repository's own
// ignore rules. Errors degrade to false.
func (r *Repo) GitIgnoredFile(ctx context.Context, path string) bool {
	_, err := r.runner.Run(ctx, "check-ignore", "-q", "--", path)
	return err == nil
}

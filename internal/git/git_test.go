package git_test

import (
	"bytes"
	"testing"
	"time"

	"aider.dev/aider/internal/ai"
	"aider.dev/aider/internal/config"
	"aider.dev/aider/internal/git"
	"aider.dev/aider/internal/output"
	"aider.dev/aider/testhelpers"
)

// fakeClock is an adjustable clock for ignore-spec polling tests
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// testRepoOptions configures newTestRepo
type testRepoOptions struct {
	cfg        *config.Config
	generators []ai.Generator
	clock      *fakeClock
	out        *bytes.Buffer
}

// newTestRepo opens a Repo handle on the scene's repository with output
// captured in a buffer
func newTestRepo(t *testing.T, scene *testhelpers.Scene, opts testRepoOptions) (*git.Repo, *bytes.Buffer) {
	t.Helper()

	out := opts.out
	if out == nil {
		out = &bytes.Buffer{}
	}
	splog := output.NewSplogWithWriter(out)

	gitOpts := git.Options{
		GitDir:     scene.Dir,
		Config:     opts.cfg,
		Generators: opts.generators,
	}
	if opts.clock != nil {
		gitOpts.Now = opts.clock.Now
	}

	repo, err := git.NewRepo(splog, gitOpts)
	if err != nil {
		t.Fatalf("Failed to open repo: %v", err)
	}
	return repo, out
}

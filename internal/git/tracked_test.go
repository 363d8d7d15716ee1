package git_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"aider.dev/aider/testhelpers"
)

func TestTrackedFiles(t *testing.T) {
	t.Run("empty repository has no tracked files", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		require.Empty(t, repo.TrackedFiles())
	})

	t.Run("staged files count before the first commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.WriteFile("a.txt", "hello", false)
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		require.Equal(t, []string{"a.txt"}, repo.TrackedFiles())
	})

	t.Run("committed and staged files are merged", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			return s.Repo.WriteFile("sub/new.txt", "two", false)
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		require.Equal(t, []string{"first_test.txt", "sub/new.txt"}, repo.TrackedFiles())
	})

	t.Run("ignored files are excluded", func(t *testing.T) {
		clock := newFakeClock()
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.WriteFile("app.go", "package main", false); err != nil {
				return err
			}
			if err := s.Repo.WriteFile("debug.log", "noise", false); err != nil {
				return err
			}
			return s.Repo.RunGitCommand("commit", "-m", "init")
		})
		writeIgnoreFile(t, scene, "*.log\n", clock.Now())
		repo, _ := newTestRepo(t, scene, testRepoOptions{cfg: ignoreConfig(), clock: clock})

		require.Equal(t, []string{"app.go"}, repo.TrackedFiles())
	})

	t.Run("listing refreshes after a new commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("one", "first")
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		require.Equal(t, []string{"first_test.txt"}, repo.TrackedFiles())

		require.NoError(t, scene.Repo.CreateChangeAndCommit("two", "second"))
		require.Equal(t, []string{"first_test.txt", "second_test.txt"}, repo.TrackedFiles())
	})
}

func TestPathInRepo(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("one", "first")
	})
	repo, _ := newTestRepo(t, scene, testRepoOptions{})

	require.True(t, repo.PathInRepo("first_test.txt"))
	require.False(t, repo.PathInRepo("untracked.txt"))
	require.False(t, repo.PathInRepo(""))
}

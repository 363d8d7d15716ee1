package git_test

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	aidererrors "aider.dev/aider/internal/errors"
	"aider.dev/aider/internal/config"
	"aider.dev/aider/testhelpers"
)

func TestWorkflowBranchResolution(t *testing.T) {
	t.Run("fresh repository uses main for both roles", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("one", "first")
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		require.Equal(t, "main", repo.PrimaryBranch)
		require.Equal(t, "main", repo.DevelopBranch)
	})

	t.Run("develop branch is picked up when present", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			return s.Repo.CreateBranch("develop")
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		require.Equal(t, "main", repo.PrimaryBranch)
		require.Equal(t, "develop", repo.DevelopBranch)
	})

	t.Run("configured primary name wins over main", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			return s.Repo.CreateBranch("production")
		})

		cfg := config.Default()
		cfg.PrimaryBranchName = "production"
		repo, _ := newTestRepo(t, scene, testRepoOptions{cfg: cfg})

		require.Equal(t, "production", repo.PrimaryBranch)
	})

	t.Run("configured primary falls through when absent", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			if err := s.Repo.RenameBranch("main", "master"); err != nil {
				return err
			}
			return s.Repo.CreateBranch("develop")
		})

		// Config prefers "main" but only master and develop exist
		repo, _ := newTestRepo(t, scene, testRepoOptions{cfg: config.Default()})

		require.Equal(t, "master", repo.PrimaryBranch)
		require.Equal(t, "develop", repo.DevelopBranch)
	})

	t.Run("master is used when main is absent", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			return s.Repo.RenameBranch("main", "master")
		})

		cfg := config.Default()
		cfg.PrimaryBranchName = ""
		repo, _ := newTestRepo(t, scene, testRepoOptions{cfg: cfg})

		require.Equal(t, "master", repo.PrimaryBranch)
	})

	t.Run("develop alone serves as primary with a warning", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			return s.Repo.RenameBranch("main", "develop")
		})

		cfg := config.Default()
		cfg.PrimaryBranchName = ""
		repo, out := newTestRepo(t, scene, testRepoOptions{cfg: cfg})

		require.Equal(t, "develop", repo.PrimaryBranch)
		require.Equal(t, "develop", repo.DevelopBranch)
		require.Contains(t, out.String(), "Using 'develop' as primary")
	})

	t.Run("falls back to the current branch when no convention matches", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			return s.Repo.RenameBranch("main", "trunk")
		})

		cfg := config.Default()
		cfg.PrimaryBranchName = ""
		repo, out := newTestRepo(t, scene, testRepoOptions{cfg: cfg})

		require.Equal(t, "trunk", repo.PrimaryBranch)
		require.Equal(t, "trunk", repo.DevelopBranch)
		require.Contains(t, out.String(), "Using current branch 'trunk' as primary")
	})
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("switches branches when the tree is clean", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			return s.Repo.CreateBranch("other")
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		require.NoError(t, repo.Checkout(ctx, "other"))

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "other", current)
	})

	t.Run("refuses to switch with pending changes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			if err := s.Repo.CreateBranch("other"); err != nil {
				return err
			}
			return s.Repo.WriteFile("first_test.txt", "changed", true)
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		err := repo.Checkout(ctx, "other")
		require.ErrorIs(t, err, aidererrors.ErrDirtyWorkingTree)
	})

	t.Run("fails on a nonexistent branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("one", "first")
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		err := repo.Checkout(ctx, "no-such-branch")
		require.Error(t, err)

		var checkoutErr *aidererrors.BranchCheckoutError
		require.ErrorAs(t, err, &checkoutErr)
		require.Equal(t, "no-such-branch", checkoutErr.BranchName)
	})

	t.Run("checkout primary returns to the primary branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			return s.Repo.CreateAndCheckoutBranch("side")
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		require.NoError(t, repo.CheckoutPrimary(ctx))

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "main", current)
	})
}

func TestCreateFeatureBranch(t *testing.T) {
	ctx := context.Background()

	featureBranchPattern := regexp.MustCompile(`^aider/feature-\d{8}-\d{6}-[0-9a-f]{6}$`)

	t.Run("creates a timestamped branch from develop", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("one", "first")
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		name, err := repo.CreateFeatureBranch(ctx, "")
		require.NoError(t, err)
		require.Regexp(t, featureBranchPattern, name)

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, name, current)
	})

	t.Run("suffix is sanitized and lowercased", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("one", "first")
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		name, err := repo.CreateFeatureBranch(ctx, "My Fix!")
		require.NoError(t, err)
		require.Regexp(t, regexp.MustCompile(`^aider/feature-\d{8}-\d{6}-[0-9a-f]{6}-my-fix$`), name)
	})

	t.Run("switches to develop first", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			if err := s.Repo.CreateBranch("develop"); err != nil {
				return err
			}
			return s.Repo.CreateAndCheckoutBranch("elsewhere")
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		name, err := repo.CreateFeatureBranch(ctx, "from-develop")
		require.NoError(t, err)

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, name, current)

		// The new branch must point at develop's head
		developSHA, err := scene.Repo.RunGitCommandAndGetOutput("rev-parse", "develop")
		require.NoError(t, err)
		headSHA, err := scene.Repo.HeadSHA()
		require.NoError(t, err)
		require.Equal(t, developSHA, headSHA)
	})

	t.Run("long suffixes are truncated", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("one", "first")
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		name, err := repo.CreateFeatureBranch(ctx, strings.Repeat("very-long-suffix-", 20))
		require.NoError(t, err)
		require.LessOrEqual(t, len(name), 100)

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, name, current)
	})

	t.Run("refuses with pending changes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
				return err
			}
			return s.Repo.WriteFile("first_test.txt", "changed", true)
		})
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		_, err := repo.CreateFeatureBranch(ctx, "blocked")
		require.ErrorIs(t, err, aidererrors.ErrDirtyWorkingTree)
	})

	t.Run("works before the first commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		repo, _ := newTestRepo(t, scene, testRepoOptions{})

		name, err := repo.CreateFeatureBranch(ctx, "")
		require.NoError(t, err)
		require.Regexp(t, regexp.MustCompile(`^aider/feature-\d{8}-\d{6}-nohash$`), name)
	})
}

func TestListAiderBranches(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
			return err
		}
		if err := s.Repo.CreateBranch("aider/feature-x"); err != nil {
			return err
		}
		if err := s.Repo.CreateBranch("aider/feature-a"); err != nil {
			return err
		}
		return s.Repo.CreateBranch("unrelated")
	})
	repo, _ := newTestRepo(t, scene, testRepoOptions{})

	branches, err := repo.ListAiderBranches()
	require.NoError(t, err)
	require.Equal(t, []string{"aider/feature-a", "aider/feature-x", "main"}, branches)
}

func TestBranchNames(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.CreateChangeAndCommit("one", "first"); err != nil {
			return err
		}
		return s.Repo.CreateBranch("side")
	})
	repo, _ := newTestRepo(t, scene, testRepoOptions{})

	names, err := repo.BranchNames()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"main", "side"}, names)
}

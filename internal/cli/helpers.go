package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"aider.dev/aider/internal/ai"
	"aider.dev/aider/internal/config"
	"aider.dev/aider/internal/git"
	"aider.dev/aider/internal/output"
)

// openRepo builds the notifier and repository handle for a command invocation
func openRepo(cmd *cobra.Command, paths []string) (*git.Repo, *output.Splog, error) {
	splog := output.NewSplog()
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		splog.SetQuiet(true)
	}

	gitDir, _ := cmd.Flags().GetString("directory")

	opts := git.Options{
		Paths:  paths,
		GitDir: gitDir,
	}

	root, err := discoverConfigRoot(gitDir, paths)
	if err == nil {
		cfg, cerr := config.Load(root)
		if cerr != nil {
			splog.Warn("Ignoring unreadable config: %v", cerr)
		} else {
			opts.Config = cfg
		}
	}

	opts.Generators = defaultGenerators()

	repo, err := git.NewRepo(splog, opts)
	if err != nil {
		return nil, splog, err
	}

	// Debug log lives next to the repository metadata, best effort
	if fl, err := output.NewFileLogger(filepath.Join(repo.Root, ".git", "aider.log")); err == nil {
		splog.SetFileLogger(fl)
	}

	return repo, splog, nil
}

// discoverConfigRoot locates the repository root for config loading before
// the handle itself exists
func discoverConfigRoot(gitDir string, paths []string) (string, error) {
	probe := "."
	if gitDir != "" {
		probe = gitDir
	} else if len(paths) > 0 {
		probe = paths[0]
	}
	return git.DiscoverRoot(probe)
}

// defaultGenerators returns the commit-message backends available in this
// environment, in priority order
func defaultGenerators() []ai.Generator {
	var generators []ai.Generator
	if cursor, err := ai.NewCursorAgentClient(); err == nil {
		generators = append(generators, cursor)
	}
	return generators
}

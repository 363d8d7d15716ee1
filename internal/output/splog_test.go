package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"aider.dev/aider/internal/output"
)

func TestSplog(t *testing.T) {
	t.Run("info and bold write plain lines", func(t *testing.T) {
		var buf bytes.Buffer
		splog := output.NewSplogWithWriter(&buf)

		splog.Info("hello %s", "world")
		splog.Bold("done in %d steps", 3)

		require.Equal(t, "hello world\ndone in 3 steps\n", buf.String())
	})

	t.Run("warnings and errors are uncolored off-terminal", func(t *testing.T) {
		var buf bytes.Buffer
		splog := output.NewSplogWithWriter(&buf)

		splog.Warn("careful")
		splog.Error("broken: %v", "badness")

		require.Equal(t, "careful\nbroken: badness\n", buf.String())
		require.NotContains(t, buf.String(), "\x1b[")
	})

	t.Run("quiet suppresses everything but errors", func(t *testing.T) {
		var buf bytes.Buffer
		splog := output.NewSplogWithWriter(&buf)
		splog.SetQuiet(true)

		splog.Info("hidden")
		splog.Bold("hidden")
		splog.Warn("hidden")
		splog.Error("still shown")

		require.Equal(t, "still shown\n", buf.String())
	})

	t.Run("debug never reaches the writer", func(t *testing.T) {
		var buf bytes.Buffer
		splog := output.NewSplogWithWriter(&buf)

		splog.Debug("diagnostic detail %d", 42)

		require.Empty(t, buf.String())
	})
}

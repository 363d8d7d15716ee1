// Package output provides user-facing output and structured logging for the
// aider git layer.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
)

// Splog provides structured logging and output
type Splog struct {
	writer   io.Writer
	color    bool
	fileLog  *FileLogger
	quiet    bool
}

// NewSplog creates a new splog instance writing to stdout
func NewSplog() *Splog {
	return &Splog{
		writer: os.Stdout,
		color:  isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// NewSplogWithWriter creates a splog writing to an arbitrary writer, without
// color. Used in tests to capture output.
func NewSplogWithWriter(w io.Writer) *Splog {
	return &Splog{writer: w}
}

// SetQuiet suppresses all non-error output
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// SetFileLogger attaches a rotating debug log file
func (s *Splog) SetFileLogger(fl *FileLogger) {
	s.fileLog = fl
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	s.log("INFO", format, args...)
	if s.quiet {
		return
	}
	fmt.Fprintf(s.writer, format+"\n", args...)
}

// Bold writes an info message in bold
func (s *Splog) Bold(format string, args ...interface{}) {
	s.log("INFO", format, args...)
	if s.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if s.color {
		msg = boldStyle.Render(msg)
	}
	fmt.Fprintln(s.writer, msg)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	s.log("WARN", format, args...)
	if s.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if s.color {
		msg = warnStyle.Render(msg)
	}
	fmt.Fprintln(s.writer, msg)
}

// Error writes an error message
func (s *Splog) Error(format string, args ...interface{}) {
	s.log("ERROR", format, args...)
	msg := fmt.Sprintf(format, args...)
	if s.color {
		msg = errorStyle.Render(msg)
	}
	fmt.Fprintln(s.writer, msg)
}

// Debug writes a debug message to the file log only
func (s *Splog) Debug(format string, args ...interface{}) {
	s.log("DEBUG", format, args...)
}

func (s *Splog) log(level, format string, args ...interface{}) {
	if s.fileLog == nil {
		return
	}
	s.fileLog.Log(level, fmt.Sprintf(format, args...))
}

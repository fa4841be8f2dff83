package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ruleWidth is the width of banner and section rules.
const ruleWidth = 60

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ConsoleLogger writes progress to out and diagnostics to errOut.
// Info, Success, Warn, Banner and Section go to out; Verbose and Error go to errOut.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
	color   bool
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger on stdout/stderr.
// Color is enabled when stdout is a terminal and neither NO_COLOR nor CI is set.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stdout, os.Stderr, verbose, ColorEnabled(os.Stdout))
}

// NewConsoleLoggerTo creates a ConsoleLogger on the given writers.
func NewConsoleLoggerTo(out, errOut io.Writer, verbose, color bool) *ConsoleLogger {
	return &ConsoleLogger{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		color:   color,
	}
}

func (l *ConsoleLogger) style(s lipgloss.Style, text string) string {
	if !l.color {
		return text
	}
	return s.Render(text)
}

func (l *ConsoleLogger) write(w io.Writer, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(w, line+"\n")
}

func format(format string, args []interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(f string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.errOut, l.style(verboseStyle, "[VERBOSE] "+format(f, args)))
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(f string, args ...interface{}) {
	l.write(l.out, format(f, args))
}

// Success logs an acknowledgement, indented under the step it belongs to.
func (l *ConsoleLogger) Success(f string, args ...interface{}) {
	l.write(l.out, "  "+l.style(successStyle, format(f, args)))
}

// Warn logs a non-fatal problem, indented under the step it belongs to.
func (l *ConsoleLogger) Warn(f string, args ...interface{}) {
	l.write(l.out, "  "+l.style(warnStyle, "WARNING:")+" "+format(f, args))
}

// Error logs error messages.
func (l *ConsoleLogger) Error(f string, args ...interface{}) {
	l.write(l.errOut, l.style(errorStyle, "[ERROR]")+" "+format(f, args))
}

// Banner logs title between two rules of '#'.
func (l *ConsoleLogger) Banner(title string) {
	rule := strings.Repeat("#", ruleWidth)
	l.write(l.out, "\n"+l.style(bannerStyle, rule+"\n# "+title+"\n"+rule))
}

// Section logs title between two rules of '='.
func (l *ConsoleLogger) Section(title string) {
	rule := strings.Repeat("=", ruleWidth)
	l.write(l.out, "\n"+l.style(sectionStyle, rule)+"\n"+title+"\n"+l.style(sectionStyle, rule))
}

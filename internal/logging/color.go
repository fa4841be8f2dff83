package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ColorEnabled reports whether styled output should be written to w.
//
// Returns false if:
//   - w is not a terminal (pipes, files, CI logs)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - CI is set (common CI/CD convention)
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

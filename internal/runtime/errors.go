package runtime

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/manav03panchal/dayaim/internal/errors"
)

// Process exit codes by error category.
const (
	ExitOK          = 0
	ExitUser        = 1
	ExitSystem      = 2
	ExitRecoverable = 3
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch errors.Classify(err) {
	case errors.CategorySystem:
		return ExitSystem
	case errors.CategoryRecoverable:
		return ExitRecoverable
	default:
		return ExitUser
	}
}

// FormatError formats an error for the terminal. Debug output includes the
// full cause chain.
func FormatError(err error, debug bool) string {
	if err == nil {
		return ""
	}
	if debug {
		return errors.FormatDebugError(err)
	}
	return errors.FormatByCategory(err)
}

// ReportError writes err in the context's output format. JSON errors go to
// the formatter's writer so scripts can parse them; text goes to stderr.
func (c *Context) ReportError(err error) {
	if err == nil {
		return
	}
	if c.IsJSON() {
		if jerr := c.JSONFormatter().PrintError(errors.Classify(err).String(), err.Error(), errors.GetSuggestion(err)); jerr == nil {
			return
		}
	}
	fmt.Fprintln(os.Stderr, "Error: "+FormatError(err, c.Debug))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/output"
	"github.com/manav03panchal/dayaim/internal/parser"
)

// resolveDate parses a date argument relative to the planning day. Empty
// input means today.
func resolveDate(input string) (model.Date, error) {
	if strings.TrimSpace(input) == "" {
		return ctx.Today(), nil
	}
	return parser.ParseDate(input, ctx.Today())
}

// dateArg returns the date named by args[i], or today when absent.
func dateArg(args []string, i int) (model.Date, error) {
	if len(args) > i {
		return resolveDate(strings.Join(args[i:], " "))
	}
	return ctx.Today(), nil
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// reportAction prints the outcome of a mutating command.
func reportAction(status string, kind model.Kind, id string, data any, message string) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintAction(status, kind, id, data)
	}
	ctx.CLIFormatter().Success(message)
	return nil
}

// reportedError wraps an error whose details were already written to
// stdout. Execute sets the exit code from it without printing it again.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// completeIDs returns a completion function over ids of one record kind.
func completeIDs(list func() []idTitle) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		// Completion runs without the persistent pre-run hooks.
		if ctx == nil {
			if err := setup(cmd, args); err != nil || ctx == nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			defer func() { _ = closeContext() }()
		}
		var completions []string
		for _, it := range list() {
			if strings.HasPrefix(it.id, toComplete) {
				completions = append(completions, it.id+"\t"+it.title)
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

type idTitle struct {
	id    string
	title string
}

var (
	completeGoals = completeIDs(func() []idTitle {
		var out []idTitle
		for _, g := range ctx.Store.Goals.ListAll() {
			out = append(out, idTitle{output.ShortID(g.ID), g.Title})
		}
		return out
	})
	completeTasks = completeIDs(func() []idTitle {
		var out []idTitle
		for _, t := range ctx.Store.Tasks.ListAll() {
			out = append(out, idTitle{output.ShortID(t.ID), t.Title})
		}
		return out
	})
	completeHabits = completeIDs(func() []idTitle {
		var out []idTitle
		for _, h := range ctx.Store.Habits.ListAll() {
			out = append(out, idTitle{output.ShortID(h.ID), h.Title})
		}
		return out
	})
)

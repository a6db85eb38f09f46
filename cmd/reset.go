package cmd

import (
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/runtime"
)

var resetFlagYes bool

// resetCmd represents the reset command.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every goal, task, habit, plan and log",
	Long: `Delete all stored data, including quarantined copies of unreadable
collections. This cannot be undone; run 'dayaim export' first to keep a copy.

Asks for confirmation on a terminal. Pass --yes in scripts.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetFlagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

// confirm asks a yes/no question on the terminal. yes skips the prompt.
// Without a terminal the answer must come from yes.
func confirm(title, description string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if ctx.IsJSON() || !runtime.IsInteractive() {
		return false, &errors.UserError{
			Message:    "Refusing to continue without confirmation",
			Suggestion: "Pass --yes to confirm",
			Cause:      errors.ErrConfirmRequired,
		}
	}

	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ok, err := confirm("Delete all dayaim data?", "Goals, tasks, habits, plans and logs will be removed.", resetFlagYes)
	if err != nil {
		return err
	}
	if !ok {
		ctx.CLIFormatter().Muted("Nothing deleted.")
		return nil
	}

	if err := ctx.Store.ClearAll(); err != nil {
		return err
	}
	return reportAction("deleted", model.Kind("all"), "", nil, "All data deleted")
}

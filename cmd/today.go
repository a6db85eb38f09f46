package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/output"
	"github.com/manav03panchal/dayaim/internal/runtime"
	"github.com/manav03panchal/dayaim/internal/tui"
)

// Today command flags.
var (
	todayFlagTUI  bool
	todayFlagDate string
)

// todayCmd represents the today command.
var todayCmd = &cobra.Command{
	Use:     "today [DATE]",
	Aliases: []string{"t", "show"},
	Short:   "Show the plan, tasks and habits for a day",
	Long: `Show a day's focus goal, its tasks and the habits due, with progress.
Open tasks from earlier days are listed as overdue.

With --tui, opens an interactive dashboard that follows the current day.

Examples:
  dayaim today
  dayaim today tomorrow
  dayaim today --tui`,
	RunE: runToday,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, todayCmd} {
		c.Flags().BoolVarP(&todayFlagTUI, "tui", "i", false, "Open the interactive dashboard")
	}
	rootCmd.Flags().StringVarP(&todayFlagDate, "date", "d", "", "Day to show (default today)")

	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	if todayFlagTUI {
		if ctx.IsJSON() {
			return errors.NewUserError("The dashboard has no JSON output", "Drop --tui or --format json")
		}
		if !runtime.IsInteractive() {
			return errors.NewUserError("The dashboard needs a terminal", "Run 'dayaim today' for plain output")
		}
		return tui.Run(tui.TodayConfig{
			Planner:         ctx.Planner,
			Today:           ctx.Today,
			Now:             ctx.Now,
			RefreshInterval: ctx.Config.Planner.RefreshInterval,
		})
	}

	date, err := resolveDate(todayFlagDate)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		if date, err = dateArg(args, 0); err != nil {
			return err
		}
	}

	day := ctx.Planner.Day(date)
	today := ctx.Today()
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDay(day)
	}

	f := ctx.CLIFormatter()
	f.PrintDay(day, today)

	if date == today {
		if overdue := ctx.Planner.Overdue(today); len(overdue) > 0 {
			f.Println()
			f.Warning(fmt.Sprintf("%d overdue", len(overdue)))
			for _, v := range ctx.Planner.TaskViews(overdue) {
				f.Println("  " + f.TaskLine(v) + "  " + output.RelativeDay(v.Task.DueDate, today))
			}
		}
		if !day.Plan.IsClosed() && ctx.Now().Hour() >= eveningHour {
			f.Println()
			f.Muted("Wrap up with 'dayaim plan close --note \"...\"'")
		}
	}
	return nil
}

// eveningHour is when the day view starts suggesting a review.
const eveningHour = 18

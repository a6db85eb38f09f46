package cmd

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/output"
	"github.com/manav03panchal/dayaim/internal/parser"
	"github.com/manav03panchal/dayaim/internal/validate"
)

// Habit command flags.
var (
	habitFlagSchedule string
	habitFlagDays     string
	habitFlagStatus   string
	habitFlagDate     string
	habitFlagDue      bool
)

// habitCmd represents the habit command.
var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"habits", "h"},
	Short:   "Manage habits",
	Long: `Habits recur on a schedule and are logged once per day as done or missed.

Lists habits with their current streaks when called without a subcommand.

Examples:
  dayaim habit add "Read 20 pages"
  dayaim habit add "Gym" --schedule custom --days mon,wed,fri
  dayaim habit log 7b1d
  dayaim habit log 7b1d --status missed --date yesterday
  dayaim habit pause 7b1d`,
	RunE: runHabitList,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with streaks",
	Args:    cobra.NoArgs,
	RunE:    runHabitList,
}

var habitAddCmd = &cobra.Command{
	Use:     "add TITLE",
	Aliases: []string{"new"},
	Short:   "Add a habit",
	Long: `Add a habit. --schedule is daily (default), weekdays, or custom.
Custom schedules take --days as day names or indices (0 = Sunday).

Examples:
  dayaim habit add "Meditate"
  dayaim habit add "Run" --schedule weekdays
  dayaim habit add "Swim" --schedule custom --days "tue thu sat"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHabitAdd,
}

var habitPauseCmd = &cobra.Command{
	Use:   "pause ID",
	Short: "Pause a habit so it is never due",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setHabitStatus(args[0], model.HabitStatusPaused)
	},
}

var habitResumeCmd = &cobra.Command{
	Use:   "resume ID",
	Short: "Resume a paused habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setHabitStatus(args[0], model.HabitStatusActive)
	},
}

var habitDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a habit",
	Long:    `Delete a habit. Its logs are kept and show the habit as (missing).`,
	Args:    cobra.ExactArgs(1),
	RunE:    runHabitDelete,
}

var habitLogCmd = &cobra.Command{
	Use:   "log ID",
	Short: "Log a habit for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitLog,
}

var habitClearCmd = &cobra.Command{
	Use:   "clear ID",
	Short: "Remove a habit's log for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitClear,
}

var habitLogsCmd = &cobra.Command{
	Use:   "logs [ID]",
	Short: "Show habit logs, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHabitLogs,
}

func init() {
	habitListCmd.Flags().BoolVar(&habitFlagDue, "due", false, "Only habits due today")
	habitAddCmd.Flags().StringVarP(&habitFlagSchedule, "schedule", "s", "daily", "Schedule: daily, weekdays, custom")
	habitAddCmd.Flags().StringVar(&habitFlagDays, "days", "", "Days for a custom schedule, e.g. mon,wed,fri")
	habitLogCmd.Flags().StringVarP(&habitFlagStatus, "status", "s", "done", "Log status: done, missed")
	habitLogCmd.Flags().StringVarP(&habitFlagDate, "date", "d", "", "Day to log (default today)")
	habitClearCmd.Flags().StringVarP(&habitFlagDate, "date", "d", "", "Day to clear (default today)")

	_ = habitAddCmd.RegisterFlagCompletionFunc("schedule", cobra.FixedCompletions(
		[]string{"daily", "weekdays", "custom"}, cobra.ShellCompDirectiveNoFileComp))
	_ = habitLogCmd.RegisterFlagCompletionFunc("status", cobra.FixedCompletions(
		[]string{"done", "missed"}, cobra.ShellCompDirectiveNoFileComp))
	for _, c := range []*cobra.Command{habitPauseCmd, habitResumeCmd, habitDeleteCmd, habitLogCmd, habitClearCmd, habitLogsCmd} {
		c.ValidArgsFunction = completeHabits
	}

	habitCmd.AddCommand(habitListCmd, habitAddCmd, habitPauseCmd, habitResumeCmd,
		habitDeleteCmd, habitLogCmd, habitClearCmd, habitLogsCmd)
	rootCmd.AddCommand(habitCmd)
}

func runHabitList(cmd *cobra.Command, args []string) error {
	today := ctx.Today()
	habits := ctx.Store.Habits.ListAll()
	if habitFlagDue {
		habits = ctx.Store.Habits.ListDueOn(today)
	}

	streaks := make(map[string]int, len(habits))
	for _, h := range habits {
		streaks[h.ID] = ctx.Planner.Streak(h, today)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewHabitsResponse(habits, streaks))
	}
	ctx.CLIFormatter().PrintHabits(habits, streaks)
	return nil
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	schedule, err := validate.ScheduleType(habitFlagSchedule)
	if err != nil {
		return err
	}

	var days []int
	if habitFlagDays != "" {
		if days, err = parser.ParseWeekdays(habitFlagDays); err != nil {
			return err
		}
		// --days alone implies a custom schedule.
		if !cmd.Flags().Changed("schedule") {
			schedule = model.ScheduleCustom
		}
	}

	h, err := ctx.Planner.AddHabit(joinArgs(args), schedule, days)
	if err != nil {
		return err
	}
	return reportAction("created", model.KindHabit, h.ID, output.NewHabitOutput(h, 0),
		"Added habit "+h.Title+" ("+output.ScheduleLabel(h)+", "+output.ShortID(h.ID)+")")
}

func setHabitStatus(id string, status model.HabitStatus) error {
	h, err := ctx.Planner.SetHabitStatus(id, status)
	if err != nil {
		return err
	}
	msg := "Paused " + h.Title
	if status == model.HabitStatusActive {
		msg = "Resumed " + h.Title
	}
	return reportAction("updated", model.KindHabit, h.ID, output.NewHabitOutput(h, 0), msg)
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	h, err := ctx.Planner.DeleteHabit(args[0])
	if err != nil {
		return err
	}
	return reportAction("deleted", model.KindHabit, h.ID, nil, "Deleted habit "+h.Title)
}

func runHabitLog(cmd *cobra.Command, args []string) error {
	status, err := validate.HabitLogStatus(habitFlagStatus)
	if err != nil {
		return err
	}
	date, err := resolveDate(habitFlagDate)
	if err != nil {
		return err
	}
	l, err := ctx.Planner.LogHabit(args[0], date, status)
	if err != nil {
		return err
	}

	msg := "Logged " + string(l.Status) + " for " + output.RelativeDay(date, ctx.Today())
	if h, err := ctx.Store.Habits.GetByID(l.HabitID); err == nil {
		msg = "Logged " + h.Title + " " + string(l.Status) + " for " + output.RelativeDay(date, ctx.Today())
		if streak := ctx.Planner.Streak(h, ctx.Today()); streak > 1 {
			msg += " (streak " + strconv.Itoa(streak) + ")"
		}
	}
	return reportAction("created", model.KindHabitLog, l.ID, output.NewHabitLogOutput(l), msg)
}

func runHabitClear(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(habitFlagDate)
	if err != nil {
		return err
	}
	h, err := ctx.Planner.ResolveHabit(args[0])
	if err != nil {
		return err
	}
	if err := ctx.Planner.ClearHabitLog(h.ID, date); err != nil {
		return err
	}
	return reportAction("deleted", model.KindHabitLog, h.ID, nil,
		"Cleared "+h.Title+" for "+output.RelativeDay(date, ctx.Today()))
}

func runHabitLogs(cmd *cobra.Command, args []string) error {
	var logs []*model.HabitLog
	if len(args) == 1 {
		h, err := ctx.Planner.ResolveHabit(args[0])
		if err != nil {
			return err
		}
		logs = ctx.Store.HabitLogs.ListForHabit(h.ID)
	} else {
		logs = ctx.Store.HabitLogs.ListAll()
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[j].Date.Before(logs[i].Date)
	})

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewHabitLogsResponse(logs))
	}
	habits := make(map[string]*model.Habit)
	for _, h := range ctx.Store.Habits.ListAll() {
		habits[h.ID] = h
	}
	ctx.CLIFormatter().PrintHabitLogs(logs, habits)
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/output"
	"github.com/manav03panchal/dayaim/internal/validate"
)

// Goal command flags.
var (
	goalFlagWhy    string
	goalFlagTitle  string
	goalFlagStatus string
	goalFlagDate   string
)

// goalCmd represents the goal command.
var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals", "g"},
	Short:   "Manage goals",
	Long: `Goals are the longer-running aims you plan days around.

Shows active goals when called without a subcommand: pinned goals first,
then the most recently focused.

Examples:
  dayaim goal
  dayaim goal add "Ship v1" --why "users are waiting"
  dayaim goal pin 3f2a
  dayaim goal focus 3f2a
  dayaim goal status 3f2a completed`,
	RunE: runGoalActive,
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals",
	Long: `List goals in stored order. Filter with --status.

Examples:
  dayaim goal list
  dayaim goal list --status paused`,
	Args: cobra.NoArgs,
	RunE: runGoalList,
}

var goalActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "List active goals, pinned first",
	Args:  cobra.NoArgs,
	RunE:  runGoalActive,
}

var goalShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalShow,
}

var goalAddCmd = &cobra.Command{
	Use:     "add TITLE",
	Aliases: []string{"new"},
	Short:   "Add a goal",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runGoalAdd,
}

var goalEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change a goal's title or why",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalEdit,
}

var goalPinCmd = &cobra.Command{
	Use:   "pin ID",
	Short: "Pin a goal to the top of the active list",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setGoalPinned(args[0], true) },
}

var goalUnpinCmd = &cobra.Command{
	Use:   "unpin ID",
	Short: "Unpin a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setGoalPinned(args[0], false) },
}

var goalFocusCmd = &cobra.Command{
	Use:   "focus ID",
	Short: "Make a goal the focus of a day",
	Long: `Make a goal the focus of today's plan, or of the day given by --date.

Examples:
  dayaim goal focus 3f2a
  dayaim goal focus 3f2a --date tomorrow`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalFocus,
}

var goalStatusCmd = &cobra.Command{
	Use:   "status ID STATUS",
	Short: "Set a goal's status (active, paused, completed)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalStatus,
}

var goalDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a goal",
	Long: `Delete a goal. Tasks and plans linked to it keep the link and show
the goal as (missing).`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalDelete,
}

func init() {
	goalListCmd.Flags().StringVarP(&goalFlagStatus, "status", "s", "", "Only goals with this status")
	goalAddCmd.Flags().StringVarP(&goalFlagWhy, "why", "w", "", "Why the goal matters")
	goalEditCmd.Flags().StringVarP(&goalFlagTitle, "title", "t", "", "New title")
	goalEditCmd.Flags().StringVarP(&goalFlagWhy, "why", "w", "", "New why")
	goalFocusCmd.Flags().StringVarP(&goalFlagDate, "date", "d", "", "Day to focus (default today)")

	for _, c := range []*cobra.Command{goalShowCmd, goalEditCmd, goalPinCmd, goalUnpinCmd, goalFocusCmd, goalStatusCmd, goalDeleteCmd} {
		c.ValidArgsFunction = completeGoals
	}

	goalCmd.AddCommand(goalListCmd, goalActiveCmd, goalShowCmd, goalAddCmd, goalEditCmd,
		goalPinCmd, goalUnpinCmd, goalFocusCmd, goalStatusCmd, goalDeleteCmd)
	rootCmd.AddCommand(goalCmd)
}

func printGoals(goals []*model.Goal) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewGoalsResponse(goals))
	}
	ctx.CLIFormatter().PrintGoals(goals)
	return nil
}

func runGoalList(cmd *cobra.Command, args []string) error {
	goals := ctx.Store.Goals.ListAll()
	if goalFlagStatus != "" {
		status, err := validate.GoalStatus(goalFlagStatus)
		if err != nil {
			return err
		}
		filtered := goals[:0]
		for _, g := range goals {
			if g.Status == status {
				filtered = append(filtered, g)
			}
		}
		goals = filtered
	}
	return printGoals(goals)
}

func runGoalActive(cmd *cobra.Command, args []string) error {
	return printGoals(ctx.Store.Goals.ListActive())
}

func runGoalShow(cmd *cobra.Command, args []string) error {
	g, err := ctx.Planner.ResolveGoal(args[0])
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewGoalOutput(g))
	}
	ctx.CLIFormatter().PrintGoal(g)
	return nil
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	g, err := ctx.Planner.AddGoal(joinArgs(args), goalFlagWhy)
	if err != nil {
		return err
	}
	return reportAction("created", model.KindGoal, g.ID, output.NewGoalOutput(g),
		"Added goal "+g.Title+" ("+output.ShortID(g.ID)+")")
}

func runGoalEdit(cmd *cobra.Command, args []string) error {
	g, err := ctx.Planner.EditGoal(args[0], goalFlagTitle, goalFlagWhy)
	if err != nil {
		return err
	}
	return reportAction("updated", model.KindGoal, g.ID, output.NewGoalOutput(g), "Updated goal "+g.Title)
}

func setGoalPinned(id string, pinned bool) error {
	g, err := ctx.Planner.SetGoalPinned(id, pinned)
	if err != nil {
		return err
	}
	msg := "Pinned " + g.Title
	if !pinned {
		msg = "Unpinned " + g.Title
	}
	return reportAction("updated", model.KindGoal, g.ID, output.NewGoalOutput(g), msg)
}

func runGoalFocus(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(goalFlagDate)
	if err != nil {
		return err
	}
	g, plan, err := ctx.Planner.FocusGoal(args[0], date)
	if err != nil {
		return err
	}
	return reportAction("updated", model.KindPlan, string(plan.Date), output.NewPlanOutput(plan, g, true),
		"Focus for "+output.RelativeDay(date, ctx.Today())+": "+g.Title)
}

func runGoalStatus(cmd *cobra.Command, args []string) error {
	status, err := validate.GoalStatus(args[1])
	if err != nil {
		return err
	}
	g, err := ctx.Planner.SetGoalStatus(args[0], status)
	if err != nil {
		return err
	}
	return reportAction("updated", model.KindGoal, g.ID, output.NewGoalOutput(g),
		g.Title+" is now "+string(g.Status))
}

func runGoalDelete(cmd *cobra.Command, args []string) error {
	g, err := ctx.Planner.DeleteGoal(args[0])
	if err != nil {
		return err
	}
	return reportAction("deleted", model.KindGoal, g.ID, nil, "Deleted goal "+g.Title)
}

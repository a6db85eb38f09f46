package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/output"
	"github.com/manav03panchal/dayaim/internal/planner"
	"github.com/manav03panchal/dayaim/internal/validate"
)

// Task command flags.
var (
	taskFlagDue     string
	taskFlagGoal    string
	taskFlagFocus   bool
	taskFlagSource  string
	taskFlagAll     bool
	taskFlagOverdue bool
)

// taskCmd represents the task command.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "Manage tasks",
	Long: `Tasks are dated to-dos, optionally linked to a goal.

Lists today's tasks when called without a subcommand.

Examples:
  dayaim task add "Write release notes" --due tomorrow --goal 3f2a
  dayaim task list friday
  dayaim task done 9c1e
  dayaim task move 9c1e +2`,
	RunE: runTaskList,
}

var taskListCmd = &cobra.Command{
	Use:     "list [DATE]",
	Aliases: []string{"ls"},
	Short:   "List tasks due on a day",
	Long: `List tasks due on DATE (default today).

DATE accepts YYYY-MM-DD, today, tomorrow, yesterday, +N/-N day offsets,
weekday names, and natural phrases such as "in 3 days".

Examples:
  dayaim task list
  dayaim task list tomorrow
  dayaim task list --overdue
  dayaim task list --all --goal 3f2a`,
	RunE: runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:     "add TITLE",
	Aliases: []string{"new"},
	Short:   "Add a task",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setTaskDone(args[0], true) },
}

var taskUndoCmd = &cobra.Command{
	Use:   "undo ID",
	Short: "Mark a task not done",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setTaskDone(args[0], false) },
}

var taskMoveCmd = &cobra.Command{
	Use:   "move ID DATE",
	Short: "Move a task to another day",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTaskMove,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDelete,
}

func init() {
	taskListCmd.Flags().BoolVarP(&taskFlagAll, "all", "a", false, "List tasks on every day")
	taskListCmd.Flags().BoolVar(&taskFlagOverdue, "overdue", false, "List open tasks due before today")
	taskListCmd.Flags().StringVarP(&taskFlagGoal, "goal", "g", "", "Only tasks linked to this goal")

	taskAddCmd.Flags().StringVarP(&taskFlagDue, "due", "d", "", "Due date (default today)")
	taskAddCmd.Flags().StringVarP(&taskFlagGoal, "goal", "g", "", "Link to a goal")
	taskAddCmd.Flags().BoolVar(&taskFlagFocus, "focus", false, "Mark as the day's focus task")
	taskAddCmd.Flags().StringVarP(&taskFlagSource, "source", "s", "", "Planned source: evening, morning, manual")

	_ = taskListCmd.RegisterFlagCompletionFunc("goal", completeGoals)
	_ = taskAddCmd.RegisterFlagCompletionFunc("goal", completeGoals)
	for _, c := range []*cobra.Command{taskDoneCmd, taskUndoCmd, taskMoveCmd, taskDeleteCmd} {
		c.ValidArgsFunction = completeTasks
	}

	taskCmd.AddCommand(taskListCmd, taskAddCmd, taskDoneCmd, taskUndoCmd, taskMoveCmd, taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	var goalID string
	if taskFlagGoal != "" {
		g, err := ctx.Planner.ResolveGoal(taskFlagGoal)
		if err != nil {
			return err
		}
		goalID = g.ID
	}

	var tasks []*model.Task
	switch {
	case taskFlagOverdue:
		tasks = linkedTo(ctx.Planner.Overdue(ctx.Today()), goalID)
	case taskFlagAll:
		if goalID != "" {
			tasks = ctx.Store.Tasks.ListForGoal(goalID)
		} else {
			tasks = ctx.Store.Tasks.ListAll()
		}
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].DueDate.Before(tasks[j].DueDate)
		})
	default:
		date, err := dateArg(args, 0)
		if err != nil {
			return err
		}
		tasks = linkedTo(ctx.Store.Tasks.ListForDate(date), goalID)
	}

	views := ctx.Planner.TaskViews(tasks)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewTasksResponse(views))
	}
	ctx.CLIFormatter().PrintTasks(views, ctx.Today())
	return nil
}

// linkedTo keeps the tasks linked to goalID. An empty goalID keeps all.
func linkedTo(tasks []*model.Task, goalID string) []*model.Task {
	if goalID == "" {
		return tasks
	}
	filtered := tasks[:0]
	for _, t := range tasks {
		if t.LinkedGoalID == goalID {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	due, err := resolveDate(taskFlagDue)
	if err != nil {
		return err
	}

	source := ctx.DefaultSource()
	if taskFlagSource != "" {
		if source, err = validate.PlannedSource(taskFlagSource); err != nil {
			return err
		}
	}

	t, err := ctx.Planner.AddTask(planner.TaskInput{
		Title:  joinArgs(args),
		Due:    due,
		Source: source,
		GoalID: taskFlagGoal,
		Focus:  taskFlagFocus,
	})
	if err != nil {
		return err
	}
	views := ctx.Planner.TaskViews([]*model.Task{t})
	return reportAction("created", model.KindTask, t.ID, output.NewTaskOutput(views[0]),
		"Added task "+t.Title+" for "+output.RelativeDay(t.DueDate, ctx.Today())+" ("+output.ShortID(t.ID)+")")
}

func setTaskDone(id string, done bool) error {
	t, err := ctx.Planner.SetTaskDone(id, done)
	if err != nil {
		return err
	}
	msg := "Done: " + t.Title
	if !done {
		msg = "Reopened: " + t.Title
	}
	views := ctx.Planner.TaskViews([]*model.Task{t})
	return reportAction("updated", model.KindTask, t.ID, output.NewTaskOutput(views[0]), msg)
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	due, err := dateArg(args, 1)
	if err != nil {
		return err
	}
	t, err := ctx.Planner.MoveTask(args[0], due)
	if err != nil {
		return err
	}
	views := ctx.Planner.TaskViews([]*model.Task{t})
	return reportAction("updated", model.KindTask, t.ID, output.NewTaskOutput(views[0]),
		"Moved "+t.Title+" to "+string(t.DueDate))
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	t, err := ctx.Planner.DeleteTask(args[0])
	if err != nil {
		return err
	}
	return reportAction("deleted", model.KindTask, t.ID, nil, "Deleted task "+t.Title)
}

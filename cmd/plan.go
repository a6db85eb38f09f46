package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/output"
	"github.com/manav03panchal/dayaim/internal/planner"
)

// Plan command flags.
var (
	planFlagNote    string
	planFlagDate    string
	planFlagEvening bool
	planPicks       dayPicks
)

// dayPicks collects --goal and --aim flags in command-line order. Each
// --aim belongs to the closest --goal before it.
type dayPicks struct {
	picks []planner.GoalAims
}

func (d *dayPicks) addGoal(ref string) {
	d.picks = append(d.picks, planner.GoalAims{Goal: ref})
}

func (d *dayPicks) addAim(aim string) error {
	if len(d.picks) == 0 {
		return fmt.Errorf("--aim %q comes before any --goal", aim)
	}
	last := &d.picks[len(d.picks)-1]
	last.Aims = append(last.Aims, aim)
	return nil
}

func (d *dayPicks) reset() { d.picks = nil }

// goalPickValue and aimPickValue are the pflag.Value halves of dayPicks.
type (
	goalPickValue struct{ d *dayPicks }
	aimPickValue  struct{ d *dayPicks }
)

func (v goalPickValue) String() string { return "" }
func (v goalPickValue) Type() string { return "id" }
func (v goalPickValue) Set(s string) error {
	v.d.addGoal(s)
	return nil
}
func (v goalPickValue) Append(s string) error { return v.Set(s) }
func (v goalPickValue) Replace(refs []string) error {
	v.d.reset()
	for _, r := range refs {
		v.d.addGoal(r)
	}
	return nil
}
func (v goalPickValue) GetSlice() []string {
	refs := make([]string, len(v.d.picks))
	for i, p := range v.d.picks {
		refs[i] = p.Goal
	}
	return refs
}

func (v aimPickValue) String() string { return "" }
func (v aimPickValue) Type() string { return "text" }
func (v aimPickValue) Set(s string) error { return v.d.addAim(s) }
func (v aimPickValue) Append(s string) error { return v.Set(s) }
func (v aimPickValue) Replace([]string) error {
	v.d.reset()
	return nil
}
func (v aimPickValue) GetSlice() []string {
	var aims []string
	for _, p := range v.d.picks {
		aims = append(aims, p.Aims...)
	}
	return aims
}

// planCmd represents the plan command.
var planCmd = &cobra.Command{
	Use:     "plan",
	Aliases: []string{"day"},
	Short:   "Manage daily plans",
	Long: `A daily plan records a day's focus goal, a note, and whether the day
was closed with a review or skipped.

Shows today's plan when called without a subcommand.

Examples:
  dayaim plan
  dayaim plan start --goal 3f2a --aim "Draft intro" --aim "Fix CI"
  dayaim plan show yesterday
  dayaim plan note "Deep work morning"
  dayaim plan close --note "good day"
  dayaim plan skip --date yesterday`,
	RunE: runPlanShow,
}

var planStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Plan a day around one or more goals",
	Long: `Plan a day: pick goals and list the aims for each one.

Every --aim becomes a focus task linked to the --goal given before it.
Picked goals are marked as focused and the first one becomes the day's
focus goal. Blank aims are ignored.

With --evening the day defaults to tomorrow and the tasks are recorded as
planned the evening before.

Examples:
  dayaim plan start --goal 3f2a --aim "Draft intro" --aim "Fix CI"
  dayaim plan start -g 3f2a -a "Draft intro" -g 9c01 -a "Run 5k"
  dayaim plan start --evening -g 3f2a -a "Review PRs"`,
	Args: cobra.NoArgs,
	RunE: runPlanStart,
}

var planShowCmd = &cobra.Command{
	Use:   "show [DATE]",
	Short: "Show the plan for a day",
	RunE:  runPlanShow,
}

var planListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored plans",
	Args:    cobra.NoArgs,
	RunE:    runPlanList,
}

var planNoteCmd = &cobra.Command{
	Use:   "note TEXT",
	Short: "Set the note on a day's plan",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlanNote,
}

var planCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close a day with a review",
	Args:  cobra.NoArgs,
	RunE:  runPlanClose,
}

var planSkipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Close a day without a review",
	Args:  cobra.NoArgs,
	RunE:  runPlanSkip,
}

var planDeleteCmd = &cobra.Command{
	Use:     "delete [DATE]",
	Aliases: []string{"rm"},
	Short:   "Delete the plan for a day",
	RunE:    runPlanDelete,
}

func init() {
	planStartCmd.Flags().VarP(goalPickValue{&planPicks}, "goal", "g", "Goal to work on (repeatable)")
	planStartCmd.Flags().VarP(aimPickValue{&planPicks}, "aim", "a", "Aim for the preceding --goal (repeatable)")
	planStartCmd.Flags().StringVarP(&planFlagDate, "date", "d", "", "Day to plan (default today, tomorrow with --evening)")
	planStartCmd.Flags().BoolVar(&planFlagEvening, "evening", false, "Plan tomorrow from the evening")
	_ = planStartCmd.RegisterFlagCompletionFunc("goal", completeGoals)

	planNoteCmd.Flags().StringVarP(&planFlagDate, "date", "d", "", "Day of the plan (default today)")
	planCloseCmd.Flags().StringVarP(&planFlagDate, "date", "d", "", "Day to close (default today)")
	planCloseCmd.Flags().StringVarP(&planFlagNote, "note", "n", "", "Review note")
	planSkipCmd.Flags().StringVarP(&planFlagDate, "date", "d", "", "Day to skip (default today)")

	planCmd.AddCommand(planStartCmd, planShowCmd, planListCmd, planNoteCmd, planCloseCmd, planSkipCmd, planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}

// focusGoal returns the plan's focus goal, or nil when unset or deleted.
func focusGoal(p *model.DailyPlan) *model.Goal {
	if p.FocusGoalID == "" {
		return nil
	}
	g, err := ctx.Store.Goals.GetByID(p.FocusGoalID)
	if err != nil {
		return nil
	}
	return g
}

func printPlan(p *model.DailyPlan, stored bool) error {
	focus := focusGoal(p)
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewPlanOutput(p, focus, stored))
	}
	ctx.CLIFormatter().PrintPlan(p, focus, ctx.Today())
	return nil
}

func runPlanStart(cmd *cobra.Command, args []string) error {
	defer planPicks.reset()

	source := model.PlannedSourceMorning
	date := ctx.Today()
	if planFlagEvening {
		source = model.PlannedSourceEvening
		date = date.AddDays(1)
	}
	if planFlagDate != "" {
		var err error
		if date, err = resolveDate(planFlagDate); err != nil {
			return err
		}
	}

	res, err := ctx.Planner.PlanDay(date, planPicks.picks, source)
	if err != nil {
		return err
	}

	titles := make([]string, len(res.Goals))
	for i, g := range res.Goals {
		titles[i] = g.Title
	}
	data := map[string]any{
		"plan":  output.NewPlanOutput(res.Plan, focusGoal(res.Plan), true),
		"tasks": output.NewTasksResponse(ctx.Planner.TaskViews(res.Tasks)).Tasks,
	}
	return reportAction("created", model.KindPlan, string(res.Plan.Date), data,
		fmt.Sprintf("Planned %s: %d aims across %s", output.RelativeDay(date, ctx.Today()), len(res.Tasks), strings.Join(titles, ", ")))
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args, 0)
	if err != nil {
		return err
	}
	_, getErr := ctx.Store.Plans.GetByDate(date)
	return printPlan(ctx.Planner.PlanFor(date), getErr == nil)
}

func runPlanList(cmd *cobra.Command, args []string) error {
	plans := ctx.Store.Plans.ListAll()
	if ctx.IsJSON() {
		outs := make([]*output.PlanOutput, len(plans))
		for i, p := range plans {
			outs[i] = output.NewPlanOutput(p, focusGoal(p), true)
		}
		return ctx.Formatter.JSON(map[string]any{"plans": outs, "count": len(outs)})
	}

	f := ctx.CLIFormatter()
	if len(plans) == 0 {
		f.Muted("No plans yet.")
		f.Muted("Use 'dayaim plan start --goal <id>' to start one.")
		return nil
	}
	rows := make([]output.TableRow, len(plans))
	for i, p := range plans {
		focus := "-"
		if g := focusGoal(p); g != nil {
			focus = g.Title
		} else if p.FocusGoalID != "" {
			focus = output.MissingLabel
		}
		rows[i] = output.TableRow{Columns: []string{string(p.Date), f.PlanStatus(p), focus, p.Note}}
	}
	f.PrintTable([]string{"DATE", "STATUS", "FOCUS", "NOTE"}, rows)
	return nil
}

func runPlanNote(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(planFlagDate)
	if err != nil {
		return err
	}
	p, err := ctx.Planner.SetPlanNote(date, joinArgs(args))
	if err != nil {
		return err
	}
	return reportAction("updated", model.KindPlan, string(p.Date), output.NewPlanOutput(p, focusGoal(p), true),
		"Noted plan for "+output.RelativeDay(date, ctx.Today()))
}

func runPlanClose(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(planFlagDate)
	if err != nil {
		return err
	}
	p, err := ctx.Planner.ClosePlan(date, planFlagNote)
	if err != nil {
		return err
	}
	if !ctx.IsJSON() {
		sum := ctx.Planner.Day(date).Summary()
		ctx.CLIFormatter().Muted(fmt.Sprintf("Tasks %d/%d, habits %d/%d",
			sum.TasksDone, sum.TasksTotal, sum.HabitsDone, sum.HabitsTotal))
	}
	return reportAction("updated", model.KindPlan, string(p.Date), output.NewPlanOutput(p, focusGoal(p), true),
		"Closed "+output.RelativeDay(date, ctx.Today()))
}

func runPlanSkip(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(planFlagDate)
	if err != nil {
		return err
	}
	p, err := ctx.Planner.SkipPlan(date)
	if err != nil {
		return err
	}
	return reportAction("updated", model.KindPlan, string(p.Date), output.NewPlanOutput(p, focusGoal(p), true),
		"Skipped review for "+output.RelativeDay(date, ctx.Today()))
}

func runPlanDelete(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args, 0)
	if err != nil {
		return err
	}
	if _, err := ctx.Store.Plans.GetByDate(date); err != nil {
		return errors.NewUserErrorWithField("date", string(date), "No plan stored for that day", "Run 'dayaim plan list' to see stored plans")
	}
	if err := ctx.Store.Plans.DeleteByDate(date); err != nil {
		return err
	}
	return reportAction("deleted", model.KindPlan, string(date), nil, "Deleted plan for "+string(date))
}

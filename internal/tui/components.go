package tui

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/output"
	"github.com/manav03panchal/dayaim/internal/planner"
)

// PlanComponent displays the plan summary for a day.
type PlanComponent struct {
	Day   *planner.Day
	Today model.Date
	Width int
}

// View renders the plan component.
func (pc *PlanComponent) View() string {
	var content strings.Builder
	d := pc.Day

	status := StyleWarning.Render("open")
	box := StylePlanBox
	switch d.Plan.ClosedStatus {
	case model.ClosedStatusClosed:
		status = StyleSuccess.Render("closed")
		box = StyleClosedPlanBox
	case model.ClosedStatusSkippedClose:
		status = StyleSubtitle.Render("skipped")
		box = StyleClosedPlanBox
	}
	content.WriteString(fmt.Sprintf("%s  %s\n", StyleSubtitle.Render(output.RelativeDay(d.Date, pc.Today)), status))

	content.WriteString("Focus: ")
	switch {
	case d.FocusGoal != nil:
		content.WriteString(StyleGoal.Render(d.FocusGoal.Title))
	case d.FocusGoalMissing:
		content.WriteString(StyleWarning.Render(output.MissingLabel))
	default:
		content.WriteString(StyleSubtitle.Render("none"))
	}

	if d.Plan.Note != "" {
		content.WriteString("\n")
		content.WriteString(StyleNote.Render(fmt.Sprintf("%q", d.Plan.Note)))
	}

	sum := d.Summary()
	if sum.TasksTotal > 0 {
		pct := float64(sum.TasksDone) / float64(sum.TasksTotal) * 100
		content.WriteString(fmt.Sprintf("\n%s %d/%d", ProgressBar(pct, 20), sum.TasksDone, sum.TasksTotal))
	}

	return box.Width(boxWidth(pc.Width)).Render(content.String())
}

// ListComponent displays the day's tasks and due habits with a cursor.
type ListComponent struct {
	Day    *planner.Day
	Cursor int
	Width  int
}

// View renders the list component.
func (lc *ListComponent) View() string {
	var content strings.Builder
	sum := lc.Day.Summary()

	content.WriteString(StyleSection.Render(fmt.Sprintf("Tasks %d/%d", sum.TasksDone, sum.TasksTotal)))
	content.WriteString("\n")
	if len(lc.Day.Tasks) == 0 {
		content.WriteString(StyleSubtitle.Render("Nothing planned"))
		content.WriteString("\n")
	}
	for i, v := range lc.Day.Tasks {
		content.WriteString(lc.row(i, taskRow(v)))
	}

	content.WriteString("\n")
	content.WriteString(StyleSection.Render(fmt.Sprintf("Habits %d/%d", sum.HabitsDone, sum.HabitsTotal)))
	content.WriteString("\n")
	if len(lc.Day.Habits) == 0 {
		content.WriteString(StyleSubtitle.Render("No habits due"))
		content.WriteString("\n")
	}
	for i, v := range lc.Day.Habits {
		content.WriteString(lc.row(len(lc.Day.Tasks)+i, habitRow(v)))
	}

	return StyleListBox.Width(boxWidth(lc.Width)).Render(strings.TrimRight(content.String(), "\n"))
}

func (lc *ListComponent) row(index int, text string) string {
	if index == lc.Cursor {
		return StyleSelected.Render("> ") + text + "\n"
	}
	return "  " + text + "\n"
}

func taskRow(v planner.TaskView) string {
	title := v.Task.Title
	if v.Task.IsFocusTask {
		title = "★ " + title
	}
	if v.Task.IsDone {
		title = StyleDone.Render(title)
	}

	line := checkbox(v.Task.IsDone) + " " + title
	switch {
	case v.Goal != nil:
		line += StyleSubtitle.Render("  · " + v.Goal.Title)
	case v.GoalMissing:
		line += StyleWarning.Render("  · " + output.MissingLabel)
	}
	return line
}

func habitRow(v planner.HabitView) string {
	switch {
	case v.Log == nil:
		return "[ ] " + v.Habit.Title
	case v.Log.Status == model.HabitLogDone:
		return "[x] " + StyleDone.Render(v.Habit.Title)
	default:
		return "[-] " + StyleMissed.Render(v.Habit.Title)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func boxWidth(width int) int {
	if width <= 4 {
		return 0
	}
	return width - 4
}

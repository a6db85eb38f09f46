package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/parser"
	"github.com/manav03panchal/dayaim/internal/planner"
	"github.com/manav03panchal/dayaim/internal/storage"
)

// MissingLabel stands in for a referenced record that no longer exists.
const MissingLabel = "(missing)"

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleError   = lipgloss.NewStyle().Foreground(colorError)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleBold    = lipgloss.NewStyle().Bold(true)
	styleGoal    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleNote    = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// GoalTitle formats a goal title.
func (c *CLIFormatter) GoalTitle(title string) string {
	return c.render(styleGoal, title)
}

// Note formats a note.
func (c *CLIFormatter) Note(text string) string {
	return c.render(styleNote, text)
}

// Missing formats the placeholder for a dangling reference.
func (c *CLIFormatter) Missing() string {
	return c.render(styleWarning, MissingLabel)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// =============================================================================
// Goals
// =============================================================================

// PrintGoal prints one goal in detail.
func (c *CLIFormatter) PrintGoal(g *model.Goal) {
	c.Printf("%s  %s\n", c.GoalTitle(g.Title), c.render(styleMuted, g.ID))
	c.Printf("  Status: %s\n", g.Status)
	if g.IsPinned {
		c.Println("  Pinned: yes")
	}
	if g.Why != "" {
		c.Printf("  Why: %s\n", c.Note(g.Why))
	}
	if g.LastFocusedAt != nil {
		c.Printf("  Last focused: %s\n", FormatTimeShort(*g.LastFocusedAt))
	}
	c.Printf("  Created: %s\n", FormatTimeShort(g.CreatedAt))
}

// PrintGoals prints goals as a table.
func (c *CLIFormatter) PrintGoals(goals []*model.Goal) {
	if len(goals) == 0 {
		c.Muted("No goals.")
		c.Muted("Use 'dayaim goal add <title>' to create one.")
		return
	}

	rows := make([]TableRow, len(goals))
	for i, g := range goals {
		pin := ""
		if g.IsPinned {
			pin = "*"
		}
		focused := "-"
		if g.LastFocusedAt != nil {
			focused = FormatTimeShort(*g.LastFocusedAt)
		}
		rows[i] = TableRow{Columns: []string{ShortID(g.ID), string(g.Status), pin, g.Title, focused}}
	}
	c.PrintTable([]string{"ID", "STATUS", "PIN", "TITLE", "LAST FOCUS"}, rows)
}

// =============================================================================
// Tasks
// =============================================================================

// TaskLine formats a task as a single line.
func (c *CLIFormatter) TaskLine(v planner.TaskView) string {
	var sb strings.Builder
	sb.WriteString(checkbox(v.Task.IsDone))
	sb.WriteString(" ")
	sb.WriteString(c.render(styleMuted, ShortID(v.Task.ID)))
	sb.WriteString("  ")
	if v.Task.IsFocusTask {
		sb.WriteString(c.render(styleBold, v.Task.Title))
	} else {
		sb.WriteString(v.Task.Title)
	}
	switch {
	case v.Goal != nil:
		sb.WriteString("  · " + c.GoalTitle(v.Goal.Title))
	case v.GoalMissing:
		sb.WriteString("  · " + c.Missing())
	}
	return sb.String()
}

// PrintTasks prints tasks grouped under their due dates.
func (c *CLIFormatter) PrintTasks(views []planner.TaskView, today model.Date) {
	if len(views) == 0 {
		c.Muted("No tasks.")
		return
	}

	var current model.Date
	for i, v := range views {
		if i == 0 || v.Task.DueDate != current {
			current = v.Task.DueDate
			if i > 0 {
				c.Println()
			}
			c.Println(c.render(styleBold, fmt.Sprintf("%s (%s)", current, RelativeDay(current, today))))
		}
		c.Println("  " + c.TaskLine(v))
	}
}

// =============================================================================
// Plans
// =============================================================================

// PlanStatus formats a plan's closed status.
func (c *CLIFormatter) PlanStatus(p *model.DailyPlan) string {
	switch p.ClosedStatus {
	case model.ClosedStatusClosed:
		return c.render(styleSuccess, "closed")
	case model.ClosedStatusSkippedClose:
		return c.render(styleMuted, "skipped")
	default:
		return c.render(styleWarning, "open")
	}
}

// PrintPlan prints a plan with its focus goal resolved.
func (c *CLIFormatter) PrintPlan(p *model.DailyPlan, focus *model.Goal, today model.Date) {
	c.Printf("%s (%s)  %s\n", c.render(styleTitle, FormatDayHeading(p.Date)), RelativeDay(p.Date, today), c.PlanStatus(p))
	c.Printf("  Focus: %s\n", c.focusLabel(p, focus))
	if p.Note != "" {
		c.Printf("  Note: %s\n", c.Note(p.Note))
	}
	if p.ClosedAt != nil {
		c.Printf("  Closed: %s\n", FormatTimeShort(*p.ClosedAt))
	}
}

func (c *CLIFormatter) focusLabel(p *model.DailyPlan, focus *model.Goal) string {
	switch {
	case focus != nil:
		return c.GoalTitle(focus.Title)
	case p.FocusGoalID != "":
		return c.Missing()
	default:
		return c.render(styleMuted, "none")
	}
}

// =============================================================================
// Habits
// =============================================================================

// PrintHabits prints habits with their schedules and current streaks.
func (c *CLIFormatter) PrintHabits(habits []*model.Habit, streaks map[string]int) {
	if len(habits) == 0 {
		c.Muted("No habits.")
		c.Muted("Use 'dayaim habit add <title>' to create one.")
		return
	}

	rows := make([]TableRow, len(habits))
	for i, h := range habits {
		rows[i] = TableRow{Columns: []string{
			ShortID(h.ID), string(h.Status), ScheduleLabel(h), h.Title, fmt.Sprintf("%d", streaks[h.ID]),
		}}
	}
	c.PrintTable([]string{"ID", "STATUS", "SCHEDULE", "TITLE", "STREAK"}, rows)
}

// ScheduleLabel describes a habit's schedule.
func ScheduleLabel(h *model.Habit) string {
	switch h.ScheduleType {
	case model.ScheduleDaily:
		return "daily"
	case model.ScheduleWeekdays:
		return "weekdays"
	default:
		return parser.FormatWeekdays(h.ScheduleDays)
	}
}

// HabitLine formats a due habit with its log state.
func (c *CLIFormatter) HabitLine(v planner.HabitView) string {
	mark := "[ ]"
	if v.Log != nil {
		switch v.Log.Status {
		case model.HabitLogDone:
			mark = "[x]"
		case model.HabitLogMissed:
			mark = "[-]"
		}
	}
	return fmt.Sprintf("%s %s  %s", mark, c.render(styleMuted, ShortID(v.Habit.ID)), v.Habit.Title)
}

// PrintHabitLogs prints logs with habit titles resolved.
func (c *CLIFormatter) PrintHabitLogs(logs []*model.HabitLog, habits map[string]*model.Habit) {
	if len(logs) == 0 {
		c.Muted("No habit logs.")
		return
	}

	rows := make([]TableRow, len(logs))
	for i, l := range logs {
		title := MissingLabel
		if h, ok := habits[l.HabitID]; ok {
			title = h.Title
		}
		rows[i] = TableRow{Columns: []string{string(l.Date), string(l.Status), title}}
	}
	c.PrintTable([]string{"DATE", "STATUS", "HABIT"}, rows)
}

// =============================================================================
// Day
// =============================================================================

// PrintDay prints the full view of one day.
func (c *CLIFormatter) PrintDay(d *planner.Day, today model.Date) {
	c.PrintPlan(d.Plan, d.FocusGoal, today)
	sum := d.Summary()

	c.Println()
	c.Println(c.render(styleBold, fmt.Sprintf("Tasks %d/%d", sum.TasksDone, sum.TasksTotal)))
	if len(d.Tasks) == 0 {
		c.Muted("  Nothing planned.")
	}
	for _, v := range d.Tasks {
		c.Println("  " + c.TaskLine(v))
	}

	c.Println()
	c.Println(c.render(styleBold, fmt.Sprintf("Habits %d/%d", sum.HabitsDone, sum.HabitsTotal)))
	if len(d.Habits) == 0 {
		c.Muted("  No habits due.")
	}
	for _, v := range d.Habits {
		c.Println("  " + c.HabitLine(v))
	}

	if sum.TasksTotal > 0 {
		c.Println()
		pct := float64(sum.TasksDone) / float64(sum.TasksTotal) * 100
		c.Printf("%s %.0f%%\n", ProgressBar(pct, 20), pct)
	}
}

// =============================================================================
// Integrity
// =============================================================================

// PrintIntegrity prints an integrity report.
func (c *CLIFormatter) PrintIntegrity(r *storage.IntegrityReport) {
	rows := make([]TableRow, len(r.Collections))
	for i, col := range r.Collections {
		state := "ok"
		switch {
		case !col.Present:
			state = "empty"
		case !col.Decodes:
			state = "corrupt"
		case len(col.Duplicates) > 0:
			state = fmt.Sprintf("%d duplicate keys", len(col.Duplicates))
		}
		if col.Quarantined {
			state += " (quarantined copy)"
		}
		rows[i] = TableRow{Columns: []string{col.Key, fmt.Sprintf("%d", col.Count), state}}
	}
	c.PrintTable([]string{"COLLECTION", "RECORDS", "STATE"}, rows)

	c.Println()
	if r.DanglingRefs > 0 {
		c.Muted(fmt.Sprintf("%d references point at deleted goals or habits.", r.DanglingRefs))
	}
	if r.Healthy {
		c.Success("Store is healthy")
	} else {
		c.Error("Store has problems")
	}
}

// =============================================================================
// Tables
// =============================================================================

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// TableRow is one row of table output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s)) + "  "
	}

	var header strings.Builder
	for i, h := range headers {
		header.WriteString(pad(h, widths[i]))
	}
	c.Println(c.render(styleBold, strings.TrimRight(header.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var line strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				line.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(line.String(), " "))
	}
}

package output

import (
	"time"

	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/planner"
	"github.com/manav03panchal/dayaim/internal/storage"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// GoalOutput represents a goal in JSON output.
type GoalOutput struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Why           string `json:"why,omitempty"`
	Status        string `json:"status"`
	Pinned        bool   `json:"pinned"`
	LastFocusedAt string `json:"last_focused_at,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// NewGoalOutput creates a GoalOutput from a Goal.
func NewGoalOutput(g *model.Goal) *GoalOutput {
	return &GoalOutput{
		ID:            g.ID,
		Title:         g.Title,
		Why:           g.Why,
		Status:        string(g.Status),
		Pinned:        g.IsPinned,
		LastFocusedAt: formatOptionalTime(g.LastFocusedAt),
		CreatedAt:     g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     g.UpdatedAt.Format(time.RFC3339),
	}
}

// TaskOutput represents a task in JSON output. A linked goal that no longer
// exists keeps its id and sets goal_missing.
type TaskOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DueDate     string `json:"due_date"`
	Done        bool   `json:"done"`
	Focus       bool   `json:"focus"`
	Source      string `json:"source"`
	GoalID      string `json:"goal_id,omitempty"`
	GoalTitle   string `json:"goal_title,omitempty"`
	GoalMissing bool   `json:"goal_missing,omitempty"`
}

// NewTaskOutput creates a TaskOutput from a resolved task.
func NewTaskOutput(v planner.TaskView) *TaskOutput {
	out := &TaskOutput{
		ID:          v.Task.ID,
		Title:       v.Task.Title,
		DueDate:     string(v.Task.DueDate),
		Done:        v.Task.IsDone,
		Focus:       v.Task.IsFocusTask,
		Source:      string(v.Task.PlannedSource),
		GoalID:      v.Task.LinkedGoalID,
		GoalMissing: v.GoalMissing,
	}
	if v.Goal != nil {
		out.GoalTitle = v.Goal.Title
	}
	return out
}

// HabitOutput represents a habit in JSON output.
type HabitOutput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Schedule string `json:"schedule"`
	Days     []int  `json:"days,omitempty"`
	Status   string `json:"status"`
	Streak   int    `json:"streak"`
	// LogStatus is set only in day views.
	LogStatus string `json:"log_status,omitempty"`
}

// NewHabitOutput creates a HabitOutput from a Habit.
func NewHabitOutput(h *model.Habit, streak int) *HabitOutput {
	return &HabitOutput{
		ID:       h.ID,
		Title:    h.Title,
		Schedule: string(h.ScheduleType),
		Days:     h.ScheduleDays,
		Status:   string(h.Status),
		Streak:   streak,
	}
}

// HabitLogOutput represents a habit log in JSON output.
type HabitLogOutput struct {
	ID      string `json:"id"`
	HabitID string `json:"habit_id"`
	Date    string `json:"date"`
	Status  string `json:"status"`
}

// NewHabitLogOutput creates a HabitLogOutput from a HabitLog.
func NewHabitLogOutput(l *model.HabitLog) *HabitLogOutput {
	return &HabitLogOutput{
		ID:      l.ID,
		HabitID: l.HabitID,
		Date:    string(l.Date),
		Status:  string(l.Status),
	}
}

// PlanOutput represents a daily plan in JSON output.
type PlanOutput struct {
	Date             string `json:"date"`
	Status           string `json:"status"`
	FocusGoalID      string `json:"focus_goal_id,omitempty"`
	FocusGoalTitle   string `json:"focus_goal_title,omitempty"`
	FocusGoalMissing bool   `json:"focus_goal_missing,omitempty"`
	Note             string `json:"note,omitempty"`
	ClosedAt         string `json:"closed_at,omitempty"`
	Stored           bool   `json:"stored"`
}

// NewPlanOutput creates a PlanOutput from a plan and its resolved focus goal.
func NewPlanOutput(p *model.DailyPlan, focus *model.Goal, stored bool) *PlanOutput {
	out := &PlanOutput{
		Date:        string(p.Date),
		Status:      string(p.ClosedStatus),
		FocusGoalID: p.FocusGoalID,
		Note:        p.Note,
		ClosedAt:    formatOptionalTime(p.ClosedAt),
		Stored:      stored,
	}
	if focus != nil {
		out.FocusGoalTitle = focus.Title
	} else if p.FocusGoalID != "" {
		out.FocusGoalMissing = true
	}
	return out
}

// GoalsResponse represents the goal list output in JSON.
type GoalsResponse struct {
	Goals []*GoalOutput `json:"goals"`
	Count int           `json:"count"`
}

// NewGoalsResponse creates a GoalsResponse.
func NewGoalsResponse(goals []*model.Goal) *GoalsResponse {
	outs := make([]*GoalOutput, len(goals))
	for i, g := range goals {
		outs[i] = NewGoalOutput(g)
	}
	return &GoalsResponse{Goals: outs, Count: len(outs)}
}

// TasksResponse represents the task list output in JSON.
type TasksResponse struct {
	Tasks []*TaskOutput `json:"tasks"`
	Count int           `json:"count"`
	Done  int           `json:"done"`
}

// NewTasksResponse creates a TasksResponse.
func NewTasksResponse(views []planner.TaskView) *TasksResponse {
	resp := &TasksResponse{Tasks: make([]*TaskOutput, len(views)), Count: len(views)}
	for i, v := range views {
		resp.Tasks[i] = NewTaskOutput(v)
		if v.Task.IsDone {
			resp.Done++
		}
	}
	return resp
}

// HabitsResponse represents the habit list output in JSON.
type HabitsResponse struct {
	Habits []*HabitOutput `json:"habits"`
	Count  int            `json:"count"`
}

// NewHabitsResponse creates a HabitsResponse.
func NewHabitsResponse(habits []*model.Habit, streaks map[string]int) *HabitsResponse {
	outs := make([]*HabitOutput, len(habits))
	for i, h := range habits {
		outs[i] = NewHabitOutput(h, streaks[h.ID])
	}
	return &HabitsResponse{Habits: outs, Count: len(outs)}
}

// HabitLogsResponse represents habit log output in JSON.
type HabitLogsResponse struct {
	Logs  []*HabitLogOutput `json:"logs"`
	Count int               `json:"count"`
}

// NewHabitLogsResponse creates a HabitLogsResponse.
func NewHabitLogsResponse(logs []*model.HabitLog) *HabitLogsResponse {
	outs := make([]*HabitLogOutput, len(logs))
	for i, l := range logs {
		outs[i] = NewHabitLogOutput(l)
	}
	return &HabitLogsResponse{Logs: outs, Count: len(outs)}
}

// DayResponse represents the day view in JSON.
type DayResponse struct {
	Date    string          `json:"date"`
	Plan    *PlanOutput     `json:"plan"`
	Tasks   []*TaskOutput   `json:"tasks"`
	Habits  []*HabitOutput  `json:"habits"`
	Summary planner.Summary `json:"summary"`
}

// NewDayResponse creates a DayResponse from a Day.
func NewDayResponse(d *planner.Day) *DayResponse {
	resp := &DayResponse{
		Date:    string(d.Date),
		Plan:    NewPlanOutput(d.Plan, d.FocusGoal, d.PlanStored),
		Tasks:   make([]*TaskOutput, len(d.Tasks)),
		Habits:  make([]*HabitOutput, len(d.Habits)),
		Summary: d.Summary(),
	}
	for i, v := range d.Tasks {
		resp.Tasks[i] = NewTaskOutput(v)
	}
	for i, v := range d.Habits {
		h := NewHabitOutput(v.Habit, 0)
		if v.Log != nil {
			h.LogStatus = string(v.Log.Status)
		}
		resp.Habits[i] = h
	}
	return resp
}

// ActionResponse reports the outcome of a mutating command.
type ActionResponse struct {
	Status string `json:"status"`
	Kind   string `json:"kind"`
	ID     string `json:"id,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintAction outputs an action result.
func (j *JSONFormatter) PrintAction(status string, kind model.Kind, id string, data any) error {
	return j.JSON(ActionResponse{Status: status, Kind: string(kind), ID: id, Data: data})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(category, errMsg, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      category,
		Message:    errMsg,
		Suggestion: suggestion,
	})
}

// PrintDay outputs a day view.
func (j *JSONFormatter) PrintDay(d *planner.Day) error {
	return j.JSON(NewDayResponse(d))
}

// PrintIntegrity outputs an integrity report.
func (j *JSONFormatter) PrintIntegrity(r *storage.IntegrityReport) error {
	return j.JSON(r)
}

package planner

import (
	"sort"

	"github.com/manav03panchal/dayaim/internal/model"
)

// TaskView is a task with its linked goal resolved.
type TaskView struct {
	Task *model.Task
	// Goal is nil when the task has no link or the linked goal is gone.
	Goal        *model.Goal
	GoalMissing bool
}

// HabitView is a habit due on the day with the day's log, if any.
type HabitView struct {
	Habit *model.Habit
	Log   *model.HabitLog
}

// Done reports whether the habit was logged done.
func (v HabitView) Done() bool {
	return v.Log != nil && v.Log.Status == model.HabitLogDone
}

// Day is the joined view of one date.
type Day struct {
	Date model.Date
	Plan *model.DailyPlan
	// PlanStored is false when Plan is a fresh default that has not been saved.
	PlanStored bool

	FocusGoal        *model.Goal
	FocusGoalMissing bool

	Tasks  []TaskView
	Habits []HabitView
	// OrphanLogs are the day's logs whose habit no longer exists or is
	// not due.
	OrphanLogs []*model.HabitLog
}

// Summary counts progress on a day.
type Summary struct {
	TasksDone   int `json:"tasks_done"`
	TasksTotal  int `json:"tasks_total"`
	HabitsDone  int `json:"habits_done"`
	HabitsTotal int `json:"habits_total"`
}

// Summary returns the day's progress counts.
func (d *Day) Summary() Summary {
	var s Summary
	s.TasksTotal = len(d.Tasks)
	for _, t := range d.Tasks {
		if t.Task.IsDone {
			s.TasksDone++
		}
	}
	s.HabitsTotal = len(d.Habits)
	for _, h := range d.Habits {
		if h.Done() {
			s.HabitsDone++
		}
	}
	return s
}

// Day assembles the view of date. References to deleted goals are flagged
// rather than treated as errors.
func (p *Planner) Day(date model.Date) *Day {
	d := &Day{Date: date}

	if plan, err := p.store.Plans.GetByDate(date); err == nil {
		d.Plan = plan
		d.PlanStored = true
	} else {
		d.Plan = model.NewDailyPlan(date)
	}

	goals := p.goalIndex()

	if id := d.Plan.FocusGoalID; id != "" {
		if g, ok := goals[id]; ok {
			d.FocusGoal = g
		} else {
			d.FocusGoalMissing = true
		}
	}

	tasks := p.store.Tasks.ListForDate(date)
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.IsFocusTask != b.IsFocusTask {
			return a.IsFocusTask
		}
		if a.IsDone != b.IsDone {
			return !a.IsDone
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	d.Tasks = taskViews(tasks, goals)

	logs := make(map[string]*model.HabitLog)
	for _, l := range p.store.HabitLogs.ListForDate(date) {
		logs[l.HabitID] = l
	}
	for _, h := range p.store.Habits.ListDueOn(date) {
		d.Habits = append(d.Habits, HabitView{Habit: h, Log: logs[h.ID]})
		delete(logs, h.ID)
	}
	for _, l := range logs {
		d.OrphanLogs = append(d.OrphanLogs, l)
	}
	sort.Slice(d.OrphanLogs, func(i, j int) bool {
		return d.OrphanLogs[i].HabitID < d.OrphanLogs[j].HabitID
	})

	return d
}

// TaskViews resolves the linked goal of each task.
func (p *Planner) TaskViews(tasks []*model.Task) []TaskView {
	return taskViews(tasks, p.goalIndex())
}

func taskViews(tasks []*model.Task, goals map[string]*model.Goal) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		v := TaskView{Task: t}
		if t.LinkedGoalID != "" {
			if g, ok := goals[t.LinkedGoalID]; ok {
				v.Goal = g
			} else {
				v.GoalMissing = true
			}
		}
		views = append(views, v)
	}
	return views
}

func (p *Planner) goalIndex() map[string]*model.Goal {
	goals := make(map[string]*model.Goal)
	for _, g := range p.store.Goals.ListAll() {
		goals[g.ID] = g
	}
	return goals
}

// Overdue returns open tasks due before date, oldest first.
func (p *Planner) Overdue(date model.Date) []*model.Task {
	var out []*model.Task
	for _, t := range p.store.Tasks.ListAll() {
		if !t.IsDone && t.DueDate.Before(date) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// Streak counts consecutive days ending at date on which the habit was due
// and logged done. Days the habit was not due are skipped. An unlogged
// date itself does not break the streak.
func (p *Planner) Streak(habit *model.Habit, date model.Date) int {
	done := make(map[model.Date]bool)
	for _, l := range p.store.HabitLogs.ListForHabit(habit.ID) {
		if l.Status == model.HabitLogDone {
			done[l.Date] = true
		}
	}

	streak := 0
	for i, d := 0, date; i < maxStreakDays; i, d = i+1, d.AddDays(-1) {
		if !habit.IsScheduledOn(d.Weekday()) {
			continue
		}
		if done[d] {
			streak++
			continue
		}
		if d == date {
			continue
		}
		break
	}
	return streak
}

const maxStreakDays = 366

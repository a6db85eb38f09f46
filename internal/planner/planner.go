// Package planner implements the day-planning flows on top of the Store:
// creating records with fresh ids and timestamps, applying status changes,
// and assembling the joined view of a single day.
package planner

import (
	"time"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/logging"
	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/storage"
	"github.com/manav03panchal/dayaim/internal/validate"
)

// Planner applies user actions to a Store.
type Planner struct {
	store *storage.Store
	now   func() time.Time
	newID func() string
}

// New creates a Planner. now and newID supply timestamps and identifiers.
func New(store *storage.Store, now func() time.Time, newID func() string) *Planner {
	return &Planner{store: store, now: now, newID: newID}
}

// Store returns the underlying store.
func (p *Planner) Store() *storage.Store {
	return p.store
}

// =============================================================================
// Goals
// =============================================================================

// AddGoal creates an active goal.
func (p *Planner) AddGoal(title, why string) (*model.Goal, error) {
	title = validate.SanitizeTitle(title)
	why = validate.SanitizeNote(why)
	if err := validate.Title("goal", title); err != nil {
		return nil, err
	}
	if err := validate.Note(why); err != nil {
		return nil, err
	}

	g := model.NewGoal(p.newID(), title, why, p.now())
	if err := p.store.Goals.Upsert(g); err != nil {
		return nil, err
	}
	logging.Info("goal added", logging.KeyKind, model.KindGoal, logging.KeyID, g.ID)
	return g, nil
}

// EditGoal replaces a goal's title and why. Empty arguments keep the
// current value.
func (p *Planner) EditGoal(id, title, why string) (*model.Goal, error) {
	return p.updateGoal(id, func(g *model.Goal) error {
		if title != "" {
			title = validate.SanitizeTitle(title)
			if err := validate.Title("goal", title); err != nil {
				return err
			}
			g.Title = title
		}
		if why != "" {
			why = validate.SanitizeNote(why)
			if err := validate.Note(why); err != nil {
				return err
			}
			g.Why = why
		}
		return nil
	})
}

// SetGoalStatus moves a goal to status. Any transition is accepted.
func (p *Planner) SetGoalStatus(id string, status model.GoalStatus) (*model.Goal, error) {
	return p.updateGoal(id, func(g *model.Goal) error {
		g.Status = status
		return nil
	})
}

// SetGoalPinned pins or unpins a goal.
func (p *Planner) SetGoalPinned(id string, pinned bool) (*model.Goal, error) {
	return p.updateGoal(id, func(g *model.Goal) error {
		g.IsPinned = pinned
		return nil
	})
}

// FocusGoal makes a goal the focus of date's plan and records the focus
// time on the goal.
func (p *Planner) FocusGoal(id string, date model.Date) (*model.Goal, *model.DailyPlan, error) {
	g, err := p.ResolveGoal(id)
	if err != nil {
		return nil, nil, err
	}

	g.Focus(p.now())
	if err := p.store.Goals.Upsert(g); err != nil {
		return nil, nil, err
	}

	plan := p.PlanFor(date)
	plan.FocusGoalID = g.ID
	if err := p.store.Plans.Upsert(plan); err != nil {
		return nil, nil, err
	}
	return g, plan, nil
}

// DeleteGoal removes a goal. Tasks and plans keep their reference to it.
func (p *Planner) DeleteGoal(id string) (*model.Goal, error) {
	g, err := p.ResolveGoal(id)
	if err != nil {
		return nil, err
	}
	if err := p.store.Goals.DeleteByID(g.ID); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Planner) updateGoal(id string, fn func(*model.Goal) error) (*model.Goal, error) {
	g, err := p.ResolveGoal(id)
	if err != nil {
		return nil, err
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	g.Touch(p.now())
	if err := p.store.Goals.Upsert(g); err != nil {
		return nil, err
	}
	return g, nil
}

// =============================================================================
// Tasks
// =============================================================================

// TaskInput describes a new task.
type TaskInput struct {
	Title  string
	Due    model.Date
	Source model.PlannedSource
	GoalID string
	Focus  bool
}

// AddTask creates a task. A goal id, when given, is resolved by prefix and
// must exist at creation time.
func (p *Planner) AddTask(in TaskInput) (*model.Task, error) {
	title := validate.SanitizeTitle(in.Title)
	if err := validate.Title("task", title); err != nil {
		return nil, err
	}
	if err := in.Due.Validate(); err != nil {
		return nil, errors.NewUserErrorWithField("due", string(in.Due), "Invalid due date", "Use YYYY-MM-DD")
	}
	if !in.Source.Valid() {
		in.Source = model.PlannedSourceManual
	}

	t := model.NewTask(p.newID(), title, in.Due, in.Source, p.now())
	t.IsFocusTask = in.Focus
	if in.GoalID != "" {
		g, err := p.ResolveGoal(in.GoalID)
		if err != nil {
			return nil, err
		}
		t.LinkedGoalID = g.ID
	}

	if err := p.store.Tasks.Upsert(t); err != nil {
		return nil, err
	}
	logging.Info("task added", logging.KeyKind, model.KindTask, logging.KeyID, t.ID, logging.KeyDate, t.DueDate)
	return t, nil
}

// SetTaskDone marks a task done or not done.
func (p *Planner) SetTaskDone(id string, done bool) (*model.Task, error) {
	t, err := p.ResolveTask(id)
	if err != nil {
		return nil, err
	}
	t.SetDone(done, p.now())
	if err := p.store.Tasks.Upsert(t); err != nil {
		return nil, err
	}
	return t, nil
}

// MoveTask changes a task's due date.
func (p *Planner) MoveTask(id string, due model.Date) (*model.Task, error) {
	t, err := p.ResolveTask(id)
	if err != nil {
		return nil, err
	}
	t.DueDate = due
	t.Touch(p.now())
	if err := p.store.Tasks.Upsert(t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTask removes a task.
func (p *Planner) DeleteTask(id string) (*model.Task, error) {
	t, err := p.ResolveTask(id)
	if err != nil {
		return nil, err
	}
	if err := p.store.Tasks.DeleteByID(t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// =============================================================================
// Plans
// =============================================================================

// PlanFor returns the stored plan for date, or a new open plan that has not
// been saved yet.
func (p *Planner) PlanFor(date model.Date) *model.DailyPlan {
	plan, err := p.store.Plans.GetByDate(date)
	if err != nil {
		return model.NewDailyPlan(date)
	}
	return plan
}

// GoalAims pairs a goal reference with the aims to plan for it.
type GoalAims struct {
	Goal string
	Aims []string
}

// DayPlanResult holds the records written by PlanDay.
type DayPlanResult struct {
	Plan  *model.DailyPlan
	Goals []*model.Goal
	Tasks []*model.Task
}

// PlanDay runs the planning flow for date: every picked goal is stamped as
// focused, each non-blank aim becomes a focus task linked to its goal, and
// the plan's focus is set to the first goal. Goals are written before tasks
// and tasks before the plan. Nothing is written when a goal cannot be
// resolved or an aim is invalid. A goal picked twice has its aims merged.
func (p *Planner) PlanDay(date model.Date, picks []GoalAims, source model.PlannedSource) (*DayPlanResult, error) {
	if len(picks) == 0 {
		return nil, errors.NewUserError("No goals picked", "Pass at least one --goal")
	}
	if err := date.Validate(); err != nil {
		return nil, errors.NewUserErrorWithField("date", string(date), "Invalid date", "Use YYYY-MM-DD")
	}
	if !source.Valid() || source == model.PlannedSourceManual {
		source = model.PlannedSourceMorning
	}

	var goals []*model.Goal
	aims := map[string][]string{}
	for _, pick := range picks {
		g, err := p.ResolveGoal(pick.Goal)
		if err != nil {
			return nil, err
		}
		if _, seen := aims[g.ID]; !seen {
			goals = append(goals, g)
			aims[g.ID] = []string{}
		}
		for _, aim := range pick.Aims {
			title := validate.SanitizeTitle(aim)
			if title == "" {
				continue
			}
			if err := validate.Title("task", title); err != nil {
				return nil, err
			}
			aims[g.ID] = append(aims[g.ID], title)
		}
	}

	now := p.now()
	res := &DayPlanResult{Goals: goals}
	for _, g := range goals {
		g.Focus(now)
		if err := p.store.Goals.Upsert(g); err != nil {
			return nil, err
		}
	}
	for _, g := range goals {
		for _, title := range aims[g.ID] {
			t := model.NewTask(p.newID(), title, date, source, now)
			t.LinkedGoalID = g.ID
			t.IsFocusTask = true
			if err := p.store.Tasks.Upsert(t); err != nil {
				return nil, err
			}
			res.Tasks = append(res.Tasks, t)
		}
	}

	plan := p.PlanFor(date)
	plan.FocusGoalID = goals[0].ID
	if err := p.store.Plans.Upsert(plan); err != nil {
		return nil, err
	}
	res.Plan = plan
	logging.Info("day planned", logging.KeyKind, model.KindPlan, logging.KeyDate, date, "goals", len(goals), "tasks", len(res.Tasks))
	return res, nil
}

// SetPlanNote sets the note on date's plan.
func (p *Planner) SetPlanNote(date model.Date, note string) (*model.DailyPlan, error) {
	note = validate.SanitizeNote(note)
	if err := validate.Note(note); err != nil {
		return nil, err
	}
	plan := p.PlanFor(date)
	plan.Note = note
	if err := p.store.Plans.Upsert(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ClosePlan closes date's plan with an optional note.
func (p *Planner) ClosePlan(date model.Date, note string) (*model.DailyPlan, error) {
	note = validate.SanitizeNote(note)
	if err := validate.Note(note); err != nil {
		return nil, err
	}
	plan := p.PlanFor(date)
	plan.Close(p.now(), note)
	if err := p.store.Plans.Upsert(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// SkipPlan closes date's plan without a review.
func (p *Planner) SkipPlan(date model.Date) (*model.DailyPlan, error) {
	plan := p.PlanFor(date)
	plan.SkipClose(p.now())
	if err := p.store.Plans.Upsert(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// =============================================================================
// Habits
// =============================================================================

// AddHabit creates an active habit.
func (p *Planner) AddHabit(title string, schedule model.ScheduleType, days []int) (*model.Habit, error) {
	title = validate.SanitizeTitle(title)
	if err := validate.Title("habit", title); err != nil {
		return nil, err
	}
	if schedule != model.ScheduleCustom {
		days = nil
	}

	h := model.NewHabit(p.newID(), title, schedule, days, p.now())
	if err := h.Validate(); err != nil {
		return nil, &errors.UserError{
			Message:    err.Error(),
			Suggestion: "Custom schedules need --days, e.g. --days mon,wed,fri",
			Cause:      errors.ErrInvalidWeekday,
		}
	}
	if err := p.store.Habits.Upsert(h); err != nil {
		return nil, err
	}
	return h, nil
}

// SetHabitStatus pauses or resumes a habit.
func (p *Planner) SetHabitStatus(id string, status model.HabitStatus) (*model.Habit, error) {
	h, err := p.ResolveHabit(id)
	if err != nil {
		return nil, err
	}
	h.Status = status
	h.Touch(p.now())
	if err := p.store.Habits.Upsert(h); err != nil {
		return nil, err
	}
	return h, nil
}

// DeleteHabit removes a habit. Its logs are kept.
func (p *Planner) DeleteHabit(id string) (*model.Habit, error) {
	h, err := p.ResolveHabit(id)
	if err != nil {
		return nil, err
	}
	if err := p.store.Habits.DeleteByID(h.ID); err != nil {
		return nil, err
	}
	return h, nil
}

// LogHabit records status for a habit on date, replacing an earlier log
// for the same day.
func (p *Planner) LogHabit(id string, date model.Date, status model.HabitLogStatus) (*model.HabitLog, error) {
	h, err := p.ResolveHabit(id)
	if err != nil {
		return nil, err
	}
	log := model.NewHabitLog(p.newID(), h.ID, date, status)
	if err := p.store.HabitLogs.LogHabit(log); err != nil {
		return nil, err
	}
	return log, nil
}

// ClearHabitLog removes the log for a habit on date, if any.
func (p *Planner) ClearHabitLog(id string, date model.Date) error {
	h, err := p.ResolveHabit(id)
	if err != nil {
		return err
	}
	for _, l := range p.store.HabitLogs.ListForDate(date) {
		if l.HabitID == h.ID {
			return p.store.HabitLogs.DeleteByID(l.ID)
		}
	}
	return nil
}

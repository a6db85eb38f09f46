package planner

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/validate"
)

// ResolveGoal finds a goal by exact id or unique id prefix.
func (p *Planner) ResolveGoal(ref string) (*model.Goal, error) {
	return resolve(ref, p.store.Goals.ListAll(), model.KindGoal, errors.ErrGoalNotFound, "dayaim goal list")
}

// ResolveTask finds a task by exact id or unique id prefix.
func (p *Planner) ResolveTask(ref string) (*model.Task, error) {
	return resolve(ref, p.store.Tasks.ListAll(), model.KindTask, errors.ErrTaskNotFound, "dayaim task list")
}

// ResolveHabit finds a habit by exact id or unique id prefix.
func (p *Planner) ResolveHabit(ref string) (*model.Habit, error) {
	return resolve(ref, p.store.Habits.ListAll(), model.KindHabit, errors.ErrHabitNotFound, "dayaim habit list")
}

// resolve prefers an exact id match; otherwise the prefix must select a
// single record.
func resolve[T model.Keyed](ref string, items []*T, kind model.Kind, notFound error, listCmd string) (*T, error) {
	ref = strings.TrimSpace(ref)
	for _, item := range items {
		if ref != "" && (*item).PrimaryKey() == ref {
			return item, nil
		}
	}
	if err := validate.IDPrefix(ref); err != nil {
		return nil, err
	}

	var matches []*T
	for _, item := range items {
		if strings.HasPrefix((*item).PrimaryKey(), ref) {
			matches = append(matches, item)
		}
	}

	switch len(matches) {
	case 0:
		return nil, &errors.UserError{
			Message:    fmt.Sprintf("No %s matches '%s'", kind, ref),
			Suggestion: fmt.Sprintf("Run '%s' to see ids", listCmd),
			Field:      "id",
			Cause:      notFound,
		}
	case 1:
		return matches[0], nil
	default:
		return nil, &errors.UserError{
			Message:    fmt.Sprintf("'%s' matches %d %ss", ref, len(matches), kind),
			Suggestion: "Use more characters of the id",
			Field:      "id",
		}
	}
}

package storage

import (
	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/model"
)

// TaskRepo provides task persistence.
type TaskRepo struct {
	c *collection[model.Task]
}

// ListAll returns every task in stored order.
func (r *TaskRepo) ListAll() []*model.Task {
	return filter(r.c.load(), nil)
}

// ListForDate returns the tasks due on date, in stored order.
func (r *TaskRepo) ListForDate(date model.Date) []*model.Task {
	return filter(r.c.load(), func(t *model.Task) bool {
		return t.DueDate == date
	})
}

// ListForGoal returns the tasks linked to goalID.
func (r *TaskRepo) ListForGoal(goalID string) []*model.Task {
	return filter(r.c.load(), func(t *model.Task) bool {
		return goalID != "" && t.LinkedGoalID == goalID
	})
}

// GetByID returns the task with id, or ErrTaskNotFound.
func (r *TaskRepo) GetByID(id string) (*model.Task, error) {
	t, ok := findByKey(r.c.load(), id)
	if !ok {
		return nil, errors.ErrTaskNotFound
	}
	return t, nil
}

// Upsert replaces the task with the same id, or appends it.
func (r *TaskRepo) Upsert(t *model.Task) error {
	if t == nil {
		return errors.New("nil task")
	}
	rec := *t
	return r.c.mutate(func(tasks []model.Task) ([]model.Task, bool) {
		return upsertByKey(tasks, rec), true
	})
}

// DeleteByID removes the task with id. Deleting an absent id is a no-op.
func (r *TaskRepo) DeleteByID(id string) error {
	return r.c.mutate(func(tasks []model.Task) ([]model.Task, bool) {
		return removeByKey(tasks, id)
	})
}

package storage

import (
	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/model"
)

// HabitRepo provides habit persistence.
type HabitRepo struct {
	c *collection[model.Habit]
}

// ListAll returns every habit in stored order.
func (r *HabitRepo) ListAll() []*model.Habit {
	return filter(r.c.load(), nil)
}

// ListDueOn returns the active habits scheduled on date's weekday.
func (r *HabitRepo) ListDueOn(date model.Date) []*model.Habit {
	return filter(r.c.load(), func(h *model.Habit) bool {
		return h.IsDueOn(date)
	})
}

// GetByID returns the habit with id, or ErrHabitNotFound.
func (r *HabitRepo) GetByID(id string) (*model.Habit, error) {
	h, ok := findByKey(r.c.load(), id)
	if !ok {
		return nil, errors.ErrHabitNotFound
	}
	return h, nil
}

// Upsert replaces the habit with the same id, or appends it.
func (r *HabitRepo) Upsert(h *model.Habit) error {
	if h == nil {
		return errors.New("nil habit")
	}
	rec := *h
	return r.c.mutate(func(habits []model.Habit) ([]model.Habit, bool) {
		return upsertByKey(habits, rec), true
	})
}

// DeleteByID removes the habit with id. Deleting an absent id is a no-op.
// Logs for the habit are kept.
func (r *HabitRepo) DeleteByID(id string) error {
	return r.c.mutate(func(habits []model.Habit) ([]model.Habit, bool) {
		return removeByKey(habits, id)
	})
}

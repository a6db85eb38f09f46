package storage

import (
	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/model"
)

// HabitLogRepo provides habit log persistence. At most one log exists per
// (habitId, date).
type HabitLogRepo struct {
	c *collection[model.HabitLog]
}

// ListAll returns every log in stored order.
func (r *HabitLogRepo) ListAll() []*model.HabitLog {
	return filter(r.c.load(), nil)
}

// ListForDate returns the logs recorded for date.
func (r *HabitLogRepo) ListForDate(date model.Date) []*model.HabitLog {
	return filter(r.c.load(), func(l *model.HabitLog) bool {
		return l.Date == date
	})
}

// ListForHabit returns the logs recorded for habitID.
func (r *HabitLogRepo) ListForHabit(habitID string) []*model.HabitLog {
	return filter(r.c.load(), func(l *model.HabitLog) bool {
		return l.HabitID == habitID
	})
}

// LogHabit records log, replacing any existing log for the same habit and
// date. The replaced log's id is discarded in favour of log's.
func (r *HabitLogRepo) LogHabit(log *model.HabitLog) error {
	if log == nil {
		return errors.New("nil habit log")
	}
	rec := *log
	return r.c.mutate(func(logs []model.HabitLog) ([]model.HabitLog, bool) {
		return upsertByComposite(logs, rec, model.HabitLog.CompositeKey), true
	})
}

// DeleteByID removes the log with id. Deleting an absent id is a no-op.
func (r *HabitLogRepo) DeleteByID(id string) error {
	return r.c.mutate(func(logs []model.HabitLog) ([]model.HabitLog, bool) {
		return removeByKey(logs, id)
	})
}

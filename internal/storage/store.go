package storage

import (
	"log/slog"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/logging"
	"github.com/manav03panchal/dayaim/internal/model"
)

// Store holds the five entity collections over a Substrate.
// It is safe for concurrent use within one process.
type Store struct {
	Goals     *GoalRepo
	Tasks     *TaskRepo
	Habits    *HabitRepo
	Plans     *PlanRepo
	HabitLogs *HabitLogRepo

	sub    Substrate
	logger *slog.Logger

	goals     *collection[model.Goal]
	tasks     *collection[model.Task]
	habits    *collection[model.Habit]
	plans     *collection[model.DailyPlan]
	habitLogs *collection[model.HabitLog]
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store over sub. The Store does not own sub; closing
// the substrate is the caller's job.
func NewStore(sub Substrate, opts ...StoreOption) *Store {
	s := &Store{
		sub:    sub,
		logger: logging.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.goals = newCollection[model.Goal](sub, model.KindGoal, s.logger)
	s.tasks = newCollection[model.Task](sub, model.KindTask, s.logger)
	s.habits = newCollection[model.Habit](sub, model.KindHabit, s.logger)
	s.plans = newCollection[model.DailyPlan](sub, model.KindPlan, s.logger)
	s.habitLogs = newCollection[model.HabitLog](sub, model.KindHabitLog, s.logger)

	s.Goals = &GoalRepo{c: s.goals}
	s.Tasks = &TaskRepo{c: s.tasks}
	s.Habits = &HabitRepo{c: s.habits}
	s.Plans = &PlanRepo{c: s.plans}
	s.HabitLogs = &HabitLogRepo{c: s.habitLogs}
	return s
}

// Substrate returns the key/value store under s.
func (s *Store) Substrate() Substrate {
	return s.sub
}

// lockAll takes every collection lock in a fixed order.
func (s *Store) lockAll() func() {
	locks := []interface {
		Lock()
		Unlock()
	}{&s.goals.mu, &s.tasks.mu, &s.habits.mu, &s.plans.mu, &s.habitLogs.mu}

	for _, l := range locks {
		l.Lock()
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

// ClearAll removes every collection, and any quarantined payloads, in one
// substrate call. Not reversible.
func (s *Store) ClearAll() error {
	unlock := s.lockAll()
	defer unlock()

	keys := model.CollectionKeys()
	for _, k := range model.CollectionKeys() {
		keys = append(keys, QuarantineKey(k))
	}

	if err := s.sub.RemoveMany(keys...); err != nil {
		return errors.NewSystemErrorWithOp("clear all", "failed to remove collections", err)
	}
	s.logger.Info("all collections cleared", logging.KeyCount, len(model.CollectionKeys()))
	return nil
}

package storage

import (
	"sort"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/model"
)

// GoalRepo provides goal persistence.
type GoalRepo struct {
	c *collection[model.Goal]
}

// ListAll returns every goal in stored order.
func (r *GoalRepo) ListAll() []*model.Goal {
	return filter(r.c.load(), nil)
}

// ListActive returns ACTIVE goals, pinned first, then most recently focused.
// Goals never focused sort last within their pinned group.
func (r *GoalRepo) ListActive() []*model.Goal {
	goals := filter(r.c.load(), func(g *model.Goal) bool {
		return g.Status == model.GoalStatusActive
	})

	sort.SliceStable(goals, func(i, j int) bool {
		a, b := goals[i], goals[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return focusedAfter(a, b)
	})
	return goals
}

// focusedAfter reports whether a was focused more recently than b.
// A nil lastFocusedAt counts as the earliest instant.
func focusedAfter(a, b *model.Goal) bool {
	switch {
	case a.LastFocusedAt == nil:
		return false
	case b.LastFocusedAt == nil:
		return true
	default:
		return a.LastFocusedAt.After(*b.LastFocusedAt)
	}
}

// GetByID returns the goal with id, or ErrGoalNotFound.
func (r *GoalRepo) GetByID(id string) (*model.Goal, error) {
	g, ok := findByKey(r.c.load(), id)
	if !ok {
		return nil, errors.ErrGoalNotFound
	}
	return g, nil
}

// Upsert replaces the goal with the same id, or appends it.
func (r *GoalRepo) Upsert(g *model.Goal) error {
	if g == nil {
		return errors.New("nil goal")
	}
	rec := *g
	return r.c.mutate(func(goals []model.Goal) ([]model.Goal, bool) {
		return upsertByKey(goals, rec), true
	})
}

// DeleteByID removes the goal with id. Deleting an absent id is a no-op.
// Tasks and plans that reference the goal are left as they are.
func (r *GoalRepo) DeleteByID(id string) error {
	return r.c.mutate(func(goals []model.Goal) ([]model.Goal, bool) {
		return removeByKey(goals, id)
	})
}

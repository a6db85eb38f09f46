package storage

import (
	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/model"
)

// PlanRepo provides daily plan persistence. Plans are keyed by date.
type PlanRepo struct {
	c *collection[model.DailyPlan]
}

// ListAll returns every plan in stored order.
func (r *PlanRepo) ListAll() []*model.DailyPlan {
	return filter(r.c.load(), nil)
}

// GetByDate returns the plan for date, or ErrPlanNotFound.
func (r *PlanRepo) GetByDate(date model.Date) (*model.DailyPlan, error) {
	p, ok := findByKey(r.c.load(), string(date))
	if !ok {
		return nil, errors.ErrPlanNotFound
	}
	return p, nil
}

// Upsert replaces the plan for the same date, or appends it.
func (r *PlanRepo) Upsert(p *model.DailyPlan) error {
	if p == nil {
		return errors.New("nil daily plan")
	}
	rec := *p
	return r.c.mutate(func(plans []model.DailyPlan) ([]model.DailyPlan, bool) {
		return upsertByKey(plans, rec), true
	})
}

// DeleteByDate removes the plan for date. Deleting an absent date is a no-op.
func (r *PlanRepo) DeleteByDate(date model.Date) error {
	return r.c.mutate(func(plans []model.DailyPlan) ([]model.DailyPlan, bool) {
		return removeByKey(plans, string(date))
	})
}

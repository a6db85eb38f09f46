package model

import (
	"fmt"
	"slices"
	"time"
)

// ScheduleType describes on which weekdays a habit is due.
type ScheduleType string

const (
	ScheduleDaily    ScheduleType = "DAILY"
	ScheduleWeekdays ScheduleType = "WEEKDAYS"
	ScheduleCustom   ScheduleType = "CUSTOM"
)

// Valid reports whether s is a known schedule type.
func (s ScheduleType) Valid() bool {
	switch s {
	case ScheduleDaily, ScheduleWeekdays, ScheduleCustom:
		return true
	}
	return false
}

// HabitStatus represents whether a habit is currently tracked.
type HabitStatus string

const (
	HabitStatusActive HabitStatus = "ACTIVE"
	HabitStatusPaused HabitStatus = "PAUSED"
)

// Valid reports whether s is a known habit status.
func (s HabitStatus) Valid() bool {
	return s == HabitStatusActive || s == HabitStatusPaused
}

// Habit is a recurring behaviour logged once per scheduled day.
type Habit struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	ScheduleType ScheduleType `json:"scheduleType"`
	// ScheduleDays holds weekday indices, 0 = Sunday through 6 = Saturday.
	ScheduleDays []int       `json:"scheduleDays"`
	Status       HabitStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// PrimaryKey returns the habit id.
func (h Habit) PrimaryKey() string {
	return h.ID
}

// NewHabit creates an active habit.
func NewHabit(id, title string, schedule ScheduleType, days []int, now time.Time) *Habit {
	if days == nil {
		days = []int{}
	}
	return &Habit{
		ID:           id,
		Title:        title,
		ScheduleType: schedule,
		ScheduleDays: days,
		Status:       HabitStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsScheduledOn reports whether the habit's schedule includes the weekday.
func (h *Habit) IsScheduledOn(day time.Weekday) bool {
	switch h.ScheduleType {
	case ScheduleDaily:
		return true
	case ScheduleWeekdays:
		return day != time.Saturday && day != time.Sunday
	case ScheduleCustom:
		return slices.Contains(h.ScheduleDays, int(day))
	}
	return false
}

// IsDueOn reports whether an active habit should be logged on d.
func (h *Habit) IsDueOn(d Date) bool {
	return h.Status == HabitStatusActive && h.IsScheduledOn(d.Weekday())
}

// Touch bumps UpdatedAt, never moving it before CreatedAt.
func (h *Habit) Touch(now time.Time) {
	if now.Before(h.CreatedAt) {
		now = h.CreatedAt
	}
	h.UpdatedAt = now
}

// Validate checks the record's field invariants.
func (h *Habit) Validate() error {
	if h.ID == "" {
		return fmt.Errorf("habit id is required")
	}
	if h.Title == "" {
		return fmt.Errorf("habit title is required")
	}
	if !h.ScheduleType.Valid() {
		return fmt.Errorf("invalid schedule type %q", h.ScheduleType)
	}
	for _, d := range h.ScheduleDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("schedule day %d out of range 0-6", d)
		}
	}
	if h.ScheduleType == ScheduleCustom && len(h.ScheduleDays) == 0 {
		return fmt.Errorf("custom schedule needs at least one day")
	}
	if !h.Status.Valid() {
		return fmt.Errorf("invalid habit status %q", h.Status)
	}
	if h.UpdatedAt.Before(h.CreatedAt) {
		return fmt.Errorf("habit updatedAt precedes createdAt")
	}
	return nil
}

package model

import (
	"fmt"
	"time"
)

// PlannedSource records which planning flow created a task.
type PlannedSource string

const (
	PlannedSourceEvening PlannedSource = "EVENING"
	PlannedSourceMorning PlannedSource = "MORNING"
	PlannedSourceManual  PlannedSource = "MANUAL"
)

// Valid reports whether s is a known planned source.
func (s PlannedSource) Valid() bool {
	switch s {
	case PlannedSourceEvening, PlannedSourceMorning, PlannedSourceManual:
		return true
	}
	return false
}

// Task is a single to-do due on one calendar date.
type Task struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	DueDate       Date          `json:"dueDate"`
	LinkedGoalID  string        `json:"linkedGoalId,omitempty"`
	IsFocusTask   bool          `json:"isFocusTask"`
	PlannedSource PlannedSource `json:"plannedSource"`
	IsDone        bool          `json:"isDone"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// PrimaryKey returns the task id.
func (t Task) PrimaryKey() string {
	return t.ID
}

// NewTask creates an open task due on the given date.
func NewTask(id, title string, due Date, source PlannedSource, now time.Time) *Task {
	return &Task{
		ID:            id,
		Title:         title,
		DueDate:       due,
		PlannedSource: source,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Touch bumps UpdatedAt, never moving it before CreatedAt.
func (t *Task) Touch(now time.Time) {
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

// SetDone marks the task done or not done.
func (t *Task) SetDone(done bool, now time.Time) {
	t.IsDone = done
	t.Touch(now)
}

// Validate checks the record's field invariants.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required")
	}
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if err := t.DueDate.Validate(); err != nil {
		return fmt.Errorf("task dueDate: %w", err)
	}
	if !t.PlannedSource.Valid() {
		return fmt.Errorf("invalid planned source %q", t.PlannedSource)
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("task updatedAt precedes createdAt")
	}
	return nil
}

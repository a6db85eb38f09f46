package model

import (
	"fmt"
	"time"
)

// GoalStatus represents the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "ACTIVE"
	GoalStatusPaused    GoalStatus = "PAUSED"
	GoalStatusCompleted GoalStatus = "COMPLETED"
)

// Valid reports whether s is a known goal status.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusActive, GoalStatusPaused, GoalStatusCompleted:
		return true
	}
	return false
}

// Goal is a longer-running aim the user plans days around.
type Goal struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Why           string     `json:"why,omitempty"`
	Status        GoalStatus `json:"status"`
	IsPinned      bool       `json:"isPinned"`
	LastFocusedAt *time.Time `json:"lastFocusedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// PrimaryKey returns the goal id.
func (g Goal) PrimaryKey() string {
	return g.ID
}

// NewGoal creates an active, unpinned goal.
func NewGoal(id, title, why string, now time.Time) *Goal {
	return &Goal{
		ID:        id,
		Title:     title,
		Why:       why,
		Status:    GoalStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive returns true if the goal is ACTIVE.
func (g *Goal) IsActive() bool {
	return g.Status == GoalStatusActive
}

// Touch bumps UpdatedAt, never moving it before CreatedAt.
func (g *Goal) Touch(now time.Time) {
	if now.Before(g.CreatedAt) {
		now = g.CreatedAt
	}
	g.UpdatedAt = now
}

// Focus records that the goal was chosen as a day's focus.
func (g *Goal) Focus(now time.Time) {
	t := now
	g.LastFocusedAt = &t
	g.Touch(now)
}

// Validate checks the record's field invariants.
func (g *Goal) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("goal id is required")
	}
	if g.Title == "" {
		return fmt.Errorf("goal title is required")
	}
	if !g.Status.Valid() {
		return fmt.Errorf("invalid goal status %q", g.Status)
	}
	if g.UpdatedAt.Before(g.CreatedAt) {
		return fmt.Errorf("goal updatedAt precedes createdAt")
	}
	return nil
}

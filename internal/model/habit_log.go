package model

import "fmt"

// HabitLogStatus is the outcome recorded for a habit on a day.
type HabitLogStatus string

const (
	HabitLogDone   HabitLogStatus = "DONE"
	HabitLogMissed HabitLogStatus = "MISSED"
)

// Valid reports whether s is a known log status.
func (s HabitLogStatus) Valid() bool {
	return s == HabitLogDone || s == HabitLogMissed
}

// HabitLog records a habit's outcome on one date. At most one log exists per
// (HabitID, Date); logging again replaces the earlier record, id included.
type HabitLog struct {
	ID      string         `json:"id"`
	HabitID string         `json:"habitId"`
	Date    Date           `json:"date"`
	Status  HabitLogStatus `json:"status"`
}

// PrimaryKey returns the log id.
func (l HabitLog) PrimaryKey() string {
	return l.ID
}

// CompositeKey returns the (habit, date) pair the log is unique on.
func (l HabitLog) CompositeKey() string {
	return l.HabitID + "|" + string(l.Date)
}

// NewHabitLog creates a log record.
func NewHabitLog(id, habitID string, date Date, status HabitLogStatus) *HabitLog {
	return &HabitLog{
		ID:      id,
		HabitID: habitID,
		Date:    date,
		Status:  status,
	}
}

// Validate checks the record's field invariants.
func (l *HabitLog) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("habit log id is required")
	}
	if l.HabitID == "" {
		return fmt.Errorf("habit log habitId is required")
	}
	if err := l.Date.Validate(); err != nil {
		return fmt.Errorf("habit log date: %w", err)
	}
	if !l.Status.Valid() {
		return fmt.Errorf("invalid habit log status %q", l.Status)
	}
	return nil
}

package model

import (
	"fmt"
	"time"
)

// ClosedStatus represents how a day's plan was wrapped up.
type ClosedStatus string

const (
	ClosedStatusOpen         ClosedStatus = "OPEN"
	ClosedStatusClosed       ClosedStatus = "CLOSED"
	ClosedStatusSkippedClose ClosedStatus = "SKIPPED_CLOSE"
)

// Valid reports whether s is a known closed status.
func (s ClosedStatus) Valid() bool {
	switch s {
	case ClosedStatusOpen, ClosedStatusClosed, ClosedStatusSkippedClose:
		return true
	}
	return false
}

// DailyPlan is the plan for a single calendar date. The date is its key.
type DailyPlan struct {
	Date         Date         `json:"date"`
	FocusGoalID  string       `json:"focusGoalId,omitempty"`
	ClosedStatus ClosedStatus `json:"closedStatus"`
	ClosedAt     *time.Time   `json:"closedAt,omitempty"`
	Note         string       `json:"note,omitempty"`
}

// PrimaryKey returns the plan date.
func (p DailyPlan) PrimaryKey() string {
	return string(p.Date)
}

// NewDailyPlan creates an open plan for the date.
func NewDailyPlan(date Date) *DailyPlan {
	return &DailyPlan{
		Date:         date,
		ClosedStatus: ClosedStatusOpen,
	}
}

// IsClosed reports whether the day has been wrapped up either way.
func (p *DailyPlan) IsClosed() bool {
	return p.ClosedStatus == ClosedStatusClosed || p.ClosedStatus == ClosedStatusSkippedClose
}

// Close marks the day reviewed and closed.
func (p *DailyPlan) Close(now time.Time, note string) {
	t := now
	p.ClosedStatus = ClosedStatusClosed
	p.ClosedAt = &t
	if note != "" {
		p.Note = note
	}
}

// SkipClose marks the day closed without a review.
func (p *DailyPlan) SkipClose(now time.Time) {
	t := now
	p.ClosedStatus = ClosedStatusSkippedClose
	p.ClosedAt = &t
}

// Validate checks the record's field invariants.
func (p *DailyPlan) Validate() error {
	if err := p.Date.Validate(); err != nil {
		return fmt.Errorf("plan date: %w", err)
	}
	if !p.ClosedStatus.Valid() {
		return fmt.Errorf("invalid closed status %q", p.ClosedStatus)
	}
	return nil
}

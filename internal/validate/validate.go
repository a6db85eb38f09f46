// Package validate provides input validation helpers for the dayaim CLI.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/model"
)

const (
	// MaxTitleLength is the maximum length for a goal, task or habit title.
	MaxTitleLength = 200
	// MaxNoteLength is the maximum length for a note or a goal's why.
	MaxNoteLength = 4096
	// MinIDPrefix is the shortest id prefix accepted on the command line.
	MinIDPrefix = 4
)

// Title validates a record title.
func Title(field, title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewUserError(
			field+" title cannot be empty",
			"Provide a title as the first argument")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return errors.NewUserErrorWithField("title", TruncateString(title, 40),
			"Title too long",
			fmt.Sprintf("Titles must be %d characters or fewer", MaxTitleLength))
	}
	return nil
}

// Note validates a note or description.
func Note(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return errors.NewUserError(
			"Note too long",
			fmt.Sprintf("Notes must be %d characters or fewer", MaxNoteLength))
	}
	return nil
}

// IDPrefix validates an id or id prefix typed by the user.
func IDPrefix(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewUserError("ID cannot be empty", "Pass an id from the list output")
	}
	if len(id) < MinIDPrefix {
		return errors.NewUserErrorWithField("id", id,
			"ID prefix too short",
			fmt.Sprintf("Use at least %d characters of the id", MinIDPrefix))
	}
	return nil
}

// GoalStatus parses a goal status case-insensitively.
func GoalStatus(s string) (model.GoalStatus, error) {
	st := model.GoalStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", enumError("status", s, "active, paused or completed")
	}
	return st, nil
}

// HabitStatus parses a habit status case-insensitively.
func HabitStatus(s string) (model.HabitStatus, error) {
	st := model.HabitStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", enumError("status", s, "active or paused")
	}
	return st, nil
}

// HabitLogStatus parses a habit log status case-insensitively.
func HabitLogStatus(s string) (model.HabitLogStatus, error) {
	st := model.HabitLogStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", enumError("status", s, "done or missed")
	}
	return st, nil
}

// ScheduleType parses a habit schedule type case-insensitively.
func ScheduleType(s string) (model.ScheduleType, error) {
	st := model.ScheduleType(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", enumError("schedule", s, "daily, weekdays or custom")
	}
	return st, nil
}

// PlannedSource parses a task's planned source case-insensitively.
func PlannedSource(s string) (model.PlannedSource, error) {
	src := model.PlannedSource(strings.ToUpper(strings.TrimSpace(s)))
	if !src.Valid() {
		return "", enumError("source", s, "evening, morning or manual")
	}
	return src, nil
}

func enumError(field, value, allowed string) error {
	return &errors.UserError{
		Message:    "Invalid " + field,
		Suggestion: "Use one of: " + allowed,
		Field:      field,
		Value:      value,
		Cause:      errors.ErrInvalidStatus,
	}
}

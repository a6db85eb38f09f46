package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/dayaim/internal/errors"
)

// ParseError represents an input parsing error with helpful suggestions.
type ParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
	Cause      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// FormatWithExamples returns the error message with example suggestions.
func (e *ParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// DateExamples provides example date formats.
var DateExamples = []string{
	"today",
	"tomorrow",
	"2024-06-01",
	"+3",
	"friday",
	"next monday",
}

// WeekdayExamples provides example schedule day lists.
var WeekdayExamples = []string{
	"mon,wed,fri",
	"sat,sun",
	"1,3,5",
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(input string) *ParseError {
	return &ParseError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: "Dates can be YYYY-MM-DD, a day offset like +2, or words like 'tomorrow'.",
		Cause:      errors.ErrInvalidDate,
	}
}

// NewWeekdayError creates a weekday list parse error with standard examples.
func NewWeekdayError(input, message string) *ParseError {
	return &ParseError{
		Input:      input,
		Field:      "days",
		Message:    message,
		Examples:   WeekdayExamples,
		Suggestion: "List day names or numbers (0 = Sunday) separated by commas.",
		Cause:      errors.ErrInvalidWeekday,
	}
}

// ToUserError converts a ParseError to a UserError for consistent handling.
func (e *ParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	ue := errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
	ue.Cause = e.Cause
	return ue
}

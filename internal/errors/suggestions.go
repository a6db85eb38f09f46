package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrGoalNotFound:    "Use 'dayaim goal list' to see goal ids.",
	ErrTaskNotFound:    "Use 'dayaim task list --date <date>' to see task ids.",
	ErrHabitNotFound:   "Use 'dayaim habit list' to see habit ids.",
	ErrPlanNotFound:    "Use 'dayaim plan set' to start a plan for that day.",
	ErrInvalidDate:     "Try formats like '2024-06-01', 'today', 'tomorrow', or 'next monday'.",
	ErrInvalidStatus:   "Run the command with --help to see accepted status values.",
	ErrInvalidWeekday:  "Use weekday names or numbers, e.g. 'mon,wed,fri' or '1,3,5' (0 = Sunday).",
	ErrConfirmRequired: "Re-run with --yes to confirm from a non-interactive shell.",

	// System errors
	ErrDiskFull:          "Free up disk space and try again.",
	ErrDatabaseCorrupted: "Run 'dayaim doctor' to inspect the stored collections.",
	ErrLockHeld:          "Another dayaim process is using the database. Close it and try again.",
	ErrPermissionDenied:  "Check file permissions in your data directory (~/.local/share/dayaim/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// A UserError's own suggestion wins over the sentinel's generic one.
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

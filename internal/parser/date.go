// Package parser turns command-line input into model values.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/dayaim/internal/model"
)

// offsetRegex matches day offsets like "+3", "-1", "+2d", "+1w".
var offsetRegex = regexp.MustCompile(`^([+-]\d+)([dw]?)$`)

// ParseDate parses a calendar date relative to today.
//
// Accepted forms, in order: the words today, tomorrow and yesterday; day
// offsets (+2, -1, +1w); strict YYYY-MM-DD; weekday names ("fri" is the next
// Friday, today excluded); anything go-dateparser understands ("june 3",
// "in 2 days").
func ParseDate(input string, today model.Date) (model.Date, error) {
	d, err := parseDate(input, today)
	if err != nil {
		return "", err
	}
	// Far offsets and odd calendars can land outside four-digit years.
	if d.Validate() != nil {
		return "", NewDateError(input).ToUserError()
	}
	return d, nil
}

func parseDate(input string, today model.Date) (model.Date, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return "", NewDateError(input).ToUserError()
	}
	base, err := today.Time()
	if err != nil {
		return "", NewDateError(string(today)).ToUserError()
	}

	switch s {
	case "today", "now":
		return today, nil
	case "tomorrow", "tmr", "tmrw":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	if m := offsetRegex.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "", NewDateError(input).ToUserError()
		}
		if m[2] == "w" {
			n *= 7
		}
		return today.AddDays(n), nil
	}

	if d, err := model.ParseDate(s); err == nil {
		return d, nil
	}

	if day, ok := parseWeekdayPhrase(s); ok {
		ahead := (int(day) - int(base.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return today.AddDays(ahead), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: base,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return "", NewDateError(input).ToUserError()
	}
	return model.DateOf(result.Time), nil
}

// parseWeekdayPhrase accepts "fri", "friday", "next friday" and "this friday".
func parseWeekdayPhrase(s string) (time.Weekday, bool) {
	s = strings.TrimPrefix(s, "next ")
	s = strings.TrimPrefix(s, "this ")
	return lookupWeekday(s)
}

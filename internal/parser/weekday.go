package parser

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func lookupWeekday(s string) (time.Weekday, bool) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// ParseWeekdays parses a comma or space separated list of day names or
// indices (0 = Sunday) into sorted, de-duplicated weekday indices.
func ParseWeekdays(input string) ([]int, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, NewWeekdayError(input, "no days given").ToUserError()
	}

	seen := make(map[int]bool, len(fields))
	days := make([]int, 0, len(fields))
	for _, f := range fields {
		day, ok := parseOneWeekday(f)
		if !ok {
			return nil, NewWeekdayError(f, "unknown day").ToUserError()
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Ints(days)
	return days, nil
}

func parseOneWeekday(s string) (int, bool) {
	if d, ok := lookupWeekday(s); ok {
		return int(d), true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 6 {
		return 0, false
	}
	return n, true
}

// FormatWeekdays renders weekday indices as short names, e.g. "Mon, Wed".
func FormatWeekdays(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			continue
		}
		names = append(names, time.Weekday(d).String()[:3])
	}
	return strings.Join(names, ", ")
}

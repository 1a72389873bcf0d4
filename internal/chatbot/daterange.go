package chatbot

import (
	"strings"
	"time"
)

// datePhrases are checked in priority order; the first phrase contained in
// the lower-cased query wins. "today" must precede the week/month/year
// phrases so that e.g. "total today this month" resolves to today.
var datePhrases = []struct {
	phrase  string
	resolve func(now time.Time) (time.Time, time.Time)
}{
	{"today", func(now time.Time) (time.Time, time.Time) {
		return startOfDay(now), endOfDay(now)
	}},
	{"yesterday", func(now time.Time) (time.Time, time.Time) {
		y := now.AddDate(0, 0, -1)
		return startOfDay(y), endOfDay(y)
	}},
	{"this week", func(now time.Time) (time.Time, time.Time) {
		monday := startOfWeek(now)
		return monday, endOfDay(monday.AddDate(0, 0, 6))
	}},
	{"last week", func(now time.Time) (time.Time, time.Time) {
		monday := startOfWeek(now).AddDate(0, 0, -7)
		return monday, endOfDay(monday.AddDate(0, 0, 6))
	}},
	{"this month", func(now time.Time) (time.Time, time.Time) {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, endOfDay(first.AddDate(0, 1, -1))
	}},
	{"last month", func(now time.Time) (time.Time, time.Time) {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		return first, endOfDay(first.AddDate(0, 1, -1))
	}},
	{"this year", func(now time.Time) (time.Time, time.Time) {
		return yearRange(now.Year(), now.Location())
	}},
	{"last year", func(now time.Time) (time.Time, time.Time) {
		return yearRange(now.Year()-1, now.Location())
	}},
}

// ResolveDateRange maps a relative temporal phrase inside the query to
// absolute inclusive bounds in now's location. A query with no recognized
// phrase yields the zero DateRange, which is a valid non-error outcome.
func ResolveDateRange(query string, now time.Time) DateRange {
	lower := strings.ToLower(query)

	for _, p := range datePhrases {
		if strings.Contains(lower, p.phrase) {
			start, end := p.resolve(now)
			return DateRange{Start: &start, End: &end, Label: p.phrase}
		}
	}
	return DateRange{}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay is 23:59:59.999, matching the millisecond resolution the stored
// dates are compared at.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// startOfWeek returns Monday 00:00:00 of t's ISO week. Sunday counts as the
// last day of the week it closes, not the first of the next.
func startOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return startOfDay(t.AddDate(0, 0, -offset))
}

func yearRange(year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return start, endOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, loc))
}

package domain

import (
	"math"
	"time"
)

// DateRange bounds a report query. Both ends are inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days returns the number of whole days the range spans, never less than 1.
func (r DateRange) Days() int {
	days := int(r.End.Sub(r.Start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// StartOfMonth returns midnight on the first of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DayKey formats t as a calendar-day key (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// WeekNumber returns the week-of-year index, counting partial first weeks:
// ceil((zero-based day of year + weekday of Jan 1 + 1) / 7).
func WeekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.YearDay() - 1
	return int(math.Ceil(float64(days+int(jan1.Weekday())+1) / 7.0))
}

// Season returns the meteorological season for t, Northern-hemisphere
// convention: Mar-May Spring, Jun-Aug Summer, Sep-Nov Fall, else Winter.
func Season(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	case time.September, time.October, time.November:
		return "Fall"
	default:
		return "Winter"
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundPercent rounds a percentage to the nearest integer.
func RoundPercent(v float64) int {
	return int(math.Round(v))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package helpers

import (
	"fmt"
	"time"

	"github.com/benupsavs/growtherapy-takehome/errors"
)

// Date identifies a single calendar day. It has no time component or
// location, and is comparable, so it can be used as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day on which t falls.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns midnight UTC on the given day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DaysInMonth returns every calendar day in the given month, ascending.
func DaysInMonth(year int, month int) ([]Date, error) {
	if month < 1 || month > 12 {
		return nil, errors.New(errors.InvalidArgument,
			"month must be from 1 to 12, inclusive")
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	days := make([]Date, 0, 31)
	for t := first; t.Before(next); t = t.AddDate(0, 0, 1) {
		days = append(days, DateOf(t))
	}
	return days, nil
}

// DaysInWeek returns the calendar days in the given week, ascending. Week 1
// begins on January 1st and each week is a plain 7-day offset from there;
// this is not ISO week numbering. A week at the year boundary contributes
// only the days still within the year, so the result may hold fewer than
// 7 days, or none at all for week 53 of a short year.
func DaysInWeek(year int, week int) ([]Date, error) {
	if week < 1 || week > 53 {
		return nil, errors.New(errors.InvalidArgument,
			"week must be from 1 to 53, inclusive")
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, 7*(week-1))

	var days []Date
	for i := 0; i < 7; i++ {
		t := start.AddDate(0, 0, i)
		if t.Year() != year {
			break
		}
		days = append(days, DateOf(t))
	}
	return days, nil
}

// Package calendar provides month arithmetic for bill calculation.
// All weekday ordinals are Monday-first (Monday=0 ... Sunday=6),
// independent of any locale-sensitive system calendar.
package calendar

import (
	"fmt"
	"time"

	"paperbill/internal/errors"
)

// DaysPerWeek is the length of every weekday-indexed table
const DaysPerWeek = 7

// WeekdayNames is the canonical, Monday-first weekday name table.
// Token grammar productions are built from these names.
var WeekdayNames = [DaysPerWeek]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// WeekdayIndex converts a time.Weekday (Sunday=0) to the Monday-first ordinal
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % DaysPerWeek
}

// MonthSpec identifies one calendar month. Month and year are always used
// together; callers resolve missing values (e.g. "previous month") before
// constructing one.
type MonthSpec struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Validate checks the month/year preconditions
func (m MonthSpec) Validate() error {
	if m.Month < 1 || m.Month > 12 {
		return errors.InvalidMonthYear("month must be between 1 and 12")
	}
	if m.Year <= 0 {
		return errors.InvalidMonthYear("year must be greater than 0")
	}
	return nil
}

// String returns e.g. "May 2017"
func (m MonthSpec) String() string {
	return fmt.Sprintf("%s %d", time.Month(m.Month).String(), m.Year)
}

// Date is one calendar day. It is comparable, so it can key a set.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// NewDate constructs a Date
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Time returns the midnight UTC instant of the date
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// WeekdayIndex returns the Monday-first weekday ordinal of the date
func (d Date) WeekdayIndex() int {
	return WeekdayIndex(d.Time().Weekday())
}

// String returns the ISO form, e.g. "2017-05-08"
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DateSet is a de-duplicated set of calendar dates
type DateSet map[Date]struct{}

// NewDateSet builds a set from the given dates
func NewDateSet(dates ...Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Add inserts a date into the set
func (s DateSet) Add(d Date) {
	s[d] = struct{}{}
}

// Union inserts every date from other into the set
func (s DateSet) Union(other DateSet) {
	for d := range other {
		s[d] = struct{}{}
	}
}

// Has reports whether the set contains the date
func (s DateSet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}

// Sorted returns the dates in chronological order
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Time().Before(out[j-1].Time()); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// DaysInMonth returns the number of days in the month, accounting for leap
// years
func DaysInMonth(month, year int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayOccurrenceCounts returns, for each Monday-first weekday ordinal, how
// many times that weekday occurs in the month.
//
// The month is laid out as a grid of weeks. Every weekday occurs once per
// week, except where its slot in the first or last week falls outside the
// month.
func WeekdayOccurrenceCounts(month, year int) ([DaysPerWeek]int, error) {
	var counts [DaysPerWeek]int

	spec := MonthSpec{Month: month, Year: year}
	if err := spec.Validate(); err != nil {
		return counts, err
	}

	days := DaysInMonth(month, year)
	first := WeekdayIndex(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday())
	last := WeekdayIndex(time.Date(year, time.Month(month), days, 0, 0, 0, 0, time.UTC).Weekday())

	weeks := (first + days + 6) / DaysPerWeek

	for w := 0; w < DaysPerWeek; w++ {
		counts[w] = weeks
		if w < first {
			// the slot in the first week is empty
			counts[w]--
		}
		if w > last {
			// the slot in the last week is empty
			counts[w]--
		}
	}

	return counts, nil
}

// MonthDates returns every date in the month, in order
func MonthDates(month, year int) []Date {
	days := DaysInMonth(month, year)
	out := make([]Date, 0, days)
	for day := 1; day <= days; day++ {
		out = append(out, NewDate(year, time.Month(month), day))
	}
	return out
}

// PreviousMonth returns the month before the one containing today, found by
// stepping one day back from the first of the current month
func PreviousMonth(today time.Time) MonthSpec {
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	prev := firstOfMonth.AddDate(0, 0, -1)
	return MonthSpec{Month: int(prev.Month()), Year: prev.Year()}
}

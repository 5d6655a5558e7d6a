// Package undelivered - token resolution tests
package undelivered

import (
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"paperbill/core/calendar"
	"paperbill/internal/errors"
)

// May 2017 starts on a Monday and has 31 days, which makes the weekday
// arithmetic easy to eyeball.
var may2017 = calendar.MonthSpec{Month: 5, Year: 2017}

func mayDates(days ...int) calendar.DateSet {
	s := calendar.NewDateSet()
	for _, d := range days {
		s.Add(calendar.NewDate(2017, time.May, d))
	}
	return s
}

func assertDates(t *testing.T, got calendar.DateSet, want calendar.DateSet) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("resolved %d dates, want %d: got %v", len(got), len(want), got.Sorted())
	}
	for d := range want {
		if !got.Has(d) {
			t.Errorf("missing date %s", d)
		}
	}
}

func TestResolveWeekdayPlural(t *testing.T) {
	res, err := Resolve(may2017, []string{"mondays"})
	if err != nil {
		t.Fatal(err)
	}
	assertDates(t, res.Dates, mayDates(1, 8, 15, 22, 29))
	if len(res.Skipped) != 0 {
		t.Errorf("unexpected skipped tokens: %v", res.Skipped)
	}
}

func TestResolveNthWeekday(t *testing.T) {
	res, err := Resolve(may2017, []string{"2-monday"})
	if err != nil {
		t.Fatal(err)
	}
	assertDates(t, res.Dates, mayDates(8))
}

func TestResolveSingleDay(t *testing.T) {
	res, err := Resolve(may2017, []string{"17"})
	if err != nil {
		t.Fatal(err)
	}
	assertDates(t, res.Dates, mayDates(17))
}

func TestResolveDayRange(t *testing.T) {
	res, err := Resolve(may2017, []string{"5-17"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Dates) != 13 {
		t.Fatalf("5-17 resolved to %d dates, want 13", len(res.Dates))
	}
	for day := 5; day <= 17; day++ {
		if !res.Dates.Has(calendar.NewDate(2017, time.May, day)) {
			t.Errorf("missing day %d", day)
		}
	}
}

func TestResolveAll(t *testing.T) {
	for _, tok := range []string{"all", "All", "ALL"} {
		res, err := Resolve(may2017, []string{tok})
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Dates) != 31 {
			t.Errorf("%q resolved to %d dates, want 31", tok, len(res.Dates))
		}
	}
}

func TestResolveCombination(t *testing.T) {
	res, err := Resolve(may2017, []string{"mondays", "2-tuesday", "4"})
	if err != nil {
		t.Fatal(err)
	}
	assertDates(t, res.Dates, mayDates(1, 4, 8, 9, 15, 22, 29))
}

func TestResolveDeduplicates(t *testing.T) {
	// May 1st is both a monday and day 1
	res, err := Resolve(may2017, []string{"mondays", "1", "1-monday"})
	if err != nil {
		t.Fatal(err)
	}
	assertDates(t, res.Dates, mayDates(1, 8, 15, 22, 29))
}

func TestResolveSkipsSemanticMismatches(t *testing.T) {
	cases := []struct {
		name   string
		tokens []string
	}{
		{"day beyond the month", []string{"32"}},
		{"range beyond the month", []string{"5-32"}},
		{"inverted range", []string{"17-5"}},
		{"zero day", []string{"0"}},
		{"nth occurrence that never happens", []string{"6-monday"}},
		{"zeroth occurrence", []string{"0-monday"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := Resolve(may2017, c.tokens)
			if err != nil {
				t.Fatalf("semantic mismatch should not hard-fail: %v", err)
			}
			if len(res.Dates) != 0 {
				t.Errorf("resolved %v, want none", res.Dates.Sorted())
			}
			if len(res.Skipped) != 1 {
				t.Fatalf("got %d skipped tokens, want 1", len(res.Skipped))
			}
			if res.Skipped[0].Reason == "" {
				t.Error("skip reason should not be empty")
			}
		})
	}
}

func TestResolveMixedGoodAndSkipped(t *testing.T) {
	res, err := Resolve(may2017, []string{"mondays", "32"})
	if err != nil {
		t.Fatal(err)
	}
	assertDates(t, res.Dates, mayDates(1, 8, 15, 22, 29))
	if len(res.Skipped) != 1 || res.Skipped[0].Token != "32" {
		t.Errorf("expected one skipped token for %q, got %v", "32", res.Skipped)
	}
}

func TestResolveRejectsBadMonth(t *testing.T) {
	_, err := Resolve(calendar.MonthSpec{Month: 13, Year: 2017}, []string{"mondays"})
	if err == nil {
		t.Fatal("expected error for month 13")
	}
	if !errors.IsType(err, errors.TypeCalendar) {
		t.Errorf("expected calendar error, got %v", err)
	}
}

func TestResolveStrings(t *testing.T) {
	res, err := ResolveStrings(may2017, "mondays,4", "5-6")
	if err != nil {
		t.Fatal(err)
	}
	assertDates(t, res.Dates, mayDates(1, 4, 5, 6, 8, 15, 22, 29))
}

func TestResolveStringsEmpty(t *testing.T) {
	res, err := ResolveStrings(may2017)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Dates) != 0 || len(res.Skipped) != 0 {
		t.Errorf("empty input should resolve to nothing, got %v / %v", res.Dates, res.Skipped)
	}
}

// TestResolutionProperties checks structural invariants of resolution over
// arbitrary months and day tokens.
func TestResolutionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("resolved dates always fall within the month", prop.ForAll(
		func(month, year, day int) bool {
			spec := calendar.MonthSpec{Month: month, Year: year}
			res, err := ResolveStrings(spec, "mondays", "all", "2-friday", strconv.Itoa(day))
			if err != nil {
				return false
			}
			for d := range res.Dates {
				if int(d.Month) != month || d.Year != year {
					return false
				}
				if d.Day < 1 || d.Day > calendar.DaysInMonth(month, year) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 9999),
		gen.IntRange(1, 99),
	))

	properties.Property("resolving twice yields the same set", prop.ForAll(
		func(month, year int) bool {
			spec := calendar.MonthSpec{Month: month, Year: year}
			first, err1 := ResolveStrings(spec, "tuesdays", "3-sunday", "10-20")
			second, err2 := ResolveStrings(spec, "tuesdays", "3-sunday", "10-20")
			if err1 != nil || err2 != nil {
				return false
			}
			if len(first.Dates) != len(second.Dates) {
				return false
			}
			for d := range first.Dates {
				if !second.Dates.Has(d) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 9999),
	))

	properties.Property("every day number a validator accepts either resolves or is skipped", prop.ForAll(
		func(month, year, day int) bool {
			tok := strconv.Itoa(day)
			if ValidateString(tok) != nil {
				return false
			}
			spec := calendar.MonthSpec{Month: month, Year: year}
			res, err := Resolve(spec, []string{tok})
			if err != nil {
				return false
			}
			inMonth := day >= 1 && day <= calendar.DaysInMonth(month, year)
			if inMonth {
				return len(res.Dates) == 1 && len(res.Skipped) == 0
			}
			return len(res.Dates) == 0 && len(res.Skipped) == 1
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 9999),
		gen.IntRange(1, 99),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

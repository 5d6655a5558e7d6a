package undelivered

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"paperbill/core/calendar"
)

// SkippedToken records a token that resolved to no dates, with the reason
type SkippedToken struct {
	// Token is the raw token text
	Token string `json:"token"`

	// Reason explains why it produced no dates
	Reason string `json:"reason"`
}

// Resolution is the outcome of resolving one paper's tokens for one month
type Resolution struct {
	// Dates is the de-duplicated set of resolved non-delivery dates. Every
	// date falls within the requested month.
	Dates calendar.DateSet `json:"dates"`

	// Skipped lists tokens that matched no dates. Semantic mismatches are
	// tolerated rather than raised, so one bad token never aborts the month.
	Skipped []SkippedToken `json:"skipped,omitempty"`
}

// Resolve parses tokens into the concrete dates they denote within the given
// month. Tokens are expected to have passed ValidateString; a token that
// still fails to resolve is skipped with a diagnostic, not raised.
//
// The only hard failure is an invalid month/year.
func Resolve(spec calendar.MonthSpec, tokens []string) (*Resolution, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	res := &Resolution{Dates: calendar.NewDateSet()}

	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}

		dates, reason := resolveToken(spec, tok)
		if reason != "" {
			res.Skipped = append(res.Skipped, SkippedToken{Token: tok, Reason: reason})
			continue
		}
		for _, d := range dates {
			res.Dates.Add(d)
		}
	}

	return res, nil
}

// ResolveStrings splits whole undelivered strings into tokens and resolves
// them all into one set
func ResolveStrings(spec calendar.MonthSpec, strs ...string) (*Resolution, error) {
	var tokens []string
	for _, s := range strs {
		tokens = append(tokens, SplitTokens(s)...)
	}
	return Resolve(spec, tokens)
}

// resolveToken resolves one trimmed token. It returns either the dates the
// token denotes or a non-empty skip reason.
func resolveToken(spec calendar.MonthSpec, tok string) ([]calendar.Date, string) {
	switch Classify(tok) {
	case KindSingleDay:
		return resolveSingleDay(spec, tok)
	case KindDayRange:
		return resolveDayRange(spec, tok)
	case KindWeekdayPlural:
		return resolveWeekdayPlural(spec, tok)
	case KindNthWeekday:
		return resolveNthWeekday(spec, tok)
	case KindAll:
		return calendar.MonthDates(spec.Month, spec.Year), ""
	default:
		return nil, "matches no grammar production"
	}
}

func resolveSingleDay(spec calendar.MonthSpec, tok string) ([]calendar.Date, string) {
	day, err := strconv.Atoi(tok)
	if err != nil {
		return nil, "not a number"
	}
	if day < 1 || day > calendar.DaysInMonth(spec.Month, spec.Year) {
		return nil, fmt.Sprintf("day %d does not occur in %s", day, spec)
	}
	return []calendar.Date{calendar.NewDate(spec.Year, time.Month(spec.Month), day)}, ""
}

func resolveDayRange(spec calendar.MonthSpec, tok string) ([]calendar.Date, string) {
	parts := hyphenSplitRe.Split(tok, 2)
	start, err1 := strconv.Atoi(parts[0])
	end, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil, "range bounds are not numbers"
	}

	if start < 1 || start > end || end > calendar.DaysInMonth(spec.Month, spec.Year) {
		return nil, fmt.Sprintf("%s has no days between %d and %d", spec, start, end)
	}

	dates := make([]calendar.Date, 0, end-start+1)
	for day := start; day <= end; day++ {
		dates = append(dates, calendar.NewDate(spec.Year, time.Month(spec.Month), day))
	}
	return dates, ""
}

func resolveWeekdayPlural(spec calendar.MonthSpec, tok string) ([]calendar.Date, string) {
	w, ok := weekdayOrdinal(strings.TrimSuffix(tok, "s"))
	if !ok {
		return nil, "unknown weekday name"
	}

	var dates []calendar.Date
	for _, d := range calendar.MonthDates(spec.Month, spec.Year) {
		if d.WeekdayIndex() == w {
			dates = append(dates, d)
		}
	}
	return dates, ""
}

func resolveNthWeekday(spec calendar.MonthSpec, tok string) ([]calendar.Date, string) {
	parts := hyphenSplitRe.Split(tok, 2)
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, "ordinal is not a number"
	}

	w, ok := weekdayOrdinal(parts[1])
	if !ok {
		return nil, "unknown weekday name"
	}

	counts, cerr := calendar.WeekdayOccurrenceCounts(spec.Month, spec.Year)
	if cerr != nil {
		return nil, cerr.Error()
	}
	if n < 1 || n > counts[w] {
		return nil, fmt.Sprintf("%s does not have %d %ss", spec, n, parts[1])
	}

	seen := 0
	for _, d := range calendar.MonthDates(spec.Month, spec.Year) {
		if d.WeekdayIndex() != w {
			continue
		}
		seen++
		if seen == n {
			return []calendar.Date{d}, ""
		}
	}
	return nil, fmt.Sprintf("%s does not have %d %ss", spec, n, parts[1])
}

func weekdayOrdinal(name string) (int, bool) {
	for w, n := range calendar.WeekdayNames {
		if n == name {
			return w, true
		}
	}
	return 0, false
}

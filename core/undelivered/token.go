// Package undelivered parses the mini-language describing dates a paper was
// not delivered.
//
// A full undelivered string is a comma-separated list of tokens. Each token
// matches exactly one production:
//
//	7           single day
//	5-17        day range, bounds inclusive
//	mondays     every occurrence of a weekday (plural, lowercase)
//	2-monday    the nth occurrence of a weekday (singular, lowercase)
//	all         every day of the month (case-insensitive)
package undelivered

import (
	"regexp"
	"strings"

	"paperbill/core/calendar"
)

// TokenKind identifies which grammar production a token matches
type TokenKind int

const (
	// KindInvalid matches no production
	KindInvalid TokenKind = iota

	// KindSingleDay is a 1-2 digit day number
	KindSingleDay

	// KindDayRange is two day numbers joined by a hyphen
	KindDayRange

	// KindWeekdayPlural is a lowercase plural weekday name
	KindWeekdayPlural

	// KindNthWeekday is a single digit and a lowercase singular weekday name
	KindNthWeekday

	// KindAll is the literal "all"
	KindAll
)

// String returns the production name
func (k TokenKind) String() string {
	switch k {
	case KindSingleDay:
		return "single-day"
	case KindDayRange:
		return "day-range"
	case KindWeekdayPlural:
		return "weekday-plural"
	case KindNthWeekday:
		return "nth-weekday"
	case KindAll:
		return "all"
	default:
		return "invalid"
	}
}

var (
	// list of comma-separated values built from word characters and hyphens,
	// optional spaces around commas, optional trailing comma
	csvRe = regexp.MustCompile(`^[-\w]+( *, *[-\w]+)*( *,)?$`)

	singleDayRe = regexp.MustCompile(`^\d{1,2}$`)
	dayRangeRe  = regexp.MustCompile(`^\d{1,2} *- *\d{1,2}$`)
	allRe       = regexp.MustCompile(`^[aA][lL]{2}$`)

	// built from the canonical weekday table
	weekdayPluralRe *regexp.Regexp
	nthWeekdayRe    *regexp.Regexp

	hyphenSplitRe = regexp.MustCompile(` *- *`)
)

func init() {
	names := strings.Join(calendar.WeekdayNames[:], "|")
	weekdayPluralRe = regexp.MustCompile(`^(` + names + `)s$`)
	nthWeekdayRe = regexp.MustCompile(`^\d *- *(` + names + `)$`)
}

// Classify maps a raw token to the production it matches, or KindInvalid.
// Both validation and resolution dispatch through this, so an accepted token
// is always handled by exactly one production.
func Classify(token string) TokenKind {
	switch {
	case singleDayRe.MatchString(token):
		return KindSingleDay
	case dayRangeRe.MatchString(token):
		return KindDayRange
	case weekdayPluralRe.MatchString(token):
		return KindWeekdayPlural
	case nthWeekdayRe.MatchString(token):
		return KindNthWeekday
	case allRe.MatchString(token):
		return KindAll
	default:
		return KindInvalid
	}
}

// SplitTokens splits a full undelivered string into its trimmed tokens,
// dropping empties from a trailing comma
func SplitTokens(s string) []string {
	var tokens []string
	for _, raw := range strings.Split(s, ",") {
		tok := strings.TrimSpace(raw)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

package undelivered

import (
	"paperbill/internal/errors"
)

// ValidateString syntactically checks a full undelivered string before it is
// parsed or persisted. An empty string is valid and means no exceptions.
//
// The check is purely syntactic: it does not confirm that a day number fits
// the month or that an nth weekday actually occurs. Those are semantic
// concerns, tolerated during resolution.
func ValidateString(s string) error {
	if s == "" {
		return nil
	}

	if !csvRe.MatchString(s) {
		return errors.InvalidUndeliveredString(s)
	}

	for _, tok := range SplitTokens(s) {
		if Classify(tok) == KindInvalid {
			return errors.InvalidUndeliveredString(tok)
		}
	}

	return nil
}

// ValidateStrings checks each string in turn, failing on the first invalid one
func ValidateStrings(strs ...string) error {
	for _, s := range strs {
		if err := ValidateString(s); err != nil {
			return err
		}
	}
	return nil
}

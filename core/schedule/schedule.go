// Package schedule models the weekly delivery and price table of a paper.
package schedule

import (
	"regexp"

	"github.com/shopspring/decimal"

	"paperbill/core/calendar"
	"paperbill/internal/errors"
)

// Entry is the delivery flag and price for one weekday
type Entry struct {
	// Delivered reports whether the paper arrives on this weekday
	Delivered bool `json:"delivered"`

	// Price is the per-copy price on this weekday. Conventionally zero when
	// Delivered is false; the cost calculator treats undelivered weekdays as
	// zero regardless.
	Price decimal.Decimal `json:"price"`
}

// Schedule is the Monday-first weekly table for one paper
type Schedule [calendar.DaysPerWeek]Entry

// Paper is a deliverable subscription snapshot handed to the core by the
// persistence collaborator
type Paper struct {
	// ID is an opaque identifier
	ID string `json:"id"`

	// Name is the human-readable paper name
	Name string `json:"name"`

	// Schedule is the weekly delivery/price table
	Schedule Schedule `json:"schedule"`
}

// DeliveredCount returns how many weekdays the paper is delivered on
func (s Schedule) DeliveredCount() int {
	n := 0
	for _, e := range s {
		if e.Delivered {
			n++
		}
	}
	return n
}

// seven Y/N flags, Monday-first, no separator
var deliveryDaysRe = regexp.MustCompile(`^[YN]{7}$`)

// ParseDeliveryDays decodes a seven-character "YNYYNNY" flag string into
// Monday-first delivery flags
func ParseDeliveryDays(s string) ([calendar.DaysPerWeek]bool, error) {
	var days [calendar.DaysPerWeek]bool
	if !deliveryDaysRe.MatchString(s) {
		return days, errors.Newf(errors.TypeInput,
			"delivery days must be exactly 7 'Y' or 'N' characters, got %q", s)
	}
	for i, c := range s {
		days[i] = c == 'Y'
	}
	return days, nil
}

// Build assembles a Schedule from delivery flags and the prices of the
// delivered weekdays, in weekday order. Undelivered weekdays get price zero.
func Build(delivered [calendar.DaysPerWeek]bool, prices []decimal.Decimal) (Schedule, error) {
	var sched Schedule

	wanted := 0
	for _, d := range delivered {
		if d {
			wanted++
		}
	}
	if len(prices) != wanted {
		return sched, errors.Newf(errors.TypeInput,
			"expected %d prices for %d delivered weekdays, got %d", wanted, wanted, len(prices))
	}

	next := 0
	for w := 0; w < calendar.DaysPerWeek; w++ {
		if !delivered[w] {
			sched[w] = Entry{}
			continue
		}
		price := prices[next]
		next++
		if price.IsNegative() {
			return Schedule{}, errors.Newf(errors.TypeInput,
				"price for %s must not be negative", calendar.WeekdayNames[w])
		}
		sched[w] = Entry{Delivered: true, Price: price}
	}

	return sched, nil
}

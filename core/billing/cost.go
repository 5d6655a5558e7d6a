// Package billing computes the monthly cost of delivered papers.
package billing

import (
	"github.com/shopspring/decimal"

	"paperbill/core/calendar"
	"paperbill/core/schedule"
	"paperbill/core/undelivered"
)

// Result is one month's bill across all papers. It is computed fresh on every
// call; the core keeps no state between calls.
type Result struct {
	// Spec is the billed month
	Spec calendar.MonthSpec `json:"spec"`

	// Costs maps paper ID to that paper's cost for the month
	Costs map[string]decimal.Decimal `json:"costs"`

	// Total is the sum over all papers
	Total decimal.Decimal `json:"total"`

	// UndeliveredDates maps paper ID to its resolved non-delivery dates,
	// kept for audit logging
	UndeliveredDates map[string]calendar.DateSet `json:"undelivered_dates"`

	// Skipped maps paper ID to tokens that resolved to no dates, for
	// user-facing diagnostics
	Skipped map[string][]undelivered.SkippedToken `json:"skipped,omitempty"`
}

// CostOfPaper computes one paper's cost for a month from the month's weekday
// occurrence counts, the paper's resolved non-delivery dates, and its weekly
// schedule.
//
// Weekdays the paper is not delivered on contribute nothing regardless of the
// price on file. A missed count exceeding the weekday's occurrences clamps to
// zero rather than going negative.
func CostOfPaper(counts [calendar.DaysPerWeek]int, undeliveredDates calendar.DateSet, sched schedule.Schedule) decimal.Decimal {
	var missed [calendar.DaysPerWeek]int
	for d := range undeliveredDates {
		missed[d.WeekdayIndex()]++
	}

	total := decimal.Zero
	for w := 0; w < calendar.DaysPerWeek; w++ {
		if !sched[w].Delivered {
			continue
		}
		delivered := counts[w] - missed[w]
		if delivered < 0 {
			delivered = 0
		}
		total = total.Add(sched[w].Price.Mul(decimal.NewFromInt(int64(delivered))))
	}

	return total
}

// CalculateMonth computes every paper's cost for the month plus the grand
// total. Weekday occurrence counts are computed once and shared. tokens maps
// paper ID to that paper's undelivered tokens; papers with no entry are
// billed as fully delivered.
func CalculateMonth(spec calendar.MonthSpec, papers []schedule.Paper, tokens map[string][]string) (*Result, error) {
	counts, err := calendar.WeekdayOccurrenceCounts(spec.Month, spec.Year)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Spec:             spec,
		Costs:            make(map[string]decimal.Decimal, len(papers)),
		Total:            decimal.Zero,
		UndeliveredDates: make(map[string]calendar.DateSet, len(papers)),
	}

	for _, paper := range papers {
		resolution, err := undelivered.Resolve(spec, tokens[paper.ID])
		if err != nil {
			return nil, err
		}

		cost := CostOfPaper(counts, resolution.Dates, paper.Schedule)
		result.Costs[paper.ID] = cost
		result.Total = result.Total.Add(cost)
		result.UndeliveredDates[paper.ID] = resolution.Dates

		if len(resolution.Skipped) > 0 {
			if result.Skipped == nil {
				result.Skipped = make(map[string][]undelivered.SkippedToken)
			}
			result.Skipped[paper.ID] = resolution.Skipped
		}
	}

	return result, nil
}

// Package engine orchestrates a month's bill calculation: load records,
// resolve undelivered strings, compute costs, optionally log the result.
// The engine performs no cost logic itself.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paperbill/adapters/storage"
	"paperbill/core/billing"
	"paperbill/core/calendar"
	"paperbill/core/schedule"
	"paperbill/core/undelivered"
	"paperbill/internal/logging"
)

// Engine runs bill calculations against a store
type Engine struct {
	store storage.Store
}

// New creates an engine
func New(store storage.Store) *Engine {
	return &Engine{store: store}
}

// Bill is one month's bill, ready for rendering or logging
type Bill struct {
	// Spec is the billed month
	Spec calendar.MonthSpec `json:"spec"`

	// Lines holds per-paper results, sorted by paper name
	Lines []BillLine `json:"lines"`

	// Total is the grand total across papers
	Total decimal.Decimal `json:"total"`

	// LogID is set when the result was persisted as a bill log
	LogID string `json:"log_id,omitempty"`
}

// BillLine is one paper's share of the bill
type BillLine struct {
	// PaperID identifies the paper
	PaperID string `json:"paper_id"`

	// Name is the paper name
	Name string `json:"name"`

	// Cost is the paper's cost for the month
	Cost decimal.Decimal `json:"cost"`

	// UndeliveredDates are the resolved non-delivery dates, in order
	UndeliveredDates []calendar.Date `json:"undelivered_dates,omitempty"`

	// Skipped lists tokens that matched no dates, for diagnostics
	Skipped []undelivered.SkippedToken `json:"skipped,omitempty"`
}

// CalculateMonth computes the bill for every stored paper. When saveLog is
// set, the result is persisted as a bill log for later audit.
func (e *Engine) CalculateMonth(ctx context.Context, spec calendar.MonthSpec, saveLog bool) (*Bill, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	records, err := e.store.GetPapers(ctx)
	if err != nil {
		return nil, err
	}

	stringRecords, err := e.store.GetUndeliveredStrings(ctx, &storage.StringFilter{
		Month: spec.Month,
		Year:  spec.Year,
	})
	if err != nil {
		return nil, err
	}

	tokens := make(map[string][]string)
	for _, rec := range stringRecords {
		tokens[rec.PaperID] = append(tokens[rec.PaperID], undelivered.SplitTokens(rec.Value)...)
	}

	papers := make([]schedule.Paper, 0, len(records))
	names := make(map[string]string, len(records))
	for _, rec := range records {
		papers = append(papers, rec.Paper())
		names[rec.ID] = rec.Name
	}

	result, err := billing.CalculateMonth(spec, papers, tokens)
	if err != nil {
		return nil, err
	}

	bill := &Bill{Spec: spec, Total: result.Total}
	for _, paper := range papers {
		line := BillLine{
			PaperID:          paper.ID,
			Name:             names[paper.ID],
			Cost:             result.Costs[paper.ID],
			UndeliveredDates: result.UndeliveredDates[paper.ID].Sorted(),
			Skipped:          result.Skipped[paper.ID],
		}
		bill.Lines = append(bill.Lines, line)
	}
	sort.Slice(bill.Lines, func(i, j int) bool {
		return bill.Lines[i].Name < bill.Lines[j].Name
	})

	logging.Info("calculated monthly bill",
		zap.Int("month", spec.Month),
		zap.Int("year", spec.Year),
		zap.Int("papers", len(bill.Lines)),
		zap.String("total", bill.Total.StringFixed(2)))

	if saveLog {
		log := e.buildLog(bill)
		if err := e.store.SaveBillLog(ctx, log); err != nil {
			return nil, err
		}
		bill.LogID = log.ID
	}

	return bill, nil
}

func (e *Engine) buildLog(bill *Bill) *storage.BillLog {
	log := &storage.BillLog{
		Month:     bill.Spec.Month,
		Year:      bill.Spec.Year,
		Timestamp: time.Now(),
		Total:     bill.Total,
	}
	for _, line := range bill.Lines {
		log.Entries = append(log.Entries, storage.BillLogEntry{
			PaperID:          line.PaperID,
			PaperName:        line.Name,
			Cost:             line.Cost,
			UndeliveredDates: line.UndeliveredDates,
		})
	}
	return log
}

// Package engine - end-to-end calculation tests against the memory backend
package engine

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"paperbill/adapters/storage"
	"paperbill/core/calendar"
	"paperbill/core/schedule"
	"paperbill/internal/errors"
)

// seedPaper stores a paper delivered Wed-Fri and Sunday at prices 2, 2, 5, 1
func seedPaper(t *testing.T, store storage.Store, name string) *storage.PaperRecord {
	t.Helper()
	delivered := [calendar.DaysPerWeek]bool{false, false, true, true, true, false, true}
	prices := []decimal.Decimal{
		decimal.NewFromInt(2),
		decimal.NewFromInt(2),
		decimal.NewFromInt(5),
		decimal.NewFromInt(1),
	}
	sched, err := schedule.Build(delivered, prices)
	if err != nil {
		t.Fatal(err)
	}
	record, err := store.AddPaper(context.Background(), name, sched)
	if err != nil {
		t.Fatal(err)
	}
	return record
}

func TestCalculateMonthFullDelivery(t *testing.T) {
	store := storage.NewMemoryStore()
	seedPaper(t, store, "Daily Herald")

	bill, err := New(store).CalculateMonth(context.Background(), calendar.MonthSpec{Month: 1, Year: 2022}, false)
	if err != nil {
		t.Fatal(err)
	}

	if len(bill.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(bill.Lines))
	}
	if !bill.Lines[0].Cost.Equal(decimal.NewFromInt(41)) {
		t.Errorf("cost = %s, want 41", bill.Lines[0].Cost)
	}
	if !bill.Total.Equal(decimal.NewFromInt(41)) {
		t.Errorf("total = %s, want 41", bill.Total)
	}
	if bill.LogID != "" {
		t.Error("LogID should be empty when logging is off")
	}
}

func TestCalculateMonthAppliesUndeliveredStrings(t *testing.T) {
	store := storage.NewMemoryStore()
	record := seedPaper(t, store, "Daily Herald")
	ctx := context.Background()
	spec := calendar.MonthSpec{Month: 1, Year: 2022}

	// 2022-01-02 is a Sunday, price 1
	if err := store.AddUndeliveredStrings(ctx, spec, record.ID, "2"); err != nil {
		t.Fatal(err)
	}

	bill, err := New(store).CalculateMonth(ctx, spec, false)
	if err != nil {
		t.Fatal(err)
	}
	if !bill.Total.Equal(decimal.NewFromInt(40)) {
		t.Errorf("total = %s, want 40", bill.Total)
	}
	if len(bill.Lines[0].UndeliveredDates) != 1 {
		t.Fatalf("got %d undelivered dates, want 1", len(bill.Lines[0].UndeliveredDates))
	}
	if bill.Lines[0].UndeliveredDates[0] != calendar.NewDate(2022, time.January, 2) {
		t.Errorf("undelivered date = %s, want 2022-01-02", bill.Lines[0].UndeliveredDates[0])
	}
}

func TestCalculateMonthIgnoresOtherMonths(t *testing.T) {
	store := storage.NewMemoryStore()
	record := seedPaper(t, store, "Daily Herald")
	ctx := context.Background()

	// strings recorded for February must not affect January
	feb := calendar.MonthSpec{Month: 2, Year: 2022}
	if err := store.AddUndeliveredStrings(ctx, feb, record.ID, "all"); err != nil {
		t.Fatal(err)
	}

	bill, err := New(store).CalculateMonth(ctx, calendar.MonthSpec{Month: 1, Year: 2022}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !bill.Total.Equal(decimal.NewFromInt(41)) {
		t.Errorf("total = %s, want 41", bill.Total)
	}
}

func TestCalculateMonthSortsLinesByName(t *testing.T) {
	store := storage.NewMemoryStore()
	seedPaper(t, store, "Weekend Post")
	seedPaper(t, store, "Daily Herald")

	bill, err := New(store).CalculateMonth(context.Background(), calendar.MonthSpec{Month: 1, Year: 2022}, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(bill.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(bill.Lines))
	}
	if bill.Lines[0].Name != "Daily Herald" || bill.Lines[1].Name != "Weekend Post" {
		t.Errorf("lines not sorted by name: %q, %q", bill.Lines[0].Name, bill.Lines[1].Name)
	}
	if !bill.Total.Equal(decimal.NewFromInt(82)) {
		t.Errorf("total = %s, want 82", bill.Total)
	}
}

func TestCalculateMonthSavesLog(t *testing.T) {
	store := storage.NewMemoryStore()
	seedPaper(t, store, "Daily Herald")
	ctx := context.Background()

	bill, err := New(store).CalculateMonth(ctx, calendar.MonthSpec{Month: 1, Year: 2022}, true)
	if err != nil {
		t.Fatal(err)
	}
	if bill.LogID == "" {
		t.Fatal("LogID should be set when logging is on")
	}

	logs, err := store.ListBillLogs(ctx, &storage.LogFilter{Month: 1, Year: 2022})
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if logs[0].ID != bill.LogID {
		t.Errorf("log ID = %q, want %q", logs[0].ID, bill.LogID)
	}
	if !logs[0].Total.Equal(bill.Total) {
		t.Errorf("logged total = %s, want %s", logs[0].Total, bill.Total)
	}
	if len(logs[0].Entries) != 1 || logs[0].Entries[0].PaperName != "Daily Herald" {
		t.Errorf("log entries = %v", logs[0].Entries)
	}
}

func TestCalculateMonthSurfacesSkippedTokens(t *testing.T) {
	store := storage.NewMemoryStore()
	record := seedPaper(t, store, "Daily Herald")
	ctx := context.Background()
	feb := calendar.MonthSpec{Month: 2, Year: 2022}

	// syntactically valid, but February 2022 has only 28 days
	if err := store.AddUndeliveredStrings(ctx, feb, record.ID, "30"); err != nil {
		t.Fatal(err)
	}

	bill, err := New(store).CalculateMonth(ctx, feb, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(bill.Lines[0].Skipped) != 1 {
		t.Fatalf("expected one skipped token, got %v", bill.Lines[0].Skipped)
	}
	if bill.Lines[0].Skipped[0].Token != "30" {
		t.Errorf("skipped token = %q, want %q", bill.Lines[0].Skipped[0].Token, "30")
	}
}

func TestCalculateMonthRejectsBadSpec(t *testing.T) {
	store := storage.NewMemoryStore()
	_, err := New(store).CalculateMonth(context.Background(), calendar.MonthSpec{Month: 13, Year: 2022}, false)
	if !errors.IsType(err, errors.TypeCalendar) {
		t.Errorf("expected calendar error, got %v", err)
	}
}

func TestCalculateMonthNoPapers(t *testing.T) {
	store := storage.NewMemoryStore()
	bill, err := New(store).CalculateMonth(context.Background(), calendar.MonthSpec{Month: 1, Year: 2022}, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(bill.Lines) != 0 {
		t.Errorf("got %d lines, want 0", len(bill.Lines))
	}
	if !bill.Total.IsZero() {
		t.Errorf("total = %s, want 0", bill.Total)
	}
}

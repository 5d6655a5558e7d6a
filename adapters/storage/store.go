// Package storage persists papers, undelivered strings, and bill logs.
// Two backends: file (JSON on disk) and memory (for tests).
package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"paperbill/core/calendar"
	"paperbill/core/schedule"
	"paperbill/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Store is the storage interface
type Store interface {
	// AddPaper creates a paper; the name must not already exist
	AddPaper(ctx context.Context, name string, sched schedule.Schedule) (*PaperRecord, error)

	// EditPaper updates a paper's name and/or schedule; nil fields are left alone
	EditPaper(ctx context.Context, id string, name *string, sched *schedule.Schedule) error

	// DeletePaper removes a paper and its undelivered strings
	DeletePaper(ctx context.Context, id string) error

	// GetPaper retrieves one paper by ID
	GetPaper(ctx context.Context, id string) (*PaperRecord, error)

	// GetPapers retrieves all papers
	GetPapers(ctx context.Context) ([]*PaperRecord, error)

	// AddUndeliveredStrings records undelivered strings for a paper and month.
	// An empty paperID records them for every paper. Strings are validated
	// before anything is persisted.
	AddUndeliveredStrings(ctx context.Context, spec calendar.MonthSpec, paperID string, values ...string) error

	// DeleteUndeliveredStrings removes strings matching the filter; at least
	// one filter field must be set, and something must match
	DeleteUndeliveredStrings(ctx context.Context, filter *StringFilter) error

	// GetUndeliveredStrings retrieves strings matching the filter; a nil
	// filter matches everything
	GetUndeliveredStrings(ctx context.Context, filter *StringFilter) ([]*UndeliveredRecord, error)

	// SaveBillLog stores the result of one month's calculation
	SaveBillLog(ctx context.Context, log *BillLog) error

	// ListBillLogs retrieves bill logs matching the filter
	ListBillLogs(ctx context.Context, filter *LogFilter) ([]*BillLog, error)

	// Close closes the store
	Close() error
}

// PaperRecord is a stored paper
type PaperRecord struct {
	// ID is unique identifier
	ID string `json:"id"`

	// Name is the paper name, unique across the store
	Name string `json:"name"`

	// Schedule is the weekly delivery/price table
	Schedule schedule.Schedule `json:"schedule"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at"`
}

// Paper converts the record to the core snapshot type
func (r *PaperRecord) Paper() schedule.Paper {
	return schedule.Paper{ID: r.ID, Name: r.Name, Schedule: r.Schedule}
}

// UndeliveredRecord is one stored undelivered string
type UndeliveredRecord struct {
	// ID is unique identifier
	ID string `json:"id"`

	// PaperID is the paper the string applies to
	PaperID string `json:"paper_id"`

	// Month and Year tag the string with its month
	Month int `json:"month"`
	Year  int `json:"year"`

	// Value is the raw undelivered string, already validated
	Value string `json:"value"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at"`
}

// StringFilter filters undelivered-string queries. Zero fields match
// everything.
type StringFilter struct {
	ID      string
	PaperID string
	Month   int
	Year    int
	Value   string
}

func (f *StringFilter) empty() bool {
	return f == nil || (f.ID == "" && f.PaperID == "" && f.Month == 0 && f.Year == 0 && f.Value == "")
}

func (f *StringFilter) matches(r *UndeliveredRecord) bool {
	if f == nil {
		return true
	}
	if f.ID != "" && r.ID != f.ID {
		return false
	}
	if f.PaperID != "" && r.PaperID != f.PaperID {
		return false
	}
	if f.Month != 0 && r.Month != f.Month {
		return false
	}
	if f.Year != 0 && r.Year != f.Year {
		return false
	}
	if f.Value != "" && r.Value != f.Value {
		return false
	}
	return true
}

// BillLog is the stored result of one month's calculation
type BillLog struct {
	// ID is unique identifier
	ID string `json:"id"`

	// Month and Year identify the billed month
	Month int `json:"month"`
	Year  int `json:"year"`

	// Timestamp is when the calculation ran
	Timestamp time.Time `json:"timestamp"`

	// Entries holds per-paper outcomes
	Entries []BillLogEntry `json:"entries"`

	// Total is the grand total across papers
	Total decimal.Decimal `json:"total"`
}

// BillLogEntry is one paper's outcome within a bill log
type BillLogEntry struct {
	// PaperID identifies the paper
	PaperID string `json:"paper_id"`

	// PaperName is the name at calculation time
	PaperName string `json:"paper_name"`

	// Cost is the paper's cost for the month
	Cost decimal.Decimal `json:"cost"`

	// UndeliveredDates are the resolved non-delivery dates, for audit
	UndeliveredDates []calendar.Date `json:"undelivered_dates,omitempty"`
}

// LogFilter filters bill-log queries
type LogFilter struct {
	PaperID string
	Month   int
	Year    int
	Since   time.Time
}

func (f *LogFilter) matches(l *BillLog) bool {
	if f == nil {
		return true
	}
	if f.Month != 0 && l.Month != f.Month {
		return false
	}
	if f.Year != 0 && l.Year != f.Year {
		return false
	}
	if !f.Since.IsZero() && l.Timestamp.Before(f.Since) {
		return false
	}
	if f.PaperID != "" {
		found := false
		for _, e := range l.Entries {
			if e.PaperID == f.PaperID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// New creates a store by backend type
func New(backend Backend, dataDir string) (Store, error) {
	switch backend {
	case BackendFile:
		return NewFileStore(dataDir)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported storage backend: %s", backend)
	}
}

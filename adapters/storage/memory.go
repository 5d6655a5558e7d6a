package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"paperbill/core/calendar"
	"paperbill/core/schedule"
	"paperbill/core/undelivered"
	"paperbill/internal/errors"
)

// state holds the record sets shared by both backends. Callers hold the
// owning store's lock.
type state struct {
	Papers  []*PaperRecord       `json:"papers"`
	Strings []*UndeliveredRecord `json:"strings"`
	Logs    []*BillLog           `json:"logs"`
}

func (st *state) paperByID(id string) *PaperRecord {
	for _, p := range st.Papers {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (st *state) paperByName(name string) *PaperRecord {
	for _, p := range st.Papers {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (st *state) addPaper(name string, sched schedule.Schedule) (*PaperRecord, error) {
	if st.paperByName(name) != nil {
		return nil, errors.Conflict("paper " + name + " already exists")
	}
	record := &PaperRecord{
		ID:        uuid.New().String(),
		Name:      name,
		Schedule:  sched,
		CreatedAt: time.Now(),
	}
	st.Papers = append(st.Papers, record)
	return record, nil
}

func (st *state) editPaper(id string, name *string, sched *schedule.Schedule) error {
	record := st.paperByID(id)
	if record == nil {
		return errors.NotFound("paper", id)
	}
	if name != nil {
		if other := st.paperByName(*name); other != nil && other.ID != id {
			return errors.Conflict("paper " + *name + " already exists")
		}
		record.Name = *name
	}
	if sched != nil {
		record.Schedule = *sched
	}
	return nil
}

func (st *state) deletePaper(id string) error {
	idx := -1
	for i, p := range st.Papers {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.NotFound("paper", id)
	}
	st.Papers = append(st.Papers[:idx], st.Papers[idx+1:]...)

	// drop the paper's undelivered strings too
	kept := st.Strings[:0]
	for _, s := range st.Strings {
		if s.PaperID != id {
			kept = append(kept, s)
		}
	}
	st.Strings = kept
	return nil
}

func (st *state) addStrings(spec calendar.MonthSpec, paperID string, values []string) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	// reject malformed input before anything reaches the record set
	if err := undelivered.ValidateStrings(values...); err != nil {
		return err
	}

	var paperIDs []string
	if paperID != "" {
		if st.paperByID(paperID) == nil {
			return errors.NotFound("paper", paperID)
		}
		paperIDs = []string{paperID}
	} else {
		for _, p := range st.Papers {
			paperIDs = append(paperIDs, p.ID)
		}
	}

	now := time.Now()
	for _, pid := range paperIDs {
		for _, value := range values {
			if value == "" {
				continue
			}
			st.Strings = append(st.Strings, &UndeliveredRecord{
				ID:        uuid.New().String(),
				PaperID:   pid,
				Month:     spec.Month,
				Year:      spec.Year,
				Value:     value,
				CreatedAt: now,
			})
		}
	}
	return nil
}

func (st *state) deleteStrings(filter *StringFilter) error {
	if filter.empty() {
		return errors.New(errors.TypeInput, "no filter parameters given")
	}

	var kept []*UndeliveredRecord
	removed := 0
	for _, s := range st.Strings {
		if filter.matches(s) {
			removed++
		} else {
			kept = append(kept, s)
		}
	}
	if removed == 0 {
		return errors.NotFound("undelivered string", "matching filter")
	}
	st.Strings = kept
	return nil
}

func (st *state) getStrings(filter *StringFilter) []*UndeliveredRecord {
	var out []*UndeliveredRecord
	for _, s := range st.Strings {
		if filter.matches(s) {
			out = append(out, s)
		}
	}
	return out
}

func (st *state) saveLog(log *BillLog) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}
	st.Logs = append(st.Logs, log)
}

func (st *state) listLogs(filter *LogFilter) []*BillLog {
	var out []*BillLog
	for _, l := range st.Logs {
		if filter.matches(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// MemoryStore is an in-memory storage backend (for testing)
type MemoryStore struct {
	st state
	mu sync.RWMutex
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AddPaper(ctx context.Context, name string, sched schedule.Schedule) (*PaperRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.addPaper(name, sched)
}

func (s *MemoryStore) EditPaper(ctx context.Context, id string, name *string, sched *schedule.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.editPaper(id, name, sched)
}

func (s *MemoryStore) DeletePaper(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.deletePaper(id)
}

func (s *MemoryStore) GetPaper(ctx context.Context, id string) (*PaperRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record := s.st.paperByID(id)
	if record == nil {
		return nil, errors.NotFound("paper", id)
	}
	return record, nil
}

func (s *MemoryStore) GetPapers(ctx context.Context) ([]*PaperRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*PaperRecord(nil), s.st.Papers...), nil
}

func (s *MemoryStore) AddUndeliveredStrings(ctx context.Context, spec calendar.MonthSpec, paperID string, values ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.addStrings(spec, paperID, values)
}

func (s *MemoryStore) DeleteUndeliveredStrings(ctx context.Context, filter *StringFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.deleteStrings(filter)
}

func (s *MemoryStore) GetUndeliveredStrings(ctx context.Context, filter *StringFilter) ([]*UndeliveredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.getStrings(filter), nil
}

func (s *MemoryStore) SaveBillLog(ctx context.Context, log *BillLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.saveLog(log)
	return nil
}

func (s *MemoryStore) ListBillLogs(ctx context.Context, filter *LogFilter) ([]*BillLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.listLogs(filter), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

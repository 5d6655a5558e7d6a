package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"paperbill/core/calendar"
	"paperbill/core/schedule"
	"paperbill/internal/errors"
)

const dataFileName = "paperbill.json"

// FileStore is a file-based storage backend. The whole record set is held in
// memory and written back as one JSON document after every mutation; the
// data is a few dozen papers at most.
type FileStore struct {
	path string
	st   state
	mu   sync.RWMutex
}

// NewFileStore creates a file store rooted at dataDir
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Storage("failed to create data directory", err)
	}

	s := &FileStore{path: filepath.Join(dataDir, dataFileName)}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Storage("failed to read data file", err)
	}
	if err := json.Unmarshal(data, &s.st); err != nil {
		return errors.Storage("failed to decode data file", err)
	}
	return nil
}

func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(&s.st, "", "  ")
	if err != nil {
		return errors.Storage("failed to encode data file", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Storage("failed to write data file", err)
	}
	return nil
}

func (s *FileStore) AddPaper(ctx context.Context, name string, sched schedule.Schedule) (*PaperRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := s.st.addPaper(name, sched)
	if err != nil {
		return nil, err
	}
	return record, s.persist()
}

func (s *FileStore) EditPaper(ctx context.Context, id string, name *string, sched *schedule.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.editPaper(id, name, sched); err != nil {
		return err
	}
	return s.persist()
}

func (s *FileStore) DeletePaper(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.deletePaper(id); err != nil {
		return err
	}
	return s.persist()
}

func (s *FileStore) GetPaper(ctx context.Context, id string) (*PaperRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record := s.st.paperByID(id)
	if record == nil {
		return nil, errors.NotFound("paper", id)
	}
	return record, nil
}

func (s *FileStore) GetPapers(ctx context.Context) ([]*PaperRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*PaperRecord(nil), s.st.Papers...), nil
}

func (s *FileStore) AddUndeliveredStrings(ctx context.Context, spec calendar.MonthSpec, paperID string, values ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.addStrings(spec, paperID, values); err != nil {
		return err
	}
	return s.persist()
}

func (s *FileStore) DeleteUndeliveredStrings(ctx context.Context, filter *StringFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.deleteStrings(filter); err != nil {
		return err
	}
	return s.persist()
}

func (s *FileStore) GetUndeliveredStrings(ctx context.Context, filter *StringFilter) ([]*UndeliveredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.getStrings(filter), nil
}

func (s *FileStore) SaveBillLog(ctx context.Context, log *BillLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.saveLog(log)
	return s.persist()
}

func (s *FileStore) ListBillLogs(ctx context.Context, filter *LogFilter) ([]*BillLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.listLogs(filter), nil
}

func (s *FileStore) Close() error {
	return nil
}

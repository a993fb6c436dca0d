package storage

import "errors"

// MemoryStore is an in-memory Store for tests and for running with
// persistence disabled. FailReads/FailWrites simulate a broken backend
// so fail-soft paths can be exercised.
type MemoryStore struct {
	Record     []byte
	HasRecord  bool
	FailReads  bool
	FailWrites bool
	Writes     int
}

var errSimulated = errors.New("simulated storage failure")

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read() ([]byte, bool, error) {
	if s.FailReads {
		return nil, false, errSimulated
	}
	if !s.HasRecord {
		return nil, false, nil
	}
	return s.Record, true, nil
}

func (s *MemoryStore) Write(data []byte) error {
	if s.FailWrites {
		return errSimulated
	}
	s.Record = append([]byte(nil), data...)
	s.HasRecord = true
	s.Writes++
	return nil
}

package session

import (
	"fmt"
	"sync"

	"github.com/hupe1980/roundtable/core"
)

// ErrNotFound is returned when no transcript or result exists for a session.
var ErrNotFound = fmt.Errorf("session not found")

// InMemoryStore is a volatile core.TranscriptStore implementation storing
// transcripts in a process-local map. It is safe for concurrent access and
// best suited for tests or ephemeral demo servers. Returned slices are
// copies to prevent external mutation of internal state.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*record
}

type record struct {
	messages []core.Message
	result   *core.Result
}

// NewInMemoryStore constructs an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]*record)}
}

// Append adds a message to the session transcript, creating it lazily.
func (s *InMemoryStore) Append(sessionID string, msg core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[sessionID]
	if !ok {
		rec = &record{}
		s.records[sessionID] = rec
	}
	rec.messages = append(rec.messages, msg)
	return nil
}

// Messages returns a copy of the transcript recorded so far.
func (s *InMemoryStore) Messages(sessionID string) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]core.Message, len(rec.messages))
	copy(out, rec.messages)
	return out, nil
}

// SaveResult records the final session result.
func (s *InMemoryStore) SaveResult(sessionID string, res *core.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[sessionID]
	if !ok {
		rec = &record{}
		s.records[sessionID] = rec
	}
	rec.result = res
	return nil
}

// Result returns the recorded final result.
func (s *InMemoryStore) Result(sessionID string) (*core.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[sessionID]
	if !ok || rec.result == nil {
		return nil, ErrNotFound
	}
	return rec.result, nil
}

// NewSink adapts a TranscriptStore into a core.Sink bound to one session.
// Store errors are swallowed: sinks are best-effort by contract and must
// never affect orchestration state.
func NewSink(store core.TranscriptStore, sessionID string) core.Sink {
	return core.SinkFunc(func(msg core.Message) {
		_ = store.Append(sessionID, msg)
	})
}

package artifact

import (
	"sync"

	"github.com/hupe1980/roundtable/core"
)

// InMemoryStore is a trivial in-process core.ArtifactStore implementation
// useful for tests, examples and single-process deployments. It keeps all
// artifacts in a nested map guarded by an RWMutex.
//
// Layout: sessionID -> artifactID -> artifact
//
// This implementation is intentionally minimal; it does not enforce
// retention limits, size quotas, or eviction. For production, prefer a
// durable implementation that survives process restarts.
type InMemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]map[string]core.Artifact
}

// NewInMemoryStore returns an empty in-memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{artifacts: make(map[string]map[string]core.Artifact)}
}

// Save stores the artifact for the given session. When an artifact with the
// same ID already exists its version counter is carried forward and bumped;
// fresh artifacts keep version 1. The stored copy is returned.
func (s *InMemoryStore) Save(sessionID string, art core.Artifact) (core.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, exists := s.artifacts[sessionID]
	if !exists {
		m = make(map[string]core.Artifact)
		s.artifacts[sessionID] = m
	}
	if prev, ok := m[art.ID]; ok {
		art.Version = prev.Version + 1
	} else if art.Version < 1 {
		art.Version = 1
	}
	m[art.ID] = art
	return art, nil
}

// Get returns the artifact stored under the given ID or ErrNotFound.
func (s *InMemoryStore) Get(sessionID, artifactID string) (core.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.artifacts[sessionID]
	if !ok {
		return core.Artifact{}, ErrNotFound
	}
	art, ok := m[artifactID]
	if !ok {
		return core.Artifact{}, ErrNotFound
	}
	return art, nil
}

// List returns all artifacts stored for the session. The slice is a
// snapshot and safe for caller mutation.
func (s *InMemoryStore) List(sessionID string) ([]core.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.artifacts[sessionID]
	if !ok {
		return []core.Artifact{}, nil
	}
	out := make([]core.Artifact, 0, len(m))
	for _, art := range m {
		out = append(out, art)
	}
	return out, nil
}

// Delete removes the artifact if present or returns ErrNotFound.
func (s *InMemoryStore) Delete(sessionID, artifactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.artifacts[sessionID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m[artifactID]; !ok {
		return ErrNotFound
	}
	delete(m, artifactID)
	return nil
}

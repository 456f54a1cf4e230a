package model

import (
	"context"
	"fmt"
	"sync"
)

// Info contains metadata about a client implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "anthropic", "openai", "mock", etc.
}

// Client is the minimal text-generation contract required by agents.
//
// Invoke must be idempotent-safe to call repeatedly and may fail with a
// generic error; callers enforce timeouts through ctx. The core mandates no
// retry/backoff, but callers may add it transparently at the call site.
type Client interface {
	Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Info() Info
}

// MockClient is a lightweight in-memory Client useful for tests & examples.
// It returns canned completions keyed by user prompt, falling back to a
// derived echo response.
type MockClient struct {
	mu        sync.RWMutex
	info      Info
	responses map[string]string
	fallback  string
}

// NewMockClient constructs a MockClient.
func NewMockClient(name string) *MockClient {
	return &MockClient{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a user prompt.
func (m *MockClient) AddResponse(userPrompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[userPrompt] = response
}

// SetFallback sets the completion returned for unregistered prompts.
func (m *MockClient) SetFallback(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = response
}

// Invoke implements Client.
func (m *MockClient) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if resp, ok := m.responses[userPrompt]; ok {
		return resp, nil
	}
	if m.fallback != "" {
		return m.fallback, nil
	}
	return fmt.Sprintf("Mock response to: %s", userPrompt), nil
}

// Info implements Client.
func (m *MockClient) Info() Info { return m.info }

// ScriptedClient replays a fixed sequence of completions, one per Invoke
// call, repeating the final entry once the script is exhausted. It is the
// preferred stub for orchestration tests because the n-th call is fully
// determined regardless of prompt content.
type ScriptedClient struct {
	mu     sync.Mutex
	script []string
	calls  int
	info   Info
}

// NewScriptedClient constructs a ScriptedClient from the given completions.
func NewScriptedClient(script ...string) *ScriptedClient {
	return &ScriptedClient{script: script, info: Info{Name: "scripted", Provider: "mock"}}
}

// Invoke implements Client.
func (s *ScriptedClient) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.script) == 0 {
		return "", fmt.Errorf("scripted client has no responses")
	}
	idx := s.calls
	if idx >= len(s.script) {
		idx = len(s.script) - 1
	}
	s.calls++
	return s.script[idx], nil
}

// Calls returns how many times Invoke has been called.
func (s *ScriptedClient) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Info implements Client.
func (s *ScriptedClient) Info() Info { return s.info }

// FailingClient always returns the configured error. Useful for exercising
// generation-failure recovery paths.
type FailingClient struct {
	Err error
}

// Invoke implements Client.
func (f FailingClient) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return "", fmt.Errorf("generation unavailable")
}

// Info implements Client.
func (f FailingClient) Info() Info { return Info{Name: "failing", Provider: "mock"} }

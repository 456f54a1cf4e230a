package core

import (
	"fmt"
	"sync"
	"time"
)

// Conversation is the mutable per-session state: the ordered message log,
// the artifact map, the current phase and the running token estimate. It is
// owned exclusively by one orchestrator instance for the duration of a
// session; agents only ever see read-only snapshots. It is safe for
// concurrent access.
//
// Contract:
//   - Messages are append-only and strictly ordered; timestamps never decrease
//   - The token estimate is monotonically non-decreasing
//   - The phase only moves forward
//   - The termination reason is set exactly once
type Conversation struct {
	ID        string       `json:"id"`
	Brief     ProjectBrief `json:"brief"`
	StartedAt time.Time    `json:"started_at"`

	mu          sync.RWMutex
	messages    []Message
	artifacts   map[string]Artifact
	phase       Phase
	totalTokens int
	reason      TerminationReason
	reasonSet   bool
}

// NewConversation creates an empty conversation for the given brief.
func NewConversation(id string, brief ProjectBrief) *Conversation {
	return &Conversation{
		ID:        id,
		Brief:     brief,
		StartedAt: time.Now().UTC(),
		messages:  []Message{},
		artifacts: map[string]Artifact{},
		phase:     PhaseInitialDiscussion,
	}
}

// AppendMessage appends a message to the log and returns the stored copy.
// Timestamps are clamped so the ordering invariant (non-decreasing) holds
// even when the caller-provided timestamp drifts backwards.
func (c *Conversation) AppendMessage(m Message) Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.messages); n > 0 && m.Timestamp.Before(c.messages[n-1].Timestamp) {
		m.Timestamp = c.messages[n-1].Timestamp
	}
	c.messages = append(c.messages, m)
	return m
}

// Messages returns a defensive copy of the full message log.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// MessageCount returns the number of appended messages.
func (c *Conversation) MessageCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// LastMessage returns the most recent message, if any.
func (c *Conversation) LastMessage() (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Recent returns the last n messages (most-recent-last) as a copy.
func (c *Conversation) Recent(n int) []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Tail(c.messages, n)
}

// PutArtifact stores an artifact under its ID.
func (c *Conversation) PutArtifact(a Artifact) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.artifacts[a.ID] = a
}

// Artifact returns the artifact stored under id.
func (c *Conversation) Artifact(id string) (Artifact, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.artifacts[id]
	return a, ok
}

// Artifacts returns a copy of the artifact map.
func (c *Conversation) Artifacts() map[string]Artifact {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Artifact, len(c.artifacts))
	for k, v := range c.artifacts {
		out[k] = v
	}
	return out
}

// AddTokens increases the running token estimate. Negative deltas are
// rejected to keep the estimate monotonic.
func (c *Conversation) AddTokens(n int) error {
	if n < 0 {
		return fmt.Errorf("token delta must be non-negative, got %d", n)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalTokens += n
	return nil
}

// TotalTokens returns the running token estimate.
func (c *Conversation) TotalTokens() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalTokens
}

// Phase returns the current phase.
func (c *Conversation) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// AdvancePhase moves to the given phase. Transitions are strictly forward;
// attempts to move backwards are rejected.
func (c *Conversation) AdvancePhase(p Phase) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.Index() < 0 {
		return fmt.Errorf("unknown phase %q", p)
	}
	if p.Index() < c.phase.Index() {
		return fmt.Errorf("phase transition %s -> %s is not forward", c.phase, p)
	}
	c.phase = p
	return nil
}

// Elapsed returns the wall-clock time since the session started.
func (c *Conversation) Elapsed() time.Duration { return time.Since(c.StartedAt) }

// SetTerminationReason records the reason the session stopped. Only the
// first call wins; subsequent calls report false and leave the reason
// untouched.
func (c *Conversation) SetTerminationReason(r TerminationReason) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reasonSet {
		return false
	}
	c.reason = r
	c.reasonSet = true
	return true
}

// TerminationReason returns the recorded reason and whether one was set.
func (c *Conversation) TerminationReason() (TerminationReason, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reason, c.reasonSet
}

// Clone returns a deep copy of the conversation safe for independent use.
func (c *Conversation) Clone() *Conversation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	clone := &Conversation{
		ID:          c.ID,
		Brief:       c.Brief,
		StartedAt:   c.StartedAt,
		messages:    make([]Message, len(c.messages)),
		artifacts:   make(map[string]Artifact, len(c.artifacts)),
		phase:       c.phase,
		totalTokens: c.totalTokens,
		reason:      c.reason,
		reasonSet:   c.reasonSet,
	}
	copy(clone.messages, c.messages)
	for k, v := range c.artifacts {
		clone.artifacts[k] = v
	}
	return clone
}

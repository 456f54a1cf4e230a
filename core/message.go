package core

import "time"

// MessageType categorizes a conversational turn.
type MessageType string

const (
	// MessageTypeDiscussion is a regular in-character contribution.
	MessageTypeDiscussion MessageType = "discussion"
	// MessageTypeDeliverable marks a turn that produced at least one artifact.
	MessageTypeDeliverable MessageType = "deliverable"
	// MessageTypeQuestion is a turn primarily asking the team something.
	MessageTypeQuestion MessageType = "question"
	// MessageTypeResponse is a reply turn, also used for in-band error notices.
	MessageTypeResponse MessageType = "response"
	// MessageTypeSummary is the single finalization turn closing a session.
	MessageTypeSummary MessageType = "summary"
)

// Message is one conversational turn. After creation it must be treated as
// immutable; the conversation log is append-only and its ordering defines
// the "recent history" windows handed to agents.
type Message struct {
	ID          string      `json:"id"`
	AgentID     string      `json:"agent_id"`
	Content     string      `json:"content"`
	Timestamp   time.Time   `json:"timestamp"`
	Type        MessageType `json:"type"`
	ReplyTo     string      `json:"reply_to,omitempty"`
	ArtifactIDs []string    `json:"artifact_ids,omitempty"`
}

// NewMessage creates a message authored by the given agent with a fresh ID
// and a UTC timestamp.
func NewMessage(agentID, content string, mt MessageType) Message {
	return Message{
		ID:        NewID(),
		AgentID:   agentID,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Type:      mt,
	}
}

// SpokeRecently reports whether agentID authored any of the last n messages.
func SpokeRecently(messages []Message, agentID string, n int) bool {
	if n <= 0 {
		return false
	}
	start := len(messages) - n
	if start < 0 {
		start = 0
	}
	for _, m := range messages[start:] {
		if m.AgentID == agentID {
			return true
		}
	}
	return false
}

// Tail returns the last n messages in history order (most-recent-last). The
// returned slice is a copy safe for caller mutation.
func Tail(messages []Message, n int) []Message {
	if n <= 0 {
		return []Message{}
	}
	start := len(messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(messages)-start)
	copy(out, messages[start:])
	return out
}

package core

import "time"

// Summary aggregates the headline numbers of a finished session.
type Summary struct {
	TotalMessages         int               `json:"total_messages"`
	TotalArtifacts        int               `json:"total_artifacts"`
	ParticipatingAgentIDs []string          `json:"participating_agent_ids"`
	Duration              time.Duration     `json:"duration"`
	TerminationReason     TerminationReason `json:"termination_reason"`
	TotalTokens           int               `json:"total_tokens"`
	RoundsCompleted       int               `json:"rounds_completed"`
}

// Result is the caller-visible outcome of a session. Once a session has
// begun there is no "crashed" outcome; the result always carries a definite
// termination reason, which may describe degraded completion.
type Result struct {
	SessionID string              `json:"session_id"`
	Messages  []Message           `json:"messages"`
	Artifacts map[string]Artifact `json:"artifacts"`

	// ClosingSummary is the text of the session's closing summary. It
	// normally also appears as the final summary message; when the token
	// budget is already spent at finalization the message is withheld and
	// the text is only available here.
	ClosingSummary string `json:"closing_summary,omitempty"`

	Summary Summary `json:"summary"`
}

// NewResult snapshots a conversation into a Result. roundsCompleted is
// supplied by the orchestrator since rounds are not part of conversation
// state.
func NewResult(conv *Conversation, roundsCompleted int) *Result {
	messages := conv.Messages()
	reason, ok := conv.TerminationReason()
	if !ok {
		reason = TerminationCompleted
	}

	seen := map[string]bool{}
	participants := make([]string, 0, 4)
	for _, m := range messages {
		if !seen[m.AgentID] {
			seen[m.AgentID] = true
			participants = append(participants, m.AgentID)
		}
	}

	artifacts := conv.Artifacts()

	return &Result{
		SessionID: conv.ID,
		Messages:  messages,
		Artifacts: artifacts,
		Summary: Summary{
			TotalMessages:         len(messages),
			TotalArtifacts:        len(artifacts),
			ParticipatingAgentIDs: participants,
			Duration:              conv.Elapsed(),
			TerminationReason:     reason,
			TotalTokens:           conv.TotalTokens(),
			RoundsCompleted:       roundsCompleted,
		},
	}
}

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConversation() *Conversation {
	return NewConversation(NewID(), ProjectBrief{
		CompanyName:      "Acme",
		ProblemStatement: "manual route planning",
	})
}

func TestNewIDUnique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}

func TestAppendClampsBackwardsTimestamps(t *testing.T) {
	conv := testConversation()

	first := NewMessage("pm", "first", MessageTypeDiscussion)
	conv.AppendMessage(first)

	stale := NewMessage("eng", "second", MessageTypeDiscussion)
	stale.Timestamp = first.Timestamp.Add(-time.Minute)
	stored := conv.AppendMessage(stale)

	assert.False(t, stored.Timestamp.Before(first.Timestamp))

	msgs := conv.Messages()
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].Timestamp.Before(msgs[i-1].Timestamp))
	}
}

func TestTerminationReasonSetOnce(t *testing.T) {
	conv := testConversation()

	_, ok := conv.TerminationReason()
	assert.False(t, ok)

	assert.True(t, conv.SetTerminationReason(TerminationConvergence))
	assert.False(t, conv.SetTerminationReason(TerminationMaxMessages))

	reason, ok := conv.TerminationReason()
	require.True(t, ok)
	assert.Equal(t, TerminationConvergence, reason)
}

func TestAddTokensRejectsNegative(t *testing.T) {
	conv := testConversation()

	require.NoError(t, conv.AddTokens(10))
	require.Error(t, conv.AddTokens(-1))
	assert.Equal(t, 10, conv.TotalTokens())
}

func TestPhaseOnlyMovesForward(t *testing.T) {
	conv := testConversation()
	assert.Equal(t, PhaseInitialDiscussion, conv.Phase())

	require.NoError(t, conv.AdvancePhase(PhaseConsolidation))
	require.Error(t, conv.AdvancePhase(PhaseDeepDive))
	require.Error(t, conv.AdvancePhase(Phase("made_up")))
	assert.Equal(t, PhaseConsolidation, conv.Phase())

	require.NoError(t, conv.AdvancePhase(PhaseCompleted))
}

func TestPhaseOrdering(t *testing.T) {
	assert.True(t, PhaseInitialDiscussion.Before(PhaseDeepDive))
	assert.True(t, PhaseFinalization.Before(PhaseCompleted))
	assert.False(t, PhaseCompleted.Before(PhaseInitialDiscussion))
	assert.Equal(t, -1, Phase("bogus").Index())
}

func TestCloneIsIndependent(t *testing.T) {
	conv := testConversation()
	conv.AppendMessage(NewMessage("pm", "original", MessageTypeDiscussion))
	conv.PutArtifact(NewArtifact(ArtifactTypePRD, "PRD", "body", "pm"))

	clone := conv.Clone()
	clone.AppendMessage(NewMessage("eng", "clone only", MessageTypeDiscussion))

	assert.Equal(t, 1, conv.MessageCount())
	assert.Equal(t, 2, clone.MessageCount())
	assert.Len(t, clone.Artifacts(), 1)
}

func TestBriefValidate(t *testing.T) {
	err := ProjectBrief{}.Validate()
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Field, "company_name")
	assert.Contains(t, cfgErr.Field, "problem_statement")

	assert.NoError(t, ProjectBrief{CompanyName: "Acme", ProblemStatement: "x"}.Validate())
}

func TestNewResultDefaults(t *testing.T) {
	conv := testConversation()
	conv.AppendMessage(NewMessage("pm", "hello", MessageTypeDiscussion))
	conv.AppendMessage(NewMessage("eng", "hi", MessageTypeDiscussion))
	conv.AppendMessage(NewMessage("pm", "again", MessageTypeDiscussion))

	res := NewResult(conv, 2)

	assert.Equal(t, conv.ID, res.SessionID)
	assert.Equal(t, 3, res.Summary.TotalMessages)
	assert.Equal(t, 2, res.Summary.RoundsCompleted)
	// Participants in first-seen order, no duplicates.
	assert.Equal(t, []string{"pm", "eng"}, res.Summary.ParticipatingAgentIDs)
	// No explicit reason recorded means the session wound down on its own.
	assert.Equal(t, TerminationCompleted, res.Summary.TerminationReason)
}

func TestTailAndSpokeRecently(t *testing.T) {
	msgs := []Message{
		NewMessage("a", "1", MessageTypeDiscussion),
		NewMessage("b", "2", MessageTypeDiscussion),
		NewMessage("c", "3", MessageTypeDiscussion),
	}

	tail := Tail(msgs, 2)
	require.Len(t, tail, 2)
	assert.Equal(t, "2", tail[0].Content)
	assert.Equal(t, "3", tail[1].Content)
	assert.Empty(t, Tail(msgs, 0))
	assert.Len(t, Tail(msgs, 10), 3)

	assert.True(t, SpokeRecently(msgs, "c", 1))
	assert.False(t, SpokeRecently(msgs, "a", 2))
	assert.True(t, SpokeRecently(msgs, "a", 3))
}

func TestGenerationErrorUnwrap(t *testing.T) {
	cause := assert.AnError
	err := &GenerationError{AgentID: "eng", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "eng")
}

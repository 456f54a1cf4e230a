package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/roundtable/agent"
	"github.com/hupe1980/roundtable/artifact"
	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/model"
)

var pmProfile = core.AgentProfile{
	ID:          "pm",
	DisplayName: "Priya",
	Role:        "Product Manager",
}

var engProfile = core.AgentProfile{
	ID:          "eng",
	DisplayName: "Marcus",
	Role:        "Engineering Lead",
	Expertise:   []string{"route", "consolidate"},
}

var testBrief = core.ProjectBrief{
	CompanyName:      "Acme",
	Industry:         "logistics",
	ProblemStatement: "manual route planning overhaul",
}

// heuristicAgent builds an agent that never burns model calls on
// willingness polls, keeping turn order fully deterministic.
func heuristicAgent(p core.AgentProfile, client model.Client) *agent.Agent {
	return agent.New(p, client, func(o *agent.Options) { o.HeuristicOnly = true })
}

func generousLimits() core.Limits {
	return core.Limits{
		MaxMessages:          15,
		MaxTokens:            1_000_000,
		MaxDuration:          time.Hour,
		MaxRoundsPerPhase:    3,
		ConvergenceThreshold: 3,
		ConvergenceScore:     0.8,
	}
}

func TestStartTerminatesOnConvergence(t *testing.T) {
	pm := heuristicAgent(pmProfile, model.NewScriptedClient(
		"I agree, let's do it, Marcus.",
		"Summary: we aligned on the route overhaul.",
	))
	eng := heuristicAgent(engProfile, model.NewScriptedClient(
		"I agree with that direction, Priya.",
	))

	e, err := New([]*agent.Agent{pm, eng}, func(o *Options) {
		o.Limits = generousLimits()
		o.Selector = FirstSelector{}
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	assert.Equal(t, core.TerminationConvergence, res.Summary.TerminationReason)
	// Seed, three agreement turns, closing summary.
	require.Len(t, res.Messages, 5)
	assert.Equal(t, 3, res.Summary.RoundsCompleted)
	assert.Equal(t, []string{"pm", "eng"}, res.Summary.ParticipatingAgentIDs)

	last := res.Messages[len(res.Messages)-1]
	assert.Equal(t, core.MessageTypeSummary, last.Type)
	assert.Equal(t, "pm", last.AgentID)
	assert.Equal(t, "Summary: we aligned on the route overhaul.", last.Content)

	assert.Positive(t, res.Summary.TotalTokens)
}

func TestStartTerminatesOnMessageBudget(t *testing.T) {
	pm := heuristicAgent(pmProfile, model.NewScriptedClient(
		"Marcus, what about the database migration?",
		"Wrap-up: migration scope is the open question.",
	))
	eng := heuristicAgent(engProfile, model.NewScriptedClient(
		"We need Priya's call on scope.\n**Proposal**: split the rollout into two stages.",
	))

	store := artifact.NewInMemoryStore()
	limits := generousLimits()
	limits.MaxMessages = 4
	limits.MaxRoundsPerPhase = 10

	e, err := New([]*agent.Agent{pm, eng}, func(o *Options) {
		o.Limits = limits
		o.Selector = FirstSelector{}
		o.ArtifactStore = store
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	assert.Equal(t, core.TerminationMaxMessages, res.Summary.TerminationReason)
	// One slot is reserved for the closing summary, so the transcript never
	// exceeds the cap even after finalization.
	require.Len(t, res.Messages, 4)
	assert.LessOrEqual(t, res.Summary.TotalMessages, limits.MaxMessages)

	last := res.Messages[len(res.Messages)-1]
	assert.Equal(t, core.MessageTypeSummary, last.Type)
	assert.Equal(t, last.Content, res.ClosingSummary)

	// The lead authors the closing summary, so only the discussion portion
	// is checked for back-to-back turns.
	for i := 1; i < len(res.Messages)-1; i++ {
		assert.NotEqual(t, res.Messages[i-1].AgentID, res.Messages[i].AgentID, "consecutive turns by the same agent")
	}
}

func TestStartExtractsArtifacts(t *testing.T) {
	pm := heuristicAgent(pmProfile, model.NewScriptedClient(
		"Marcus, what about the database migration?",
		"Wrap-up.",
	))
	eng := heuristicAgent(engProfile, model.NewScriptedClient(
		"We need Priya's call on scope.\n**Proposal**: split the rollout into two stages.",
	))

	store := artifact.NewInMemoryStore()

	e, err := New([]*agent.Agent{pm, eng}, func(o *Options) {
		o.Limits = generousLimits()
		o.Selector = FirstSelector{}
		o.ArtifactStore = store
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	require.NotEmpty(t, res.Artifacts)

	var deliverable *core.Message
	for i := range res.Messages {
		if res.Messages[i].Type == core.MessageTypeDeliverable {
			deliverable = &res.Messages[i]
			break
		}
	}
	require.NotNil(t, deliverable, "expected a deliverable message")
	require.Len(t, deliverable.ArtifactIDs, 1)

	art, ok := res.Artifacts[deliverable.ArtifactIDs[0]]
	require.True(t, ok, "deliverable references an artifact missing from the result")
	assert.Equal(t, "eng", art.AuthorAgentID)
	assert.Contains(t, art.Content, "**Proposal**")

	persisted, err := store.List(res.SessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, persisted)
}

func TestStartTerminatesOnTokenBudget(t *testing.T) {
	pm := heuristicAgent(pmProfile, model.NewScriptedClient("Short wrap-up."))
	eng := heuristicAgent(engProfile, model.NewScriptedClient("irrelevant"))

	limits := generousLimits()
	limits.MaxTokens = 10

	e, err := New([]*agent.Agent{pm, eng}, func(o *Options) {
		o.Limits = limits
		o.Selector = FirstSelector{}
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	assert.Equal(t, core.TerminationMaxTokens, res.Summary.TerminationReason)
	// The seed is the single message allowed to cross the tiny budget. With
	// the tokens already spent the summary message is withheld and its text
	// is only surfaced on the result.
	require.Len(t, res.Messages, 1)
	assert.Equal(t, core.MessageTypeDiscussion, res.Messages[0].Type)
	assert.GreaterOrEqual(t, res.Summary.TotalTokens, limits.MaxTokens)
	assert.Contains(t, res.ClosingSummary, "Thanks everyone")
}

func TestStartRecoversFromGenerationFailure(t *testing.T) {
	pm := heuristicAgent(pmProfile, model.NewScriptedClient("Closing summary."))
	eng := heuristicAgent(engProfile, model.FailingClient{})

	e, err := New([]*agent.Agent{pm, eng}, func(o *Options) {
		o.Limits = generousLimits()
		o.Selector = FirstSelector{}
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	notices := 0
	for _, m := range res.Messages {
		if m.Type == core.MessageTypeResponse && m.AgentID == "eng" {
			notices++
		}
	}
	assert.Positive(t, notices, "failed generations should surface as in-band notices")

	last := res.Messages[len(res.Messages)-1]
	assert.Equal(t, core.MessageTypeSummary, last.Type)
	assert.Equal(t, "Closing summary.", last.Content)
	assert.Equal(t, core.TerminationCompleted, res.Summary.TerminationReason)
}

func TestStartSummaryFallback(t *testing.T) {
	pm := heuristicAgent(pmProfile, model.FailingClient{})

	e, err := New([]*agent.Agent{pm}, func(o *Options) {
		o.Limits = generousLimits()
		o.Selector = FirstSelector{}
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	last := res.Messages[len(res.Messages)-1]
	assert.Equal(t, core.MessageTypeSummary, last.Type)
	assert.Contains(t, last.Content, "Thanks everyone")
	assert.Equal(t, core.TerminationCompleted, res.Summary.TerminationReason)
}

func TestStartSkipsDeepDiveWhenBudgetTight(t *testing.T) {
	pm := heuristicAgent(pmProfile, model.NewScriptedClient(
		"Marcus, what about the database migration?",
		"Marcus, any other blockers?",
		"Here is the wrap-up.",
	))
	eng := heuristicAgent(engProfile, model.NewScriptedClient(
		"We need Priya's call on scope before we commit to anything.",
	))

	limits := generousLimits()
	limits.MaxMessages = 9

	e, err := New([]*agent.Agent{pm, eng}, func(o *Options) {
		o.Limits = limits
		o.Selector = FirstSelector{}
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	for _, m := range res.Messages {
		assert.NotContains(t, m.Content, "dig deeper", "deep dive should be skipped under a tight message budget")
	}
	consolidated := false
	for _, m := range res.Messages {
		if m.Content == "We're running short on time. Let's consolidate: what are we committing to, and what are we cutting?" {
			consolidated = true
		}
	}
	assert.True(t, consolidated, "consolidation should still run")

	// Both agents are recent speakers once consolidation opens, so the phase
	// goes quiet after its seed and the session completes.
	assert.Equal(t, core.TerminationCompleted, res.Summary.TerminationReason)
	assert.Equal(t, 3, res.Summary.RoundsCompleted)
	require.Len(t, res.Messages, 6)
	assert.LessOrEqual(t, res.Summary.TotalMessages, limits.MaxMessages)
}

func TestStartRejectsInvalidBrief(t *testing.T) {
	pm := heuristicAgent(pmProfile, model.NewMockClient("test"))

	e, err := New([]*agent.Agent{pm})
	require.NoError(t, err)

	_, err = e.Start(context.Background(), core.ProjectBrief{})
	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	a1 := heuristicAgent(pmProfile, model.NewMockClient("test"))
	a2 := heuristicAgent(pmProfile, model.NewMockClient("test"))
	_, err = New([]*agent.Agent{a1, a2})
	require.ErrorAs(t, err, &cfgErr)

	_, err = New([]*agent.Agent{a1}, func(o *Options) { o.LeadID = "ghost" })
	require.ErrorAs(t, err, &cfgErr)
}

func TestSinksReceiveEveryMessage(t *testing.T) {
	pm := heuristicAgent(pmProfile, model.NewScriptedClient(
		"I agree, let's do it, Marcus.",
		"Summary text.",
	))
	eng := heuristicAgent(engProfile, model.NewScriptedClient(
		"I agree with that direction, Priya.",
	))

	var seen []core.Message
	sink := core.SinkFunc(func(m core.Message) { seen = append(seen, m) })
	panicky := core.SinkFunc(func(core.Message) { panic("boom") })

	e, err := New([]*agent.Agent{pm, eng}, func(o *Options) {
		o.Limits = generousLimits()
		o.Selector = FirstSelector{}
		o.Sinks = []core.Sink{panicky, sink}
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	require.Len(t, seen, len(res.Messages))
	for i, m := range res.Messages {
		assert.Equal(t, m.ID, seen[i].ID)
	}
}

// lastSelector picks the final candidate, the opposite of registration
// order, to make selector involvement visible.
type lastSelector struct{}

func (lastSelector) Select(candidates []*agent.Agent) *agent.Agent {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[len(candidates)-1]
}

func TestPickSpeakerBreaksRelevanceTieByRegistrationOrder(t *testing.T) {
	pm := heuristicAgent(pmProfile, model.NewMockClient("test"))
	eng := heuristicAgent(engProfile, model.NewMockClient("test"))

	e, err := New([]*agent.Agent{pm, eng}, func(o *Options) {
		o.Selector = lastSelector{}
	})
	require.NoError(t, err)

	// Both candidates spoke within the cooldown window, so selection falls
	// through to keyword relevance.
	history := []core.Message{
		core.NewMessage("pm", "First point.", core.MessageTypeDiscussion),
		core.NewMessage("eng", "Second point.", core.MessageTypeDiscussion),
	}

	// Equal relevance: the first registered candidate wins and the selector
	// is not consulted.
	got := e.pickSpeaker([]*agent.Agent{pm, eng}, history, history[1])
	assert.Equal(t, "pm", got.ID())

	// Higher relevance still wins outright.
	last := core.NewMessage("design", "Focus on the route next.", core.MessageTypeDiscussion)
	got = e.pickSpeaker([]*agent.Agent{pm, eng}, history, last)
	assert.Equal(t, "eng", got.ID())
}

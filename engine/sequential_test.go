package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/roundtable/agent"
	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/model"
)

func sequentialTeam() []*agent.Agent {
	pm := heuristicAgent(core.AgentProfile{ID: "pm", DisplayName: "Priya", Role: "Product Manager"},
		model.NewScriptedClient(
			"From product, the pilot must ship before the holidays.",
			"From product, the pilot must ship before the holidays.",
			"From product, the pilot must ship before the holidays.",
			"Final wrap-up: pilot scope locked.",
		))
	eng := heuristicAgent(core.AgentProfile{ID: "eng", DisplayName: "Marcus", Role: "Engineering Lead"},
		model.NewScriptedClient("Engineering needs two sprints for the routing service."))
	design := heuristicAgent(core.AgentProfile{ID: "design", DisplayName: "Sofia", Role: "Design Lead"},
		model.NewScriptedClient("Design will prototype the dispatcher screens first."))
	mkt := heuristicAgent(core.AgentProfile{ID: "mkt", DisplayName: "Dana", Role: "Marketing Lead"},
		model.NewScriptedClient("Marketing wants a beta story for the launch."))
	return []*agent.Agent{pm, eng, design, mkt}
}

func TestSequentialEveryAgentParticipates(t *testing.T) {
	e, err := NewSequential(sequentialTeam(), func(o *Options) {
		o.Limits = generousLimits()
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	// Seed plus three full sweeps of four agents, then the summary. The
	// remaining budget is too small for the later phases.
	require.Len(t, res.Messages, 14)
	assert.Equal(t, 3, res.Summary.RoundsCompleted)
	assert.Equal(t, core.TerminationMaxRounds, res.Summary.TerminationReason)
	assert.ElementsMatch(t, []string{"pm", "eng", "design", "mkt"}, res.Summary.ParticipatingAgentIDs)

	last := res.Messages[len(res.Messages)-1]
	assert.Equal(t, core.MessageTypeSummary, last.Type)
	assert.Equal(t, "Final wrap-up: pilot scope locked.", last.Content)
}

func TestSequentialConvergence(t *testing.T) {
	pm := heuristicAgent(core.AgentProfile{ID: "pm", DisplayName: "Priya", Role: "Product Manager"},
		model.NewScriptedClient("I agree, that works for me.", "Summary: consensus reached early."))
	eng := heuristicAgent(core.AgentProfile{ID: "eng", DisplayName: "Marcus", Role: "Engineering Lead"},
		model.NewScriptedClient("I agree, that works for me."))
	design := heuristicAgent(core.AgentProfile{ID: "design", DisplayName: "Sofia", Role: "Design Lead"},
		model.NewScriptedClient("I agree, that works for me."))
	mkt := heuristicAgent(core.AgentProfile{ID: "mkt", DisplayName: "Dana", Role: "Marketing Lead"},
		model.NewScriptedClient("I agree, that works for me."))

	e, err := NewSequential([]*agent.Agent{pm, eng, design, mkt}, func(o *Options) {
		o.Limits = generousLimits()
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	assert.Equal(t, core.TerminationConvergence, res.Summary.TerminationReason)
	// Seed, three agreements firing the streak, summary. The fourth agent
	// never gets a turn.
	require.Len(t, res.Messages, 5)
	assert.NotContains(t, res.Summary.ParticipatingAgentIDs, "mkt")
}

func TestSequentialMessageBudget(t *testing.T) {
	limits := generousLimits()
	limits.MaxMessages = 3

	e, err := NewSequential(sequentialTeam(), func(o *Options) {
		o.Limits = limits
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	assert.Equal(t, core.TerminationMaxMessages, res.Summary.TerminationReason)
	// Seed, one turn, then the reserved summary slot stops the sweep; the
	// closing summary fills that slot so the cap is never exceeded.
	require.Len(t, res.Messages, 3)
	assert.LessOrEqual(t, res.Summary.TotalMessages, limits.MaxMessages)
	assert.Equal(t, 0, res.Summary.RoundsCompleted)
	assert.Equal(t, core.MessageTypeSummary, res.Messages[2].Type)
}

func TestSequentialFullTeamScenario(t *testing.T) {
	// Four fixed profiles, stubbed clients that turn agreeable on their
	// second call, and a tight budget: the session must end by consensus or
	// by the message cap, never open-ended, with every agent heard.
	pm := heuristicAgent(core.AgentProfile{ID: "pm", DisplayName: "Priya", Role: "Product Manager"},
		model.NewScriptedClient(
			"From product, the pilot must ship before the holidays.",
			"I agree, sounds good.",
			"Summary: plan agreed.",
		))
	eng := heuristicAgent(core.AgentProfile{ID: "eng", DisplayName: "Marcus", Role: "Engineering Lead"},
		model.NewScriptedClient("Engineering needs two sprints for the routing service.", "I agree, sounds good."))
	design := heuristicAgent(core.AgentProfile{ID: "design", DisplayName: "Sofia", Role: "Design Lead"},
		model.NewScriptedClient("Design will prototype the dispatcher screens first.", "I agree, sounds good."))
	mkt := heuristicAgent(core.AgentProfile{ID: "mkt", DisplayName: "Dana", Role: "Marketing Lead"},
		model.NewScriptedClient("Marketing wants a beta story for the launch.", "I agree, sounds good."))

	limits := generousLimits()
	limits.MaxMessages = 10
	limits.MaxRoundsPerPhase = 2
	limits.ConvergenceThreshold = 2

	e, err := NewSequential([]*agent.Agent{pm, eng, design, mkt}, func(o *Options) {
		o.Limits = limits
	})
	require.NoError(t, err)

	res, err := e.Start(context.Background(), testBrief)
	require.NoError(t, err)

	assert.Equal(t, core.TerminationConvergence, res.Summary.TerminationReason)
	assert.ElementsMatch(t, []string{"pm", "eng", "design", "mkt"}, res.Summary.ParticipatingAgentIDs)
	assert.LessOrEqual(t, res.Summary.TotalMessages, limits.MaxMessages)
}

func TestSequentialImplementsOrchestrator(t *testing.T) {
	e, err := NewSequential(sequentialTeam())
	require.NoError(t, err)

	var o Orchestrator = e
	assert.NotNil(t, o)
}

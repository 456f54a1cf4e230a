package engine

import (
	"context"

	"github.com/hupe1980/roundtable/agent"
	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/prompt"
)

// SequentialEngine is the round-robin reference orchestrator: every agent
// speaks exactly once per round in registration order, with no willingness
// polling and no speaker selection. Given deterministic clients its output
// order is fully reproducible, which makes it the preferred harness for
// tests and offline evaluation.
type SequentialEngine struct {
	*Engine
}

// NewSequential creates a SequentialEngine over the given agents. It accepts
// the same options as New; the Selector option is ignored since turn order
// is fixed.
func NewSequential(agents []*agent.Agent, optFns ...func(o *Options)) (*SequentialEngine, error) {
	e, err := New(agents, optFns...)
	if err != nil {
		return nil, err
	}
	return &SequentialEngine{Engine: e}, nil
}

// Start implements Orchestrator with simple-order turn determination:
// budgets are checked before every turn, every message is observed for
// convergence, and phases end only when their round allotment is spent.
func (s *SequentialEngine) Start(ctx context.Context, brief core.ProjectBrief) (*core.Result, error) {
	if err := brief.Validate(); err != nil {
		return nil, err
	}

	conv := core.NewConversation(core.NewID(), brief)
	s.logger.Info("session started", "session_id", conv.ID, "agents", len(s.agents), "mode", "sequential")

	rounds := 0

phases:
	for _, phase := range core.DiscussionPhases() {
		if s.skipPhase(phase, conv) {
			s.logger.Debug("phase skipped, message budget too tight", "session_id", conv.ID, "phase", string(phase))
			continue
		}
		if err := conv.AdvancePhase(phase); err != nil {
			return nil, err
		}
		s.strategy.Reset()

		if v := s.checkBudget(conv); v.ShouldTerminate {
			conv.SetTerminationReason(v.Reason)
			break phases
		}
		s.record(conv, core.NewMessage(s.lead.ID(), prompt.SeedText(phase, brief), core.MessageTypeDiscussion), false)

		for r := 0; r < s.limits.MaxRoundsPerPhase; r++ {
			for _, a := range s.agents {
				if v := s.checkBudget(conv); v.ShouldTerminate {
					conv.SetTerminationReason(v.Reason)
					break phases
				}
				msg := s.produce(ctx, a, brief, conv.Messages(), phaseDirective(phase))
				if s.record(conv, msg, true) {
					conv.SetTerminationReason(core.TerminationConvergence)
					break phases
				}
			}
			rounds++
		}
	}

	if _, ok := conv.TerminationReason(); !ok {
		conv.SetTerminationReason(core.TerminationMaxRounds)
	}

	closing := s.finalize(ctx, conv)

	res := core.NewResult(conv, rounds)
	res.ClosingSummary = closing
	s.logger.Info("session completed",
		"session_id", conv.ID,
		"reason", string(res.Summary.TerminationReason),
		"messages", res.Summary.TotalMessages,
		"artifacts", res.Summary.TotalArtifacts,
		"tokens", res.Summary.TotalTokens)
	return res, nil
}

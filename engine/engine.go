package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/roundtable/agent"
	"github.com/hupe1980/roundtable/artifact"
	"github.com/hupe1980/roundtable/convergence"
	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/prompt"
	"github.com/hupe1980/roundtable/token"
)

const (
	// deepDiveReserve is the minimum remaining message budget required to
	// enter the deep-dive phase; with less the phase is skipped so the
	// session still reaches consolidation and a summary.
	deepDiveReserve = 8
	// consolidationReserve is the equivalent floor for consolidation.
	consolidationReserve = 4
	// maxEmptyRounds is the number of consecutive rounds without a willing
	// speaker after which the current phase ends.
	maxEmptyRounds = 2
	// speakerCooldown is the look-back window used to prefer agents that
	// have not spoken recently.
	speakerCooldown = 2
	// summaryReserve is the message slot held back from the discussion
	// budget so the closing summary never pushes the transcript past
	// MaxMessages.
	summaryReserve = 1
)

// Options configures an orchestrator.
type Options struct {
	// Limits is the session budget; zero-valued fields fall back to
	// core.DefaultLimits.
	Limits core.Limits
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
	// Estimator prices messages against the token budget. Defaults to the
	// character heuristic.
	Estimator token.Estimator
	// Convergence decides when the team has reached agreement. Defaults to
	// a streak strategy seeded with Limits.ConvergenceThreshold.
	Convergence convergence.Strategy
	// Selector breaks ties between willing speakers. Defaults to a
	// clock-seeded RandomSelector. Ignored by SequentialEngine.
	Selector Selector
	// Detector extracts deliverables from messages. A default detector is
	// created when nil.
	Detector *artifact.Detector
	// Sinks receive every appended message synchronously, in order.
	Sinks []core.Sink
	// ArtifactStore, when set, additionally persists extracted artifacts
	// outside the conversation.
	ArtifactStore core.ArtifactStore
	// LeadID names the facilitating agent authoring seeds and the closing
	// summary. Defaults to the first agent.
	LeadID string
}

// Engine is the canonical orchestrator. Each round it polls all agents
// concurrently for willingness to react to the last message, selects one
// speaker, records the response and checks budgets and convergence. An
// Engine is safe to reuse across sequential sessions but must not run two
// sessions concurrently when a stateful convergence strategy is shared.
type Engine struct {
	agents    []*agent.Agent
	lead      *agent.Agent
	limits    core.Limits
	logger    logging.Logger
	estimator token.Estimator
	strategy  convergence.Strategy
	selector  Selector
	detector  *artifact.Detector
	sinks     []core.Sink
	artifacts core.ArtifactStore
}

// New creates an Engine over the given agents.
func New(agents []*agent.Agent, optFns ...func(o *Options)) (*Engine, error) {
	if len(agents) == 0 {
		return nil, &core.ConfigurationError{Field: "agents", Reason: "at least one agent is required"}
	}

	opts := Options{Limits: core.DefaultLimits()}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Limits = opts.Limits.WithDefaults()

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Estimator == nil {
		opts.Estimator = token.CharEstimator{}
	}
	if opts.Convergence == nil {
		threshold := opts.Limits.ConvergenceThreshold
		opts.Convergence = convergence.NewStreakStrategy(func(o *convergence.StreakOptions) {
			o.Threshold = threshold
		})
	}
	if opts.Selector == nil {
		opts.Selector = NewRandomSelector(0)
	}
	if opts.Detector == nil {
		opts.Detector = artifact.NewDetector()
	}

	seen := make(map[string]bool, len(agents))
	for _, a := range agents {
		id := a.ID()
		if id == "" {
			return nil, &core.ConfigurationError{Field: "agents", Reason: "agent with empty id"}
		}
		if seen[id] {
			return nil, &core.ConfigurationError{Field: "agents", Reason: fmt.Sprintf("duplicate agent id %q", id)}
		}
		seen[id] = true
	}

	lead := agents[0]
	if opts.LeadID != "" {
		lead = nil
		for _, a := range agents {
			if a.ID() == opts.LeadID {
				lead = a
				break
			}
		}
		if lead == nil {
			return nil, &core.ConfigurationError{Field: "lead_id", Reason: fmt.Sprintf("no agent with id %q", opts.LeadID)}
		}
	}

	return &Engine{
		agents:    agents,
		lead:      lead,
		limits:    opts.Limits,
		logger:    opts.Logger,
		estimator: opts.Estimator,
		strategy:  opts.Convergence,
		selector:  opts.Selector,
		detector:  opts.Detector,
		sinks:     opts.Sinks,
		artifacts: opts.ArtifactStore,
	}, nil
}

// Start implements Orchestrator. It runs the full phase progression and
// always returns a result with a definite termination reason; only an
// invalid brief produces an error.
func (e *Engine) Start(ctx context.Context, brief core.ProjectBrief) (*core.Result, error) {
	if err := brief.Validate(); err != nil {
		return nil, err
	}

	conv := core.NewConversation(core.NewID(), brief)
	e.logger.Info("session started", "session_id", conv.ID, "agents", len(e.agents), "company", brief.CompanyName)

	rounds := 0
	endedQuietly := false

phases:
	for _, phase := range core.DiscussionPhases() {
		if e.skipPhase(phase, conv) {
			e.logger.Debug("phase skipped, message budget too tight", "session_id", conv.ID, "phase", string(phase))
			continue
		}
		if err := conv.AdvancePhase(phase); err != nil {
			return nil, err
		}
		e.strategy.Reset()
		endedQuietly = false

		if v := e.checkBudget(conv); v.ShouldTerminate {
			conv.SetTerminationReason(v.Reason)
			break phases
		}
		e.record(conv, core.NewMessage(e.lead.ID(), prompt.SeedText(phase, brief), core.MessageTypeDiscussion), false)

		emptyRounds := 0
		for r := 0; r < e.limits.MaxRoundsPerPhase; r++ {
			if v := e.checkBudget(conv); v.ShouldTerminate {
				conv.SetTerminationReason(v.Reason)
				break phases
			}

			last, _ := conv.LastMessage()
			history := conv.Messages()
			candidates := e.poll(ctx, last, history)
			if len(candidates) == 0 {
				emptyRounds++
				if emptyRounds >= maxEmptyRounds {
					endedQuietly = true
					break
				}
				continue
			}
			emptyRounds = 0

			speaker := e.pickSpeaker(candidates, history, last)
			start := time.Now()
			msg := e.produce(ctx, speaker, brief, history, phaseDirective(phase))
			converged := e.record(conv, msg, true)
			rounds++
			e.logger.Debug("round completed",
				"session_id", conv.ID, "phase", string(phase), "round", r+1,
				"speaker", speaker.ID(), "duration", time.Since(start))

			if converged {
				conv.SetTerminationReason(core.TerminationConvergence)
				break phases
			}
		}
	}

	if _, ok := conv.TerminationReason(); !ok {
		if endedQuietly {
			conv.SetTerminationReason(core.TerminationCompleted)
		} else {
			conv.SetTerminationReason(core.TerminationMaxRounds)
		}
	}

	closing := e.finalize(ctx, conv)

	res := core.NewResult(conv, rounds)
	res.ClosingSummary = closing
	e.logger.Info("session completed",
		"session_id", conv.ID,
		"reason", string(res.Summary.TerminationReason),
		"messages", res.Summary.TotalMessages,
		"artifacts", res.Summary.TotalArtifacts,
		"tokens", res.Summary.TotalTokens,
		"duration", res.Summary.Duration)
	return res, nil
}

// skipPhase reports whether the remaining message budget is too small for
// the phase to produce anything useful.
func (e *Engine) skipPhase(phase core.Phase, conv *core.Conversation) bool {
	remaining := e.limits.MaxMessages - conv.MessageCount()
	switch phase {
	case core.PhaseDeepDive:
		return remaining < deepDiveReserve
	case core.PhaseConsolidation:
		return remaining < consolidationReserve
	default:
		return false
	}
}

// checkBudget evaluates the session budgets against a message cap reduced by
// summaryReserve, so the transcript including the closing summary stays
// within MaxMessages.
func (e *Engine) checkBudget(conv *core.Conversation) convergence.Verdict {
	limits := e.limits
	if limits.MaxMessages > 0 {
		limits.MaxMessages -= summaryReserve
		if limits.MaxMessages <= 0 {
			return convergence.Verdict{ShouldTerminate: true, Reason: core.TerminationMaxMessages}
		}
	}
	return convergence.CheckBudget(conv.MessageCount(), conv.TotalTokens(), conv.Elapsed(), limits)
}

// poll asks every agent concurrently whether it wants to react to the last
// message. The returned candidates preserve registration order.
func (e *Engine) poll(ctx context.Context, last core.Message, history []core.Message) []*agent.Agent {
	willing := make([]bool, len(e.agents))

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range e.agents {
		g.Go(func() error {
			willing[i] = a.ShouldRespond(gctx, last, history)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]*agent.Agent, 0, len(e.agents))
	for i, a := range e.agents {
		if willing[i] {
			out = append(out, a)
		}
	}
	return out
}

// pickSpeaker prefers willing agents that have not spoken within the
// cooldown window; the selector picks among those. When everyone is a recent
// speaker the highest keyword relevance against the last message wins, with
// ties going to the earliest registered candidate.
func (e *Engine) pickSpeaker(candidates []*agent.Agent, history []core.Message, last core.Message) *agent.Agent {
	fresh := make([]*agent.Agent, 0, len(candidates))
	for _, a := range candidates {
		if !core.SpokeRecently(history, a.ID(), speakerCooldown) {
			fresh = append(fresh, a)
		}
	}
	if len(fresh) > 0 {
		return e.selector.Select(fresh)
	}

	best := candidates[0]
	bestScore := best.RelevanceScore(last.Content)
	for _, a := range candidates[1:] {
		if s := a.RelevanceScore(last.Content); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best
}

// produce asks the speaker for a response. Generation failures degrade into
// an in-band response message so the session keeps its flow.
func (e *Engine) produce(ctx context.Context, speaker *agent.Agent, brief core.ProjectBrief, history []core.Message, directive string) core.Message {
	text, err := speaker.Respond(ctx, brief, history, directive)
	if err != nil {
		e.logger.Warn("generation failed, recording in-band notice", "agent_id", speaker.ID(), "error", err)
		return core.NewMessage(speaker.ID(),
			"I'm having trouble articulating this right now. Please continue without me for a moment.",
			core.MessageTypeResponse)
	}
	return core.NewMessage(speaker.ID(), text, core.MessageTypeDiscussion)
}

// record runs the append pipeline for one message: artifact extraction when
// requested, the append itself, token accounting, sink notification and the
// convergence observation. It returns the convergence verdict for the
// message.
func (e *Engine) record(conv *core.Conversation, msg core.Message, extract bool) bool {
	if extract && msg.Type == core.MessageTypeDiscussion {
		if art, ok := e.detector.Extract(msg); ok {
			stored := art
			if e.artifacts != nil {
				if saved, err := e.artifacts.Save(conv.ID, art); err != nil {
					e.logger.Warn("artifact store rejected artifact", "artifact_id", art.ID, "error", err)
				} else {
					stored = saved
				}
			}
			conv.PutArtifact(stored)
			msg.Type = core.MessageTypeDeliverable
			msg.ArtifactIDs = append(msg.ArtifactIDs, stored.ID)
			e.logger.Info("artifact extracted", "session_id", conv.ID, "artifact_id", stored.ID, "type", string(stored.Type), "author", msg.AgentID)
		}
	}

	stored := conv.AppendMessage(msg)
	_ = conv.AddTokens(e.estimator.Estimate(stored.Content))
	for _, s := range e.sinks {
		e.notify(s, stored)
	}
	return e.strategy.Observe(stored, conv.Messages())
}

// notify delivers a message to one sink, containing any panic.
func (e *Engine) notify(s core.Sink, msg core.Message) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("sink panicked", "panic", fmt.Sprint(r))
		}
	}()
	s.OnMessage(msg)
}

// finalize produces the single closing summary, which occupies the message
// slot held back by checkBudget. A failed generation falls back to a static
// wrap-up. When the token budget is already spent the summary message is
// withheld so the token bound holds; the returned text is still surfaced on
// the result.
func (e *Engine) finalize(ctx context.Context, conv *core.Conversation) string {
	_ = conv.AdvancePhase(core.PhaseFinalization)
	defer func() { _ = conv.AdvancePhase(core.PhaseCompleted) }()

	if e.limits.MaxTokens > 0 && conv.TotalTokens() >= e.limits.MaxTokens {
		e.logger.Debug("token budget spent, withholding summary message", "session_id", conv.ID)
		return fallbackSummary(conv)
	}

	text, err := e.lead.Summarize(ctx, conv.Brief, conv.Messages(), artifactTitles(conv.Artifacts()))
	if err != nil {
		e.logger.Warn("summary generation failed, using static fallback", "session_id", conv.ID, "error", err)
		text = fallbackSummary(conv)
	}
	e.record(conv, core.NewMessage(e.lead.ID(), text, core.MessageTypeSummary), false)
	return text
}

// phaseDirective returns the extra steering appended to respond prompts in
// the later phases.
func phaseDirective(phase core.Phase) string {
	switch phase {
	case core.PhaseDeepDive:
		return "Go deep on the thorniest open issue from your role's perspective. If you own a deliverable, draft it now with headings."
	case core.PhaseConsolidation:
		return "Drive toward a decision. State what you commit to and what you would cut."
	default:
		return ""
	}
}

func fallbackSummary(conv *core.Conversation) string {
	return fmt.Sprintf("Thanks everyone. We covered %d contributions and produced %d deliverable(s) for %s. Key decisions and next steps are captured in the discussion above.",
		conv.MessageCount(), len(conv.Artifacts()), conv.Brief.CompanyName)
}

func artifactTitles(artifacts map[string]core.Artifact) []string {
	titles := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		titles = append(titles, a.Title)
	}
	sort.Strings(titles)
	return titles
}

// Package roundtable provides a high-level façade over the orchestration
// engine and its supporting services (profiles, models, artifact and
// transcript stores, logging) for running multi-agent planning sessions.
// Most applications interact with this package by:
//  1. Creating a Roundtable via New() with a model client (optionally
//     overriding the team, limits or stores)
//  2. Running one or more sessions with Run()
//  3. Inspecting the returned result or the persisted transcript
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a real model client,
// durable stores and a structured logger.
package roundtable

import (
	"context"

	"github.com/hupe1980/roundtable/agent"
	"github.com/hupe1980/roundtable/artifact"
	"github.com/hupe1980/roundtable/convergence"
	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/engine"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/model"
	"github.com/hupe1980/roundtable/profile"
	"github.com/hupe1980/roundtable/prompt"
	"github.com/hupe1980/roundtable/session"
	"github.com/hupe1980/roundtable/token"
)

// Options configures the Roundtable instance.
type Options struct {
	// Profiles defines the team. Defaults to the built-in four-role team
	// with the product manager as lead.
	Profiles *profile.Store

	// Limits is the per-session budget; zero-valued fields fall back to
	// core.DefaultLimits.
	Limits core.Limits

	// Sequential switches to the deterministic round-robin orchestrator.
	Sequential bool

	// HeuristicOnly disables model-backed willingness polls on all agents,
	// roughly halving model calls per round.
	HeuristicOnly bool

	// Estimator prices messages against the token budget. Defaults to the
	// character heuristic.
	Estimator token.Estimator

	// Convergence overrides the default streak strategy.
	Convergence convergence.Strategy

	// Selector overrides speaker tie-breaking. Ignored in sequential mode.
	Selector engine.Selector

	// Stores (default to in-memory implementations if not provided).
	ArtifactStore   core.ArtifactStore
	TranscriptStore core.TranscriptStore

	// Sinks receive every message as it is appended, after the internal
	// transcript buffer.
	Sinks []core.Sink

	// Logger defaults to NoOp logger if nil.
	Logger logging.Logger
}

// Roundtable is the high-level façade aggregating the orchestrator and its
// services. One instance can run many sessions sequentially.
type Roundtable struct {
	client      model.Client
	profiles    *profile.Store
	opts        Options
	transcripts core.TranscriptStore
	artifacts   core.ArtifactStore
}

// New creates a Roundtable with optional overrides. Any unset store is
// initialized with an in-memory implementation.
func New(client model.Client, optFns ...func(o *Options)) (*Roundtable, error) {
	opts := Options{
		Limits: core.DefaultLimits(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Profiles == nil {
		store, err := profile.NewStore(profile.DefaultTeam())
		if err != nil {
			return nil, err
		}
		opts.Profiles = store
	}
	if opts.ArtifactStore == nil {
		opts.ArtifactStore = artifact.NewInMemoryStore()
	}
	if opts.TranscriptStore == nil {
		opts.TranscriptStore = session.NewInMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Roundtable{
		client:      client,
		profiles:    opts.Profiles,
		opts:        opts,
		transcripts: opts.TranscriptStore,
		artifacts:   opts.ArtifactStore,
	}, nil
}

// Run executes one planning session for the brief and returns its result.
// The transcript and result are also persisted to the transcript store under
// the result's session ID.
func (r *Roundtable) Run(ctx context.Context, brief core.ProjectBrief) (*core.Result, error) {
	if err := brief.Validate(); err != nil {
		return nil, err
	}

	orch, flush, err := r.buildOrchestrator()
	if err != nil {
		return nil, err
	}

	res, err := orch.Start(ctx, brief)
	if err != nil {
		return nil, err
	}
	flush(res)
	return res, nil
}

// Transcripts exposes the transcript store for post-session inspection.
func (r *Roundtable) Transcripts() core.TranscriptStore { return r.transcripts }

// Artifacts exposes the artifact store for post-session inspection.
func (r *Roundtable) Artifacts() core.ArtifactStore { return r.artifacts }

// Profiles returns the team definition in use.
func (r *Roundtable) Profiles() *profile.Store { return r.profiles }

// buildOrchestrator wires agents, prompt naming and stores into a fresh
// orchestrator. A new one is built per run because convergence strategies
// are stateful and sessions must not share them.
func (r *Roundtable) buildOrchestrator() (engine.Orchestrator, func(*core.Result), error) {
	names := make(map[string]string, r.profiles.Len())
	for _, p := range r.profiles.All() {
		names[p.ID] = p.DisplayName
	}
	builder := prompt.New(func(o *prompt.Options) { o.Names = names })

	agents := make([]*agent.Agent, 0, r.profiles.Len())
	for _, p := range r.profiles.All() {
		agents = append(agents, agent.New(p, r.client, func(o *agent.Options) {
			o.PromptBuilder = builder
			o.HeuristicOnly = r.opts.HeuristicOnly
			o.Logger = r.opts.Logger
		}))
	}

	// Messages stream into the transcript store under a session ID only
	// known once the conversation exists, so buffer and reattach on flush.
	var buffered []core.Message
	buffer := core.SinkFunc(func(m core.Message) { buffered = append(buffered, m) })
	sinks := append([]core.Sink{buffer}, r.opts.Sinks...)

	configure := func(o *engine.Options) {
		o.Limits = r.opts.Limits
		o.Logger = r.opts.Logger
		o.Estimator = r.opts.Estimator
		o.Convergence = r.opts.Convergence
		o.Selector = r.opts.Selector
		o.Sinks = sinks
		o.ArtifactStore = r.opts.ArtifactStore
		o.LeadID = r.profiles.Lead().ID
	}

	flush := func(res *core.Result) {
		for _, m := range buffered {
			if err := r.transcripts.Append(res.SessionID, m); err != nil {
				r.opts.Logger.Warn("transcript append failed", "session_id", res.SessionID, "error", err)
				break
			}
		}
		if err := r.transcripts.SaveResult(res.SessionID, res); err != nil {
			r.opts.Logger.Warn("result save failed", "session_id", res.SessionID, "error", err)
		}
	}

	if r.opts.Sequential {
		orch, err := engine.NewSequential(agents, configure)
		return orch, flush, err
	}
	orch, err := engine.New(agents, configure)
	return orch, flush, err
}

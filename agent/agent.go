package agent

import (
	"context"
	"strings"
	"time"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/model"
	"github.com/hupe1980/roundtable/prompt"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 60 * time.Second

// recentWindow is the look-back used by the should-respond heuristic: an
// agent that spoke within the last two messages stays quiet unless named.
const recentWindow = 2

// Options configures an Agent instance.
type Options struct {
	// PromptBuilder constructs the agent's prompts. A default builder is
	// created when nil.
	PromptBuilder *prompt.Builder
	// Timeout bounds each generation call. Defaults to DefaultTimeout.
	Timeout time.Duration
	// HeuristicOnly skips the model call in ShouldRespond entirely. This is
	// the cheapest acceptable strategy for budget-constrained sessions.
	HeuristicOnly bool
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Agent pairs a static profile with a live text-generation client. Agents
// hold no conversation state of their own; history arrives as read-only
// snapshots from the orchestrator.
type Agent struct {
	profile       core.AgentProfile
	client        model.Client
	builder       *prompt.Builder
	timeout       time.Duration
	heuristicOnly bool
	logger        logging.Logger
}

// New creates an Agent with optional overrides.
func New(profile core.AgentProfile, client model.Client, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Timeout: DefaultTimeout,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.PromptBuilder == nil {
		opts.PromptBuilder = prompt.New()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Agent{
		profile:       profile,
		client:        client,
		builder:       opts.PromptBuilder,
		timeout:       opts.Timeout,
		heuristicOnly: opts.HeuristicOnly,
		logger:        opts.Logger,
	}
}

// Profile returns the agent's static configuration.
func (a *Agent) Profile() core.AgentProfile { return a.profile }

// ID returns the agent's profile id.
func (a *Agent) ID() string { return a.profile.ID }

// Respond generates an in-character reply to the conversation. It builds a
// prompt from the brief, the history tail and the optional directive, then
// invokes the client under the configured timeout. Failures return a
// *core.GenerationError; callers convert it into an in-band message rather
// than aborting the session.
func (a *Agent) Respond(ctx context.Context, brief core.ProjectBrief, history []core.Message, directive string) (string, error) {
	system, user := a.builder.Build(a.profile, brief, history, directive)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	text, err := a.client.Invoke(ctx, system, user)
	if err != nil {
		a.logger.Warn("generation failed", "agent_id", a.profile.ID, "duration", time.Since(start), "error", err)
		return "", &core.GenerationError{AgentID: a.profile.ID, Err: err}
	}

	a.logger.Debug("generation completed", "agent_id", a.profile.ID, "duration", time.Since(start))
	return text, nil
}

// Summarize generates the closing summary for the session. Same failure
// contract as Respond.
func (a *Agent) Summarize(ctx context.Context, brief core.ProjectBrief, history []core.Message, artifactTitles []string) (string, error) {
	system, user := a.builder.BuildSummary(a.profile, brief, history, artifactTitles)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.client.Invoke(ctx, system, user)
	if err != nil {
		return "", &core.GenerationError{AgentID: a.profile.ID, Err: err}
	}
	return text, nil
}

// ShouldRespond reports whether the agent wants to react to the last
// message. In the default mode it asks the client a yes/no question; on any
// failure, or when the answer is ambiguous, it falls back to the
// deterministic heuristic. Errors are never surfaced to the caller.
func (a *Agent) ShouldRespond(ctx context.Context, last core.Message, history []core.Message) bool {
	if last.AgentID == a.profile.ID {
		return false
	}
	if a.heuristicOnly {
		return a.heuristicShouldRespond(last, history)
	}

	system, user := a.builder.BuildShouldRespond(a.profile, last)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	answer, err := a.client.Invoke(ctx, system, user)
	if err != nil {
		a.logger.Debug("should-respond poll failed, using heuristic", "agent_id", a.profile.ID, "error", err)
		return a.heuristicShouldRespond(last, history)
	}

	switch parseYesNo(answer) {
	case yes:
		return true
	case no:
		return false
	default:
		return a.heuristicShouldRespond(last, history)
	}
}

// heuristicShouldRespond is the deterministic fallback: respond if the
// agent was mentioned by name or role, or if any expertise/concern keyword
// appears in the content and the agent has not spoken in the last two
// messages.
func (a *Agent) heuristicShouldRespond(last core.Message, history []core.Message) bool {
	lower := strings.ToLower(last.Content)

	if a.profile.DisplayName != "" && strings.Contains(lower, strings.ToLower(a.profile.DisplayName)) {
		return true
	}
	if a.profile.Role != "" && strings.Contains(lower, strings.ToLower(a.profile.Role)) {
		return true
	}

	if core.SpokeRecently(history, a.profile.ID, recentWindow) {
		return false
	}
	for _, kw := range a.profile.Expertise {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	for _, kw := range a.profile.ConcernKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// RelevanceScore counts expertise/concern keyword hits against the given
// content. The orchestrator uses it to break ties among recent speakers.
func (a *Agent) RelevanceScore(content string) int {
	lower := strings.ToLower(content)
	score := 0
	for _, kw := range a.profile.Expertise {
		if strings.Contains(lower, strings.ToLower(kw)) {
			score++
		}
	}
	for _, kw := range a.profile.ConcernKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			score++
		}
	}
	return score
}

type yesNo int

const (
	ambiguous yesNo = iota
	yes
	no
)

// parseYesNo interprets a model answer to a strict yes/no question.
func parseYesNo(answer string) yesNo {
	trimmed := strings.ToLower(strings.TrimSpace(answer))
	switch {
	case strings.HasPrefix(trimmed, "yes"):
		return yes
	case strings.HasPrefix(trimmed, "no"):
		return no
	default:
		return ambiguous
	}
}

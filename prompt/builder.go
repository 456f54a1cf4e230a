// Package prompt turns agent profiles, project briefs and recent
// conversation slices into system/user prompt pairs. Every builder method is
// a pure function: identical inputs always yield byte-identical prompts,
// even though downstream generation is non-deterministic.
package prompt

import (
	"fmt"
	"strings"

	"github.com/hupe1980/roundtable/core"
)

// DefaultHistoryWindow bounds prompt size by truncating conversation history
// to the last N messages (most-recent-last).
const DefaultHistoryWindow = 4

// Options configures a Builder.
type Options struct {
	// HistoryWindow is the number of trailing messages included in prompts.
	// Values outside 1..16 fall back to DefaultHistoryWindow.
	HistoryWindow int
	// Names maps agent IDs to display names for transcript rendering.
	// Unknown IDs render as the raw ID.
	Names map[string]string
}

// Builder constructs prompts for respond, should-respond, seed and summary
// calls. It is stateless apart from its configuration and safe for
// concurrent use.
type Builder struct {
	historyWindow int
	names         map[string]string
}

// New creates a Builder with optional overrides.
func New(optFns ...func(o *Options)) *Builder {
	opts := Options{HistoryWindow: DefaultHistoryWindow}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HistoryWindow < 1 || opts.HistoryWindow > 16 {
		opts.HistoryWindow = DefaultHistoryWindow
	}
	names := make(map[string]string, len(opts.Names))
	for k, v := range opts.Names {
		names[k] = v
	}
	return &Builder{historyWindow: opts.HistoryWindow, names: names}
}

// HistoryWindow returns the configured truncation window.
func (b *Builder) HistoryWindow() int { return b.historyWindow }

// Build produces the system/user prompt pair for a regular in-character
// response. History is truncated to the last HistoryWindow messages in
// history order (most-recent-last).
func (b *Builder) Build(p core.AgentProfile, brief core.ProjectBrief, history []core.Message, directive string) (string, string) {
	system := b.persona(p)

	var sb strings.Builder
	b.writeBrief(&sb, brief)
	b.writeHistory(&sb, history)
	if directive != "" {
		sb.WriteString(directive)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "Respond in character as %s. Keep it to a few sentences and reference your teammates' points where relevant.", p.DisplayName)

	return system, sb.String()
}

// BuildShouldRespond produces the yes/no relevance prompt used to poll an
// idle agent.
func (b *Builder) BuildShouldRespond(p core.AgentProfile, last core.Message) (string, string) {
	system := fmt.Sprintf("You are %s, the %s. Expertise: %s. Answer strictly with yes or no.",
		p.DisplayName, p.Role, strings.Join(p.Expertise, ", "))

	user := fmt.Sprintf("A teammate just said:\n%s\n\nDo you have something substantive to add from your role's perspective? Answer yes or no.",
		last.Content)

	return system, user
}

// BuildSummary produces the prompt for the single finalization message.
func (b *Builder) BuildSummary(p core.AgentProfile, brief core.ProjectBrief, history []core.Message, artifactTitles []string) (string, string) {
	system := b.persona(p)

	var sb strings.Builder
	b.writeBrief(&sb, brief)
	sb.WriteString("Full discussion transcript:\n")
	for _, m := range history {
		fmt.Fprintf(&sb, "[%s]: %s\n", b.name(m.AgentID), m.Content)
	}
	sb.WriteString("\n")
	if len(artifactTitles) > 0 {
		sb.WriteString("Deliverables produced: ")
		sb.WriteString(strings.Join(artifactTitles, "; "))
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "As %s, write the closing summary: key decisions, open risks and agreed next steps. Be concise.", p.DisplayName)

	return system, sb.String()
}

// SeedText returns the deterministic facilitator message opening a phase.
// Seeds are not generated by the model; they frame the phase from the brief.
func SeedText(phase core.Phase, brief core.ProjectBrief) string {
	switch phase {
	case core.PhaseDeepDive:
		return fmt.Sprintf("Good start, team. Let's dig deeper into the hard parts of %s for %s. Concrete proposals and deliverables, please.",
			brief.ProblemStatement, brief.CompanyName)
	case core.PhaseConsolidation:
		return "We're running short on time. Let's consolidate: what are we committing to, and what are we cutting?"
	default:
		var sb strings.Builder
		fmt.Fprintf(&sb, "Welcome everyone. %s (%s) needs a plan: %s.",
			brief.CompanyName, brief.Industry, brief.ProblemStatement)
		if brief.TargetUsers != "" {
			fmt.Fprintf(&sb, " Target users: %s.", brief.TargetUsers)
		}
		if brief.Timeline != "" {
			fmt.Fprintf(&sb, " Timeline: %s.", brief.Timeline)
		}
		if brief.Budget != "" {
			fmt.Fprintf(&sb, " Budget: %s.", brief.Budget)
		}
		if brief.KeyFeatureIdea != "" {
			fmt.Fprintf(&sb, " Key feature idea on the table: %s.", brief.KeyFeatureIdea)
		}
		sb.WriteString(" Initial thoughts?")
		return sb.String()
	}
}

// persona renders the reusable system prompt for a profile.
func (b *Builder) persona(p core.AgentProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, the %s on a product planning team.", p.DisplayName, p.Role)
	if p.Personality != "" {
		fmt.Fprintf(&sb, " Personality: %s.", p.Personality)
	}
	if len(p.Expertise) > 0 {
		fmt.Fprintf(&sb, " Expertise: %s.", strings.Join(p.Expertise, ", "))
	}
	if len(p.DeliverableTypes) > 0 {
		fmt.Fprintf(&sb, " You are expected to produce deliverables of type: %s.", strings.Join(p.DeliverableTypes, ", "))
	}
	if len(p.OpeningPhrases) > 0 {
		fmt.Fprintf(&sb, " You often open with phrases like: %s.", strings.Join(p.OpeningPhrases, " / "))
	}
	return sb.String()
}

func (b *Builder) writeBrief(sb *strings.Builder, brief core.ProjectBrief) {
	fmt.Fprintf(sb, "Project: %s (%s)\nProblem: %s\n", brief.CompanyName, brief.Industry, brief.ProblemStatement)
	if brief.TargetUsers != "" {
		fmt.Fprintf(sb, "Target users: %s\n", brief.TargetUsers)
	}
	if brief.Timeline != "" {
		fmt.Fprintf(sb, "Timeline: %s\n", brief.Timeline)
	}
	if brief.Budget != "" {
		fmt.Fprintf(sb, "Budget: %s\n", brief.Budget)
	}
	if brief.KeyFeatureIdea != "" {
		fmt.Fprintf(sb, "Key feature idea: %s\n", brief.KeyFeatureIdea)
	}
	if brief.AdditionalContext != "" {
		fmt.Fprintf(sb, "Additional context: %s\n", brief.AdditionalContext)
	}
	sb.WriteString("\n")
}

func (b *Builder) writeHistory(sb *strings.Builder, history []core.Message) {
	tail := core.Tail(history, b.historyWindow)
	if len(tail) == 0 {
		return
	}
	sb.WriteString("Recent discussion (oldest first):\n")
	for _, m := range tail {
		fmt.Fprintf(sb, "[%s]: %s\n", b.name(m.AgentID), m.Content)
	}
	sb.WriteString("\n")
}

func (b *Builder) name(agentID string) string {
	if n, ok := b.names[agentID]; ok {
		return n
	}
	return agentID
}

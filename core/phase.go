package core

// Phase names a stage of the planning conversation. Phases advance strictly
// forward; there is no backtracking.
type Phase string

const (
	// PhaseInitialDiscussion collects first reactions to the brief.
	PhaseInitialDiscussion Phase = "initial_discussion"
	// PhaseDeepDive explores the dominant concerns in detail.
	PhaseDeepDive Phase = "deep_dive"
	// PhaseConsolidation drives the team toward concrete decisions.
	PhaseConsolidation Phase = "consolidation"
	// PhaseFinalization produces the single closing summary message.
	PhaseFinalization Phase = "finalization"
	// PhaseCompleted is the terminal state after the summary.
	PhaseCompleted Phase = "completed"
)

// phaseOrder fixes the forward-only progression.
var phaseOrder = map[Phase]int{
	PhaseInitialDiscussion: 0,
	PhaseDeepDive:          1,
	PhaseConsolidation:     2,
	PhaseFinalization:      3,
	PhaseCompleted:         4,
}

// Index returns the ordinal position of the phase, or -1 for unknown phases.
func (p Phase) Index() int {
	if i, ok := phaseOrder[p]; ok {
		return i
	}
	return -1
}

// Before reports whether p precedes other in the fixed progression.
func (p Phase) Before(other Phase) bool { return p.Index() < other.Index() }

// DiscussionPhases returns the phases that run facilitated rounds, in order.
// Finalization is handled separately since it emits exactly one message.
func DiscussionPhases() []Phase {
	return []Phase{PhaseInitialDiscussion, PhaseDeepDive, PhaseConsolidation}
}

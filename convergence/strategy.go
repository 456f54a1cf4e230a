package convergence

import "github.com/hupe1980/roundtable/core"

// Strategy decides whether the conversation has converged on agreement.
// Implementations may keep internal state (e.g. a streak counter) but must
// be driven by exactly one Observe call per appended message, in order.
type Strategy interface {
	// Observe records a newly appended message and reports whether the
	// conversation has converged as of that message. history is the full
	// message log including msg as its last element.
	Observe(msg core.Message, history []core.Message) bool
	// Reset clears accumulated state, e.g. at a phase boundary.
	Reset()
}

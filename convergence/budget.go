package convergence

import (
	"time"

	"github.com/hupe1980/roundtable/core"
)

// Verdict is the outcome of a budget check.
type Verdict struct {
	ShouldTerminate bool
	Reason          core.TerminationReason
}

// CheckBudget evaluates the numeric session budgets and returns the first
// violated bound in priority order: messages, then tokens, then time. It is
// a pure function of its inputs with no side effects.
func CheckBudget(messageCount, totalTokens int, elapsed time.Duration, limits core.Limits) Verdict {
	if limits.MaxMessages > 0 && messageCount >= limits.MaxMessages {
		return Verdict{ShouldTerminate: true, Reason: core.TerminationMaxMessages}
	}
	if limits.MaxTokens > 0 && totalTokens >= limits.MaxTokens {
		return Verdict{ShouldTerminate: true, Reason: core.TerminationMaxTokens}
	}
	if limits.MaxDuration > 0 && elapsed >= limits.MaxDuration {
		return Verdict{ShouldTerminate: true, Reason: core.TerminationTimeout}
	}
	return Verdict{}
}

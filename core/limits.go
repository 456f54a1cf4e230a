package core

import "time"

// TerminationReason is the single enumerated cause recorded for why a
// session stopped producing messages. It is set exactly once per session.
type TerminationReason string

const (
	// TerminationMaxMessages fires when the message budget is reached.
	TerminationMaxMessages TerminationReason = "max_messages"
	// TerminationMaxTokens fires when the token budget is reached.
	TerminationMaxTokens TerminationReason = "max_tokens"
	// TerminationTimeout fires when the wall-clock budget is exhausted.
	TerminationTimeout TerminationReason = "timeout"
	// TerminationConvergence fires when consensus detection triggers.
	TerminationConvergence TerminationReason = "convergence"
	// TerminationMaxRounds applies when every phase ran its full round
	// allotment without hitting another bound.
	TerminationMaxRounds TerminationReason = "max_rounds"
	// TerminationCompleted applies when the conversation wound down on its
	// own (e.g. consecutive empty rounds) before any limit was hit.
	TerminationCompleted TerminationReason = "completed"
)

// Limits is the per-session resource and consensus budget. It is supplied at
// session start and immutable thereafter.
type Limits struct {
	// MaxMessages bounds the transcript length, checked before appending.
	MaxMessages int `json:"max_messages" yaml:"max_messages"`
	// MaxTokens bounds the running token estimate, checked before each round
	// so at most one message may overshoot.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
	// MaxDuration bounds session wall-clock time.
	MaxDuration time.Duration `json:"max_duration" yaml:"max_duration"`
	// MaxRoundsPerPhase caps facilitated rounds within a single phase.
	MaxRoundsPerPhase int `json:"max_rounds_per_phase" yaml:"max_rounds_per_phase"`
	// ConvergenceThreshold is the consecutive-agreement streak that fires
	// early termination for the streak strategy.
	ConvergenceThreshold int `json:"convergence_threshold" yaml:"convergence_threshold"`
	// ConvergenceScore is the normalized consensus score gate used by the
	// sliding-window strategy.
	ConvergenceScore float64 `json:"convergence_score" yaml:"convergence_score"`
}

// DefaultLimits returns the documented session defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxMessages:          15,
		MaxTokens:            30000,
		MaxDuration:          2 * time.Minute,
		MaxRoundsPerPhase:    3,
		ConvergenceThreshold: 3,
		ConvergenceScore:     0.8,
	}
}

// WithDefaults fills zero-valued fields from DefaultLimits.
func (l Limits) WithDefaults() Limits {
	d := DefaultLimits()
	if l.MaxMessages <= 0 {
		l.MaxMessages = d.MaxMessages
	}
	if l.MaxTokens <= 0 {
		l.MaxTokens = d.MaxTokens
	}
	if l.MaxDuration <= 0 {
		l.MaxDuration = d.MaxDuration
	}
	if l.MaxRoundsPerPhase <= 0 {
		l.MaxRoundsPerPhase = d.MaxRoundsPerPhase
	}
	if l.ConvergenceThreshold <= 0 {
		l.ConvergenceThreshold = d.ConvergenceThreshold
	}
	if l.ConvergenceScore <= 0 {
		l.ConvergenceScore = d.ConvergenceScore
	}
	return l
}

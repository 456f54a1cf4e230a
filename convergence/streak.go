package convergence

import (
	"strings"
	"sync"

	"github.com/hupe1980/roundtable/core"
)

var defaultAgreementPhrases = []string{
	"i agree",
	"sounds good",
	"consensus",
	"agreed",
	"that works",
	"we're aligned",
	"let's move forward",
	"good plan",
}

var defaultDisagreementPhrases = []string{
	"however",
	"disagree",
	"not sure",
	"i'm concerned",
	"on the other hand",
	"instead",
	"pushback",
}

// StreakOptions configures a StreakStrategy.
type StreakOptions struct {
	// Threshold is the consecutive-agreement count that fires convergence.
	Threshold int
	// AgreementPhrases / DisagreementPhrases override the built-in lists.
	AgreementPhrases    []string
	DisagreementPhrases []string
}

// StreakStrategy classifies each message as convergent or not and fires
// when `Threshold` convergent messages arrive in a row. A message counts as
// convergent when it contains an agreement phrase anywhere and no
// disagreement phrase. Any non-convergent or disagreeing message resets the
// streak to zero.
type StreakStrategy struct {
	mu        sync.Mutex
	threshold int
	agree     []string
	disagree  []string
	streak    int
}

// NewStreakStrategy constructs the default keyword-streak strategy.
func NewStreakStrategy(optFns ...func(o *StreakOptions)) *StreakStrategy {
	opts := StreakOptions{
		Threshold:           3,
		AgreementPhrases:    defaultAgreementPhrases,
		DisagreementPhrases: defaultDisagreementPhrases,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Threshold < 1 {
		opts.Threshold = 3
	}
	return &StreakStrategy{
		threshold: opts.Threshold,
		agree:     opts.AgreementPhrases,
		disagree:  opts.DisagreementPhrases,
	}
}

// Observe implements Strategy.
func (s *StreakStrategy) Observe(msg core.Message, _ []core.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConvergent(msg.Content) {
		s.streak++
	} else {
		s.streak = 0
	}
	return s.streak >= s.threshold
}

// Reset implements Strategy.
func (s *StreakStrategy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streak = 0
}

// Streak returns the current consecutive-agreement count.
func (s *StreakStrategy) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streak
}

func (s *StreakStrategy) isConvergent(content string) bool {
	lower := strings.ToLower(content)
	for _, p := range s.disagree {
		if strings.Contains(lower, p) {
			return false
		}
	}
	for _, p := range s.agree {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

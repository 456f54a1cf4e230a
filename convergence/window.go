package convergence

import (
	"regexp"
	"strings"

	"github.com/hupe1980/roundtable/core"
)

// windowSize is the number of trailing messages scored by WindowStrategy.
const windowSize = 6

// minMessagesForWindow is the transcript length required before the window
// strategy may fire at all.
const minMessagesForWindow = 6

var (
	fullAgreementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bi (fully |completely )?agree\b`),
		regexp.MustCompile(`(?i)\bsounds good\b`),
		regexp.MustCompile(`(?i)\bconsensus\b`),
		regexp.MustCompile(`(?i)\bwe('| a)re aligned\b`),
		regexp.MustCompile(`(?i)\blet'?s go with\b`),
	}

	hedgedAgreementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bi (mostly|generally|largely) agree\b`),
		regexp.MustCompile(`(?i)\bmakes sense\b`),
		regexp.MustCompile(`(?i)\b(fair|good) point\b`),
	}

	disagreementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bhowever\b`),
		regexp.MustCompile(`(?i)\bdisagree\b`),
		regexp.MustCompile(`(?i)\bnot sure\b`),
		regexp.MustCompile(`(?i)\bon the other hand\b`),
		regexp.MustCompile(`(?i)\bconcern(ed|s)?\b`),
	}

	positiveWords = []string{"great", "good", "excellent", "love", "perfect", "solid", "nice", "works"}
	negativeWords = []string{"bad", "wrong", "problem", "risk", "worried", "difficult", "blocker", "issue"}
)

// Pattern weights per the scoring model: full agreement dominates, hedged
// agreement contributes modestly, disagreement subtracts.
const (
	fullAgreementWeight   = 1.0
	hedgedAgreementWeight = 0.3
	disagreementWeight    = -0.5
)

// WindowOptions configures a WindowStrategy.
type WindowOptions struct {
	// Threshold is the normalized consensus score gate in [0,1].
	Threshold float64
	// SentimentGate is the positive-sentiment ratio required alongside the
	// score.
	SentimentGate float64
}

// WindowStrategy scores the last six messages with weighted regex matches
// and an independent sentiment ratio. The conversation counts as converged
// only when the normalized consensus score reaches the threshold AND the
// sentiment ratio exceeds the gate, and never before six messages exist.
type WindowStrategy struct {
	threshold     float64
	sentimentGate float64
}

// NewWindowStrategy constructs the pattern + sentiment strategy.
func NewWindowStrategy(optFns ...func(o *WindowOptions)) *WindowStrategy {
	opts := WindowOptions{Threshold: 0.8, SentimentGate: 0.6}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &WindowStrategy{threshold: opts.Threshold, sentimentGate: opts.SentimentGate}
}

// Observe implements Strategy. The strategy is stateless across calls; all
// signal comes from the trailing window of history.
func (w *WindowStrategy) Observe(_ core.Message, history []core.Message) bool {
	if len(history) < minMessagesForWindow {
		return false
	}
	window := core.Tail(history, windowSize)

	score := w.ConsensusScore(window)
	sentiment := w.SentimentRatio(window)

	return score >= w.threshold && sentiment > w.sentimentGate
}

// Reset implements Strategy. The window strategy carries no state.
func (w *WindowStrategy) Reset() {}

// ConsensusScore computes the normalized consensus score in [0,1] for the
// given window: weighted pattern matches per message, summed, floored at 0
// and divided by the window size.
func (w *WindowStrategy) ConsensusScore(window []core.Message) float64 {
	var sum float64
	for _, m := range window {
		sum += messageWeight(m.Content)
	}
	if sum < 0 {
		sum = 0
	}
	score := sum / float64(windowSize)
	if score > 1 {
		score = 1
	}
	return score
}

// SentimentRatio computes positive-word hits over total sentiment-word
// hits, defaulting to 0.5 when no sentiment words are found.
func (w *WindowStrategy) SentimentRatio(window []core.Message) float64 {
	var pos, total int
	for _, m := range window {
		lower := strings.ToLower(m.Content)
		for _, word := range positiveWords {
			if strings.Contains(lower, word) {
				pos++
				total++
			}
		}
		for _, word := range negativeWords {
			if strings.Contains(lower, word) {
				total++
			}
		}
	}
	if total == 0 {
		return 0.5
	}
	return float64(pos) / float64(total)
}

// messageWeight scores one message: the strongest matching category wins,
// with disagreement always subtracting.
func messageWeight(content string) float64 {
	var weight float64
	switch {
	case matchesAny(content, fullAgreementPatterns):
		weight = fullAgreementWeight
	case matchesAny(content, hedgedAgreementPatterns):
		weight = hedgedAgreementWeight
	}
	if matchesAny(content, disagreementPatterns) {
		weight += disagreementWeight
	}
	return weight
}

func matchesAny(content string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(content) {
			return true
		}
	}
	return false
}

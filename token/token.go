// Package token provides pluggable token estimation for budget enforcement.
// The default estimator is a cheap length-based approximation (~1 token per
// 4 characters); a real tokenizer backed by tiktoken is available when
// budget fidelity matters more than speed.
package token

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Estimator converts text into an approximate token count. Implementations
// must be deterministic and safe for concurrent use.
type Estimator interface {
	Estimate(text string) int
}

// CharEstimator approximates tokens as len(text)/CharsPerToken, rounded up.
// It is the documented default: fast, dependency-free and close enough for
// budget enforcement on English prose.
type CharEstimator struct {
	// CharsPerToken defaults to 4 when zero or negative.
	CharsPerToken int
}

// Estimate implements Estimator.
func (e CharEstimator) Estimate(text string) int {
	if text == "" {
		return 0
	}
	per := e.CharsPerToken
	if per <= 0 {
		per = 4
	}
	return (len(text) + per - 1) / per
}

// TiktokenEstimator counts tokens with a real BPE tokenizer. Construction
// may fetch encoding data; keep one instance per process and share it.
type TiktokenEstimator struct {
	enc      *tiktoken.Tiktoken
	fallback CharEstimator
}

// NewTiktokenEstimator loads the named encoding (e.g. "cl100k_base").
func NewTiktokenEstimator(encoding string) (*TiktokenEstimator, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding %q: %w", encoding, err)
	}
	return &TiktokenEstimator{enc: enc}, nil
}

// Estimate implements Estimator. It falls back to the character heuristic
// if the encoder is missing (zero-value receiver).
func (e *TiktokenEstimator) Estimate(text string) int {
	if e == nil {
		return CharEstimator{}.Estimate(text)
	}
	if e.enc == nil {
		return e.fallback.Estimate(text)
	}
	return len(e.enc.Encode(text, nil, nil))
}

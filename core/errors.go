package core

import "fmt"

// ConfigurationError indicates a required dependency or setting is missing
// or invalid. It is the only failure mode that prevents a session from
// starting; everything after session start is recovered in-band.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// GenerationError wraps a failed or timed-out text-generation call for a
// single agent. Orchestrators convert it into an in-band message and keep
// the session moving; it never aborts a conversation.
type GenerationError struct {
	AgentID string
	Err     error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for agent %s: %v", e.AgentID, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *GenerationError) Unwrap() error { return e.Err }

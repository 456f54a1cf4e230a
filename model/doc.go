// Package model defines the text-generation client contract used by agents
// and provides deterministic in-memory implementations for tests and
// examples. Provider adapters (Anthropic, OpenAI) live in subpackages; each
// adapter normalizes its provider's response shape into a plain string at
// the boundary so ambiguous shapes never leak into the orchestrator.
package model

// Package core provides the foundational domain types and interfaces used by
// Roundtable. It defines the core abstractions for:
//
//   - Project briefs (the immutable input every session starts from)
//   - Agent profiles (static persona configuration)
//   - Messages (immutable, ordered conversational turns)
//   - Artifacts (structured deliverables extracted from messages)
//   - Conversations (per-session mutable state owned by one orchestrator)
//   - Limits and termination reasons (resource/consensus budgets)
//   - Pluggable stores for transcripts and artifacts, plus progress sinks
//
// The package intentionally keeps implementation concerns (persistence,
// orchestration, concrete agents, model adapters) out of scope, exposing
// small interfaces to enable custom backends and extensions.
package core

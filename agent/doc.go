// Package agent wraps an agent profile and a text-generation client into a
// conversation participant. An Agent can produce an in-character response
// and decide whether it wants to speak at all; the latter degrades to a
// deterministic keyword/role heuristic whenever the model call fails or the
// agent runs in heuristic-only mode.
package agent

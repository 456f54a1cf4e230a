// Package engine drives planning sessions: it owns the conversation state,
// walks the phase progression, selects speakers, enforces budgets and hands
// the finished transcript back as a result.
//
// Two orchestrators are provided. Engine is the canonical negotiation model:
// after each message every agent is polled concurrently for willingness to
// speak and one speaker is selected per round. SequentialEngine is the
// round-robin reference model where every agent speaks once per round in
// fixed order; it trades conversational realism for full determinism.
package engine

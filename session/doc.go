// Package session contains concrete implementations of core.TranscriptStore.
//
// The canonical interface lives in the core package to keep domain
// contracts central; implementation packages like this one provide storage
// backends that can be swapped without touching calling code. The package
// also bridges stores to the orchestrator's progress sink so callers get
// streaming persistence for free.
package session

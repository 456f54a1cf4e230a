// Package artifact extracts structured deliverables from message text and
// provides concrete implementations of core.ArtifactStore.
//
// Detection is heuristic: trigger phrases and structural markers (headings,
// bold, length) decide whether a message carries a deliverable, and a
// pluggable Classifier assigns the type. The canonical ArtifactStore
// interface lives in the core package to avoid dependency cycles; callers
// should depend on that interface rather than concrete types here.
package artifact

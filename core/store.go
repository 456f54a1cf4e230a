package core

// ArtifactStore persists typed artifacts per session. The canonical
// interface lives here to keep domain contracts central; implementation
// packages (in-memory, object stores, databases) provide swappable backends.
type ArtifactStore interface {
	// Save stores the artifact, bumping Version monotonically when an
	// artifact with the same ID already exists. The stored copy is returned.
	Save(sessionID string, art Artifact) (Artifact, error)
	// Get returns the artifact stored under the given ID.
	Get(sessionID, artifactID string) (Artifact, error)
	// List returns all artifacts stored for the session.
	List(sessionID string) ([]Artifact, error)
	// Delete removes the artifact if present.
	Delete(sessionID, artifactID string) error
}

// TranscriptStore persists conversation transcripts and final results per
// session. It backs the progress sink so callers get cheap persistence of
// streaming progress without coupling the orchestrator to a storage layer.
type TranscriptStore interface {
	// Append adds a message to the session transcript, creating it lazily.
	Append(sessionID string, msg Message) error
	// Messages returns the transcript recorded so far.
	Messages(sessionID string) ([]Message, error)
	// SaveResult records the final session result.
	SaveResult(sessionID string, res *Result) error
	// Result returns the recorded final result.
	Result(sessionID string) (*Result, error)
}

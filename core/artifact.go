package core

import "time"

// ArtifactType classifies a structured deliverable.
type ArtifactType string

const (
	// ArtifactTypePRD is a product requirements document.
	ArtifactTypePRD ArtifactType = "prd"
	// ArtifactTypeTimeline is a schedule / roadmap deliverable.
	ArtifactTypeTimeline ArtifactType = "timeline"
	// ArtifactTypeEngineering is a technical design deliverable.
	ArtifactTypeEngineering ArtifactType = "engineering"
	// ArtifactTypeMarketing is a go-to-market deliverable.
	ArtifactTypeMarketing ArtifactType = "marketing"
	// ArtifactTypeDocument is the generic fallback for structured but
	// unclassified content.
	ArtifactTypeDocument ArtifactType = "document"
	// ArtifactTypeNone signals that no artifact was detected.
	ArtifactTypeNone ArtifactType = ""
)

// Artifact is a structured deliverable derived from a message. Artifacts are
// never deleted within a session; later artifacts of the same type coexist
// with earlier ones and callers apply latest-wins presentation.
type Artifact struct {
	ID            string       `json:"id"`
	Type          ArtifactType `json:"type"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	AuthorAgentID string       `json:"author_agent_id"`
	Timestamp     time.Time    `json:"timestamp"`
	// Version is monotonic per artifact ID and starts at 1.
	Version int `json:"version"`
}

// NewArtifact creates a version-1 artifact with a fresh ID and UTC timestamp.
func NewArtifact(at ArtifactType, title, content, authorAgentID string) Artifact {
	return Artifact{
		ID:            NewID(),
		Type:          at,
		Title:         title,
		Content:       content,
		AuthorAgentID: authorAgentID,
		Timestamp:     time.Now().UTC(),
		Version:       1,
	}
}

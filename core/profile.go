package core

// AgentProfile is the static configuration describing a single role in the
// planning team. Profiles are loaded once at startup and shared read-only
// across a session; they carry no runtime state.
type AgentProfile struct {
	// ID uniquely identifies the profile within a team.
	ID string `json:"id" yaml:"id"`
	// DisplayName is the human-facing name used in prompts and transcripts.
	DisplayName string `json:"display_name" yaml:"display_name"`
	// Role labels the function on the team, e.g. "Product Manager".
	Role string `json:"role" yaml:"role"`
	// Personality holds tone descriptors woven into the persona prompt.
	Personality string `json:"personality" yaml:"personality"`
	// Expertise tags drive relevance scoring and the should-respond heuristic.
	Expertise []string `json:"expertise" yaml:"expertise"`
	// ConcernKeywords are topics the role reacts to even outside its expertise.
	ConcernKeywords []string `json:"concern_keywords,omitempty" yaml:"concern_keywords,omitempty"`
	// DeliverableTypes lists the artifact kinds this role is expected to produce.
	DeliverableTypes []string `json:"deliverable_types,omitempty" yaml:"deliverable_types,omitempty"`
	// OpeningPhrases seed the persona prompt with characteristic openers.
	OpeningPhrases []string `json:"opening_phrases,omitempty" yaml:"opening_phrases,omitempty"`
}

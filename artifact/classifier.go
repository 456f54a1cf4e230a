package artifact

import (
	"strings"

	"github.com/hupe1980/roundtable/core"
)

// Classifier assigns an artifact type to free text. Implementations must be
// deterministic; the keyword classifier below is intentionally simple and
// can be replaced without touching detection or orchestration logic.
type Classifier interface {
	Classify(text string) core.ArtifactType
}

// keywordSet pairs an artifact type with its trigger keywords. Order in the
// classifier's list is the classification priority.
type keywordSet struct {
	artifactType core.ArtifactType
	keywords     []string
}

// KeywordClassifier classifies text by keyword priority: PRD terms first,
// then timeline, engineering and marketing. Text matching none of the sets
// classifies as the generic document type.
type KeywordClassifier struct {
	sets []keywordSet
}

// NewKeywordClassifier returns the default priority-ordered classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		sets: []keywordSet{
			{core.ArtifactTypePRD, []string{
				"prd", "product requirements", "user stories", "acceptance criteria", "requirements document",
			}},
			{core.ArtifactTypeTimeline, []string{
				"timeline", "milestone", "roadmap", "schedule", "sprint plan",
			}},
			{core.ArtifactTypeEngineering, []string{
				"architecture", "tech stack", "api design", "database schema", "technical design", "infrastructure",
			}},
			{core.ArtifactTypeMarketing, []string{
				"marketing plan", "go-to-market", "launch plan", "positioning", "campaign",
			}},
		},
	}
}

// Classify implements Classifier.
func (c *KeywordClassifier) Classify(text string) core.ArtifactType {
	lower := strings.ToLower(text)
	for _, set := range c.sets {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.artifactType
			}
		}
	}
	return core.ArtifactTypeDocument
}

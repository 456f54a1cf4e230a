package artifact

import (
	"fmt"
	"strings"

	"github.com/hupe1980/roundtable/core"
)

// DefaultMinStructuralLength is the content length above which a message is
// considered structured enough to carry a deliverable even without markers.
const DefaultMinStructuralLength = 500

// defaultTriggerPhrases mark content that announces a deliverable outright.
var defaultTriggerPhrases = []string{
	"here's the prd",
	"here is the prd",
	"product requirements document",
	"here's a draft",
	"here's the plan",
	"proposed timeline",
	"technical architecture",
	"marketing plan",
	"deliverable:",
}

// Detection is the outcome of inspecting a message for a deliverable.
type Detection struct {
	HasArtifact bool
	Type        core.ArtifactType
}

// Options configures a Detector.
type Options struct {
	// TriggerPhrases override the built-in announcement phrases.
	TriggerPhrases []string
	// MinStructuralLength overrides the structural length threshold.
	MinStructuralLength int
	// Classifier overrides the keyword classifier.
	Classifier Classifier
}

// Detector inspects message text for structural cues and classifies
// deliverables. It is stateless after construction and safe for concurrent
// use.
type Detector struct {
	triggers  []string
	minLength int
	classify  Classifier
}

// NewDetector constructs a Detector with optional overrides.
func NewDetector(optFns ...func(o *Options)) *Detector {
	opts := Options{
		TriggerPhrases:      defaultTriggerPhrases,
		MinStructuralLength: DefaultMinStructuralLength,
		Classifier:          NewKeywordClassifier(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Detector{
		triggers:  opts.TriggerPhrases,
		minLength: opts.MinStructuralLength,
		classify:  opts.Classifier,
	}
}

// Detect reports whether content carries a deliverable and of which type.
// A message qualifies when it contains a trigger phrase OR has structural
// markers: a heading line, a bold marker, or length above the threshold.
func (d *Detector) Detect(content string) Detection {
	triggered := d.hasTrigger(content)
	structural := d.isStructural(content)
	if !triggered && !structural {
		return Detection{}
	}
	return Detection{HasArtifact: true, Type: d.classify.Classify(content)}
}

// Extract runs the full pipeline on a message: detection, body extraction
// and title derivation. The second return value is false when the message
// carries no deliverable.
func (d *Detector) Extract(msg core.Message) (core.Artifact, bool) {
	det := d.Detect(msg.Content)
	if !det.HasArtifact {
		return core.Artifact{}, false
	}
	body := ExtractContent(msg.Content)
	title := Title(body, fmt.Sprintf("%s from %s", typeLabel(det.Type), msg.AgentID))
	return core.NewArtifact(det.Type, title, body, msg.AgentID), true
}

// typeLabel renders an artifact type with an uppercased first letter.
func typeLabel(t core.ArtifactType) string {
	s := string(t)
	if s == "" {
		return "Document"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (d *Detector) hasTrigger(content string) bool {
	lower := strings.ToLower(content)
	for _, t := range d.triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func (d *Detector) isStructural(content string) bool {
	if len(content) > d.minLength {
		return true
	}
	if strings.Contains(content, "**") {
		return true
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			return true
		}
	}
	return false
}

// ExtractContent returns the artifact body: everything from the first line
// containing a heading marker, a bold marker or a horizontal rule to the
// end, trimmed. If no such line exists the entire content is returned
// unchanged, degrading gracefully rather than failing.
func ExtractContent(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || strings.Contains(line, "**") || isRule(trimmed) {
			return strings.TrimSpace(strings.Join(lines[i:], "\n"))
		}
	}
	return content
}

// Title derives a human-readable title from the artifact body: the first
// heading line stripped of markers, or the fallback when none exists.
func Title(body, fallback string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
		}
	}
	return fallback
}

// isRule reports whether a trimmed line is a markdown horizontal rule.
func isRule(line string) bool {
	if len(line) < 3 {
		return false
	}
	for _, marker := range []string{"-", "*", "_"} {
		if line == strings.Repeat(marker, len(line)) {
			return true
		}
	}
	return false
}

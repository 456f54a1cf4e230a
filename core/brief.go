package core

import "strings"

// ProjectBrief is the immutable input a planning session starts from. It is
// created once per session and never mutated afterwards; agents receive it
// read-only through their prompts.
type ProjectBrief struct {
	CompanyName       string `json:"company_name" yaml:"company_name"`
	Industry          string `json:"industry" yaml:"industry"`
	ProblemStatement  string `json:"problem_statement" yaml:"problem_statement"`
	TargetUsers       string `json:"target_users" yaml:"target_users"`
	Timeline          string `json:"timeline" yaml:"timeline"`
	Budget            string `json:"budget" yaml:"budget"`
	KeyFeatureIdea    string `json:"key_feature_idea,omitempty" yaml:"key_feature_idea,omitempty"`
	AdditionalContext string `json:"additional_context,omitempty" yaml:"additional_context,omitempty"`
}

// Validate reports whether the brief carries the minimum information a
// session needs. Optional fields (KeyFeatureIdea, AdditionalContext) are not
// checked.
func (b ProjectBrief) Validate() error {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(b.CompanyName) == "" {
		missing = append(missing, "company_name")
	}
	if strings.TrimSpace(b.ProblemStatement) == "" {
		missing = append(missing, "problem_statement")
	}
	if len(missing) > 0 {
		return &ConfigurationError{
			Field:  strings.Join(missing, ", "),
			Reason: "required brief field missing",
		}
	}
	return nil
}

package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/roundtable/core"
)

// teamFile is the on-disk shape of a custom team definition.
type teamFile struct {
	LeadID   string              `yaml:"lead_id"`
	Profiles []core.AgentProfile `yaml:"profiles"`
}

// LoadYAML reads a team definition from a YAML file and returns a validated
// Store. The file may name a lead; otherwise the first profile leads.
func LoadYAML(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading team file: %w", err)
	}

	var tf teamFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing team file: %w", err)
	}

	return NewStore(tf.Profiles, func(o *Options) { o.LeadID = tf.LeadID })
}

package profile

import (
	"fmt"

	"github.com/hupe1980/roundtable/core"
)

// Options configures a Store instance.
type Options struct {
	// LeadID designates the facilitator / summary author. Defaults to the
	// first profile when empty.
	LeadID string
}

// Store is a read-only collection of agent profiles for one team. It is
// built once at startup and shared across sessions.
type Store struct {
	profiles []core.AgentProfile
	byID     map[string]core.AgentProfile
	leadID   string
}

// NewStore validates the profiles (unique IDs, non-empty names) and returns
// a Store. The lead defaults to the first profile unless overridden.
func NewStore(profiles []core.AgentProfile, optFns ...func(o *Options)) (*Store, error) {
	if len(profiles) == 0 {
		return nil, &core.ConfigurationError{Field: "profiles", Reason: "at least one agent profile is required"}
	}

	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	byID := make(map[string]core.AgentProfile, len(profiles))
	for _, p := range profiles {
		if p.ID == "" {
			return nil, &core.ConfigurationError{Field: "id", Reason: "profile id must not be empty"}
		}
		if p.DisplayName == "" {
			return nil, &core.ConfigurationError{Field: "display_name", Reason: fmt.Sprintf("profile %s has no display name", p.ID)}
		}
		if _, dup := byID[p.ID]; dup {
			return nil, &core.ConfigurationError{Field: "id", Reason: fmt.Sprintf("duplicate profile id %s", p.ID)}
		}
		byID[p.ID] = p
	}

	leadID := opts.LeadID
	if leadID == "" {
		leadID = profiles[0].ID
	}
	if _, ok := byID[leadID]; !ok {
		return nil, &core.ConfigurationError{Field: "lead_id", Reason: fmt.Sprintf("lead %s is not part of the team", leadID)}
	}

	cp := make([]core.AgentProfile, len(profiles))
	copy(cp, profiles)

	return &Store{profiles: cp, byID: byID, leadID: leadID}, nil
}

// Get returns the profile for the given id.
func (s *Store) Get(id string) (core.AgentProfile, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// All returns a copy of all profiles in registration order.
func (s *Store) All() []core.AgentProfile {
	out := make([]core.AgentProfile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Lead returns the designated facilitator profile.
func (s *Store) Lead() core.AgentProfile { return s.byID[s.leadID] }

// Len returns the number of profiles.
func (s *Store) Len() int { return len(s.profiles) }

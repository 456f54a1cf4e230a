package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/hupe1980/roundtable/agent"
)

// Selector breaks ties when several agents are willing to speak in the same
// round. Implementations must tolerate an empty candidate slice and return
// nil for it.
type Selector interface {
	Select(candidates []*agent.Agent) *agent.Agent
}

// RandomSelector picks uniformly at random from the candidates. It is the
// default tie-breaker; randomness keeps long sessions from locking onto a
// fixed speaker order.
type RandomSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSelector creates a RandomSelector. A zero seed derives one from
// the clock; pass a fixed seed for reproducible runs.
func NewRandomSelector(seed int64) *RandomSelector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomSelector{rng: rand.New(rand.NewSource(seed))}
}

// Select implements Selector.
func (s *RandomSelector) Select(candidates []*agent.Agent) *agent.Agent {
	if len(candidates) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return candidates[s.rng.Intn(len(candidates))]
}

// FirstSelector always picks the first candidate. Intended for tests, where
// candidate order is known and runs must be fully deterministic.
type FirstSelector struct{}

// Select implements Selector.
func (FirstSelector) Select(candidates []*agent.Agent) *agent.Agent {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

package engine

import (
	"context"

	"github.com/hupe1980/roundtable/core"
)

// Orchestrator runs a complete planning session from a brief to a result.
// Implementations own all mutable session state; a single instance may run
// many sessions, but each Start call is independent.
type Orchestrator interface {
	Start(ctx context.Context, brief core.ProjectBrief) (*core.Result, error)
}

var (
	_ Orchestrator = (*Engine)(nil)
	_ Orchestrator = (*SequentialEngine)(nil)
)

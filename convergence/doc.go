// Package convergence detects when a planning conversation has reached
// agreement and checks numeric session budgets.
//
// Two convergence strategies are provided: a keyword streak counter and a
// sliding-window score combining weighted agreement patterns with a
// sentiment ratio. Both implement the Strategy interface so the engine can
// swap them without touching round-loop control logic. Budget checks are
// pure functions and independently unit-testable.
package convergence

package pagerank

import "time"

// State describes the stage of a PageRank run.
type State int

const (
	// Initializing is the state of a run while the degree table is being
	// computed.
	Initializing State = iota

	// Iterating is the state of a run while passes are being executed.
	Iterating

	// Converged is the terminal state of a run whose last pass produced a
	// delta below the configured epsilon.
	Converged

	// MaxIterationsReached is the terminal state of a run that executed
	// the configured maximum number of passes without converging.
	MaxIterationsReached
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max_iterations_reached"
	default:
		return "unknown"
	}
}

// Terminal returns true if s is a final state.
func (s State) Terminal() bool {
	return s == Converged || s == MaxIterationsReached
}

// Result summarizes a completed PageRank run.
type Result struct {
	// The number of passes that were executed.
	Iterations int

	// The L1 delta of the last pass.
	Delta float64

	// The terminal state of the run.
	State State

	// The total time spent computing the ranks.
	Elapsed time.Duration
}

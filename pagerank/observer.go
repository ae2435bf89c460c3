package pagerank

import "time"

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/linksrus/rankflow/pagerank Observer

// Pass describes a completed iteration of the PageRank algorithm.
type Pass struct {
	// The 1-based index of the pass.
	Iteration int

	// The L1 distance between the ranks before and after the pass.
	Delta float64

	// The time it took to execute the pass.
	Duration time.Duration
}

// Observer is implemented by types that monitor the progress of PageRank
// computations. Observer methods are invoked synchronously by the
// calculator between passes.
type Observer interface {
	// PassCompleted is invoked after each pass.
	PassCompleted(Pass)

	// RunCompleted is invoked once a run reaches a terminal state and the
	// final ranks have been written to the caller-provided rank map.
	RunCompleted(Result)
}

type nopObserver struct{}

func (nopObserver) PassCompleted(Pass)  {}
func (nopObserver) RunCompleted(Result) {}

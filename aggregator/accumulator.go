// Package aggregator provides concurrent-safe accumulators that are used for
// combining the partial results of parallel per-vertex tasks.
package aggregator

import (
	"math"
	"sync/atomic"
)

// Float64Accumulator implements a lock-free accumulator for float64 values.
// The zero value is ready to use.
type Float64Accumulator struct {
	prevSum atomic.Uint64
	curSum  atomic.Uint64
}

// Type returns the type of this accumulator.
func (a *Float64Accumulator) Type() string {
	return "Float64Accumulator"
}

// Get returns the current value of the accumulator.
func (a *Float64Accumulator) Get() float64 {
	return math.Float64frombits(a.curSum.Load())
}

// Set the current value of the accumulator and reset its delta tracking.
func (a *Float64Accumulator) Set(v float64) {
	bits := math.Float64bits(v)
	a.curSum.Store(bits)
	a.prevSum.Store(bits)
}

// Aggregate adds v to the accumulator.
func (a *Float64Accumulator) Aggregate(v float64) {
	for {
		oldBits := a.curSum.Load()
		newBits := math.Float64bits(math.Float64frombits(oldBits) + v)
		if a.curSum.CompareAndSwap(oldBits, newBits) {
			return
		}
	}
}

// Delta returns the change in the accumulator value since the last time
// it was invoked or the last time that Set was invoked.
func (a *Float64Accumulator) Delta() float64 {
	for {
		cur := a.curSum.Load()
		prev := a.prevSum.Load()
		if a.prevSum.CompareAndSwap(prev, cur) {
			return math.Float64frombits(cur) - math.Float64frombits(prev)
		}
	}
}

// IntAccumulator implements a lock-free accumulator for int values. The zero
// value is ready to use.
type IntAccumulator struct {
	prevSum atomic.Int64
	curSum  atomic.Int64
}

// Type returns the type of this accumulator.
func (a *IntAccumulator) Type() string {
	return "IntAccumulator"
}

// Get returns the current value of the accumulator.
func (a *IntAccumulator) Get() int {
	return int(a.curSum.Load())
}

// Set the current value of the accumulator and reset its delta tracking.
func (a *IntAccumulator) Set(v int) {
	a.curSum.Store(int64(v))
	a.prevSum.Store(int64(v))
}

// Aggregate adds v to the accumulator.
func (a *IntAccumulator) Aggregate(v int) {
	_ = a.curSum.Add(int64(v))
}

// Delta returns the change in the accumulator value since the last time
// it was invoked or the last time that Set was invoked.
func (a *IntAccumulator) Delta() int {
	for {
		cur := a.curSum.Load()
		prev := a.prevSum.Load()
		if a.prevSum.CompareAndSwap(prev, cur) {
			return int(cur - prev)
		}
	}
}

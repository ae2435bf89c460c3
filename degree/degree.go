// Package degree computes weighted vertex degrees.
package degree

import (
	"github.com/linksrus/rankflow/aggregator"
	"github.com/linksrus/rankflow/graph"
	"github.com/linksrus/rankflow/parallel"
	"github.com/linksrus/rankflow/propmap"
	"golang.org/x/xerrors"
)

// ErrUnknownKind is returned by ParseKind for unsupported degree kinds.
var ErrUnknownKind = xerrors.New("unknown degree kind")

// Kind selects the set of edges that contribute to a vertex degree.
type Kind int

const (
	// Out sums the weights of the edges leaving a vertex. For undirected
	// graphs all incident edges are counted.
	Out Kind = iota

	// In sums the weights of the edges entering a vertex. For undirected
	// graphs all incident edges are counted.
	In

	// Total sums the weights of all incident edges.
	Total
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Out:
		return "out"
	case In:
		return "in"
	case Total:
		return "total"
	default:
		return "unknown"
	}
}

// ParseKind returns the Kind that corresponds to the provided name.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "out":
		return Out, nil
	case "in":
		return In, nil
	case "total":
		return Total, nil
	default:
		return 0, xerrors.Errorf("parse degree kind %q: %w", name, ErrUnknownKind)
	}
}

// Compute returns a map with the weighted degree of each vertex in g. A nil
// w is equivalent to propmap.UnitWeight. Each vertex slot is written by
// exactly one pool task.
func Compute(g graph.Graph, kind Kind, w propmap.EdgeMap, pool *parallel.Pool) *propmap.Float64VertexMap {
	if w == nil {
		w = propmap.UnitWeight{}
	}

	// Undirected graphs have no source/target asymmetry.
	if !g.Directed() {
		kind = Out
	}

	deg := propmap.NewVertexMap(g.NumVertices())
	pool.ForEach(g.NumVertices(), func(v graph.Vertex) {
		var sum float64
		switch kind {
		case Out:
			sum = sumWeights(g.OutEdges(v), w)
		case In:
			sum = sumWeights(g.InEdges(v), w)
		case Total:
			sum = sumWeights(g.OutEdges(v), w) + sumWeights(g.InEdges(v), w)
		}
		deg.Set(v, sum)
	})

	return deg
}

// CountZero returns the number of vertices whose degree in m is zero.
func CountZero(m propmap.VertexMap, pool *parallel.Pool) int {
	var zero aggregator.IntAccumulator
	pool.ForEach(m.Len(), func(v graph.Vertex) {
		if m.Get(v) == 0 {
			zero.Aggregate(1)
		}
	})
	return zero.Get()
}

func sumWeights(edges []graph.Edge, w propmap.EdgeMap) float64 {
	var sum float64
	for _, e := range edges {
		sum += w.Weight(e)
	}
	return sum
}

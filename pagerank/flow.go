package pagerank

import (
	"math"

	"github.com/linksrus/rankflow/graph"
	"github.com/linksrus/rankflow/propmap"
)

// flowPolicy selects the edges through which rank flows into a vertex and
// the endpoint of each edge that the rank originates from.
type flowPolicy interface {
	edges(g graph.Graph, v graph.Vertex) []graph.Edge
	neighbor(e graph.Edge) graph.Vertex
}

// inboundFlow is used for directed graphs: rank flows along in-edges from
// their source vertex.
type inboundFlow struct{}

func (inboundFlow) edges(g graph.Graph, v graph.Vertex) []graph.Edge { return g.InEdges(v) }
func (inboundFlow) neighbor(e graph.Edge) graph.Vertex               { return e.Src }

// incidentFlow is used for undirected graphs: rank flows along every
// incident edge from the endpoint opposite to the vertex being updated.
type incidentFlow struct{}

func (incidentFlow) edges(g graph.Graph, v graph.Vertex) []graph.Edge { return g.OutEdges(v) }
func (incidentFlow) neighbor(e graph.Edge) graph.Vertex               { return e.Dst }

func flowPolicyFor(g graph.Graph) flowPolicy {
	if g.Directed() {
		return inboundFlow{}
	}
	return incidentFlow{}
}

// updater applies the damped PageRank update rule to individual vertices.
// All fields are read-only while a pass is in progress.
type updater struct {
	g       graph.Graph
	policy  flowPolicy
	pers    propmap.VertexMap
	weight  propmap.EdgeMap
	deg     propmap.VertexMap
	damping float64
}

// flow returns the rank mass that cur delivers to v.
func (u *updater) flow(v graph.Vertex, cur propmap.VertexMap) float64 {
	var sum float64
	for _, e := range u.policy.edges(u.g, v) {
		n := u.policy.neighbor(e)
		d := u.deg.Get(n)
		if d == 0 {
			continue
		}
		sum += cur.Get(n) * u.weight.Weight(e) / d
	}
	return sum
}

// update writes the new rank of v to next and returns the absolute
// difference from its rank in cur.
func (u *updater) update(v graph.Vertex, cur, next propmap.VertexMap) float64 {
	r := (1-u.damping)*u.pers.Get(v) + u.damping*u.flow(v, cur)
	next.Set(v, r)
	return math.Abs(r - cur.Get(v))
}

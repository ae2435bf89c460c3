package memory

import (
	"sync"

	"github.com/linksrus/rankflow/graph"
	"golang.org/x/xerrors"
)

// Compile-time check for ensuring Graph implements graph.Builder.
var _ graph.Builder = (*Graph)(nil)

// Graph implements an in-memory adjacency-list graph.
//
// Mutations are serialized via a mutex. Queries do not acquire any locks and
// are therefore only safe while the graph is not being mutated.
type Graph struct {
	mu       sync.Mutex
	directed bool

	edges []graph.Edge
	out   [][]graph.Edge
	in    [][]graph.Edge
}

// NewGraph creates a new empty in-memory graph.
func NewGraph(directed bool) *Graph {
	return &Graph{directed: directed}
}

// NumVertices implements graph.Graph.
func (g *Graph) NumVertices() int { return len(g.out) }

// NumEdges implements graph.Graph.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Directed implements graph.Graph.
func (g *Graph) Directed() bool { return g.directed }

// OutEdges implements graph.Graph.
func (g *Graph) OutEdges(v graph.Vertex) []graph.Edge { return g.out[v] }

// InEdges implements graph.Graph.
func (g *Graph) InEdges(v graph.Vertex) []graph.Edge { return g.in[v] }

// Edge returns the edge with the specified ID using the orientation it
// was inserted with.
func (g *Graph) Edge(id int) graph.Edge { return g.edges[id] }

// AddVertex implements graph.Builder.
func (g *Graph) AddVertex() graph.Vertex {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return graph.Vertex(len(g.out) - 1)
}

// AddVertices appends n vertices to the graph.
func (g *Graph) AddVertices(n int) {
	g.mu.Lock()
	g.out = append(g.out, make([][]graph.Edge, n)...)
	g.in = append(g.in, make([][]graph.Edge, n)...)
	g.mu.Unlock()
}

// AddEdge implements graph.Builder. For undirected graphs the edge is
// registered with both endpoints, so an undirected self-loop shows up twice
// in the incident lists of its vertex.
func (g *Graph) AddEdge(src, dst graph.Vertex) (graph.Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.valid(src) || !g.valid(dst) {
		return graph.Edge{}, xerrors.Errorf("create edge from %d to %d: %w", src, dst, graph.ErrUnknownVertex)
	}

	e := graph.Edge{ID: len(g.edges), Src: src, Dst: dst}
	g.edges = append(g.edges, e)
	g.out[src] = append(g.out[src], e)
	g.in[dst] = append(g.in[dst], e)

	if !g.directed {
		rev := graph.Edge{ID: e.ID, Src: dst, Dst: src}
		g.out[dst] = append(g.out[dst], rev)
		g.in[src] = append(g.in[src], rev)
	}

	return e, nil
}

func (g *Graph) valid(v graph.Vertex) bool {
	return v >= 0 && int(v) < len(g.out)
}

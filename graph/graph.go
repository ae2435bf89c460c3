package graph

// Vertex identifies a graph vertex by its dense index in the
// [0, NumVertices) range.
type Vertex int

// Edge describes a graph edge that originates from Src and terminates at Dst.
//
// For undirected graphs the orientation of an Edge depends on how it was
// obtained: OutEdges(v) yields edges with Src == v while InEdges(v) yields
// edges with Dst == v.
type Edge struct {
	// A dense identifier in the [0, NumEdges) range. Edge property maps
	// are keyed by this value.
	ID int

	// The origin vertex.
	Src Vertex

	// The destination vertex.
	Dst Vertex
}

// Graph is implemented by objects that expose the read-only structure of a
// directed or undirected graph.
//
// Implementations must allow concurrent calls to all methods as long as the
// graph is not being mutated. The slices returned by OutEdges and InEdges
// are views into the graph storage and must not be modified by callers.
type Graph interface {
	// NumVertices returns the number of vertices in the graph.
	NumVertices() int

	// NumEdges returns the number of edges in the graph.
	NumEdges() int

	// Directed returns true if the graph edges are directed.
	Directed() bool

	// OutEdges returns the edges leaving v. For undirected graphs, all
	// edges incident to v are returned, oriented so that Src == v.
	OutEdges(v Vertex) []Edge

	// InEdges returns the edges entering v. For undirected graphs, all
	// edges incident to v are returned, oriented so that Dst == v.
	InEdges(v Vertex) []Edge
}

// Builder is implemented by graphs that can be populated incrementally.
type Builder interface {
	Graph

	// AddVertex appends a new vertex to the graph and returns it.
	AddVertex() Vertex

	// AddEdge inserts an edge from src to dst. Both endpoints must
	// already be part of the graph.
	AddEdge(src, dst Vertex) (Edge, error)
}

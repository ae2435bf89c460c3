package graphtest

import (
	"sort"
	"sync"

	"github.com/linksrus/rankflow/graph"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

// SuiteBase defines a re-usable set of graph-related tests that can
// be executed against any type that implements graph.Builder.
type SuiteBase struct {
	newGraph func(directed bool) graph.Builder
}

// SetGraphFactory configures the test-suite to run all tests against graphs
// created by fn.
func (s *SuiteBase) SetGraphFactory(fn func(directed bool) graph.Builder) {
	s.newGraph = fn
}

// TestAddVertex verifies that vertices receive dense, sequential indices.
func (s *SuiteBase) TestAddVertex(c *gc.C) {
	g := s.newGraph(true)
	c.Assert(g.NumVertices(), gc.Equals, 0)

	for i := 0; i < 5; i++ {
		c.Assert(g.AddVertex(), gc.Equals, graph.Vertex(i))
	}
	c.Assert(g.NumVertices(), gc.Equals, 5)
	c.Assert(g.Directed(), gc.Equals, true)
}

// TestAddEdgeUnknownVertex verifies that edges can only be created between
// known vertices.
func (s *SuiteBase) TestAddEdgeUnknownVertex(c *gc.C) {
	g := s.newGraph(true)
	v := g.AddVertex()

	_, err := g.AddEdge(v, 42)
	c.Assert(xerrors.Is(err, graph.ErrUnknownVertex), gc.Equals, true)

	_, err = g.AddEdge(-1, v)
	c.Assert(xerrors.Is(err, graph.ErrUnknownVertex), gc.Equals, true)
	c.Assert(g.NumEdges(), gc.Equals, 0)
}

// TestDirectedEdges verifies the out/in edge lists of a directed graph.
func (s *SuiteBase) TestDirectedEdges(c *gc.C) {
	g := s.newGraph(true)
	a, b, cc := g.AddVertex(), g.AddVertex(), g.AddVertex()

	s.mustAddEdge(c, g, a, b)
	s.mustAddEdge(c, g, a, cc)
	s.mustAddEdge(c, g, cc, a)
	c.Assert(g.NumEdges(), gc.Equals, 3)

	c.Assert(dsts(g.OutEdges(a)), gc.DeepEquals, []graph.Vertex{b, cc})
	c.Assert(srcs(g.InEdges(a)), gc.DeepEquals, []graph.Vertex{cc})
	c.Assert(g.OutEdges(b), gc.HasLen, 0)
	c.Assert(srcs(g.InEdges(b)), gc.DeepEquals, []graph.Vertex{a})

	for _, e := range g.OutEdges(a) {
		c.Assert(e.Src, gc.Equals, a)
	}
	for _, e := range g.InEdges(a) {
		c.Assert(e.Dst, gc.Equals, a)
	}
}

// TestUndirectedEdges verifies that incident edges are reported for both
// endpoints and are oriented relative to the queried vertex.
func (s *SuiteBase) TestUndirectedEdges(c *gc.C) {
	g := s.newGraph(false)
	a, b, cc := g.AddVertex(), g.AddVertex(), g.AddVertex()
	c.Assert(g.Directed(), gc.Equals, false)

	ab := s.mustAddEdge(c, g, a, b)
	s.mustAddEdge(c, g, cc, a)

	c.Assert(dsts(g.OutEdges(a)), gc.DeepEquals, []graph.Vertex{b, cc})
	c.Assert(srcs(g.InEdges(a)), gc.DeepEquals, []graph.Vertex{b, cc})
	c.Assert(dsts(g.OutEdges(b)), gc.DeepEquals, []graph.Vertex{a})

	// Both orientations of an undirected edge share the same ID.
	c.Assert(g.OutEdges(b)[0].ID, gc.Equals, ab.ID)
	c.Assert(g.InEdges(b)[0].ID, gc.Equals, ab.ID)
}

// TestUndirectedSelfLoop verifies that an undirected self-loop is incident
// to its vertex twice while still counting as a single edge.
func (s *SuiteBase) TestUndirectedSelfLoop(c *gc.C) {
	g := s.newGraph(false)
	a, b := g.AddVertex(), g.AddVertex()
	loop := s.mustAddEdge(c, g, a, a)
	s.mustAddEdge(c, g, a, b)

	c.Assert(g.NumEdges(), gc.Equals, 2)
	c.Assert(dsts(g.OutEdges(a)), gc.DeepEquals, []graph.Vertex{a, a, b})
	c.Assert(srcs(g.InEdges(a)), gc.DeepEquals, []graph.Vertex{a, a, b})
	for _, e := range g.OutEdges(a)[:2] {
		c.Assert(e.ID, gc.Equals, loop.ID)
	}
	c.Assert(dsts(g.OutEdges(b)), gc.DeepEquals, []graph.Vertex{a})
}

// TestDirectedSelfLoop verifies that a directed self-loop is both an out-edge
// and an in-edge of its vertex.
func (s *SuiteBase) TestDirectedSelfLoop(c *gc.C) {
	g := s.newGraph(true)
	a := g.AddVertex()
	s.mustAddEdge(c, g, a, a)

	c.Assert(g.OutEdges(a), gc.HasLen, 1)
	c.Assert(g.InEdges(a), gc.HasLen, 1)
	c.Assert(g.NumEdges(), gc.Equals, 1)
}

// TestConcurrentReaders verifies that multiple clients can concurrently
// query a quiescent graph.
func (s *SuiteBase) TestConcurrentReaders(c *gc.C) {
	var (
		wg          sync.WaitGroup
		numReaders  = 10
		numVertices = 100
	)

	g := s.newGraph(true)
	for i := 0; i < numVertices; i++ {
		g.AddVertex()
	}
	for i := 0; i < numVertices; i++ {
		s.mustAddEdge(c, g, graph.Vertex(i), graph.Vertex((i+1)%numVertices))
	}

	counts := make([]int, numReaders)
	wg.Add(numReaders)
	for i := 0; i < numReaders; i++ {
		go func(id int) {
			defer wg.Done()
			for v := 0; v < g.NumVertices(); v++ {
				counts[id] += len(g.OutEdges(graph.Vertex(v))) + len(g.InEdges(graph.Vertex(v)))
			}
		}(i)
	}
	wg.Wait()

	for i, count := range counts {
		c.Assert(count, gc.Equals, 2*numVertices, gc.Commentf("reader %d", i))
	}
}

func (s *SuiteBase) mustAddEdge(c *gc.C, g graph.Builder, src, dst graph.Vertex) graph.Edge {
	e, err := g.AddEdge(src, dst)
	c.Assert(err, gc.IsNil)
	return e
}

func dsts(edges []graph.Edge) []graph.Vertex {
	out := make([]graph.Vertex, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.Dst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func srcs(edges []graph.Edge) []graph.Vertex {
	out := make([]graph.Vertex, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.Src)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

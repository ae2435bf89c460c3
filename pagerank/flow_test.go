package pagerank

import (
	"github.com/linksrus/rankflow/graph"
	"github.com/linksrus/rankflow/graph/store/memory"
	"github.com/linksrus/rankflow/propmap"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(FlowTestSuite))

type FlowTestSuite struct{}

func (s *FlowTestSuite) TestPolicySelection(c *gc.C) {
	c.Assert(flowPolicyFor(memory.NewGraph(true)), gc.FitsTypeOf, inboundFlow{})
	c.Assert(flowPolicyFor(memory.NewGraph(false)), gc.FitsTypeOf, incidentFlow{})
}

func (s *FlowTestSuite) TestDirectedFlowUsesEdgeSources(c *gc.C) {
	// (0) --> (2) <-- (1)
	g := memory.NewGraph(true)
	g.AddVertices(3)
	s.addEdge(c, g, 0, 2)
	s.addEdge(c, g, 1, 2)

	u := s.updater(g, []float64{1, 1, 0})
	cur := propmap.FromValues([]float64{0.2, 0.6, 0.2})

	c.Assert(u.flow(2, cur), gc.Equals, 0.8)
	c.Assert(u.flow(0, cur), gc.Equals, 0.0)
}

func (s *FlowTestSuite) TestUndirectedFlowUsesOppositeEndpoint(c *gc.C) {
	// (0) --- (1) --- (2)
	g := memory.NewGraph(false)
	g.AddVertices(3)
	s.addEdge(c, g, 0, 1)
	s.addEdge(c, g, 1, 2)

	u := s.updater(g, []float64{1, 2, 1})
	cur := propmap.FromValues([]float64{0.25, 0.5, 0.25})

	c.Assert(u.flow(0, cur), gc.Equals, 0.25)
	c.Assert(u.flow(1, cur), gc.Equals, 0.5)
	c.Assert(u.flow(2, cur), gc.Equals, 0.25)
}

func (s *FlowTestSuite) TestZeroDegreeNeighborsAreSkipped(c *gc.C) {
	g := memory.NewGraph(true)
	g.AddVertices(2)
	s.addEdge(c, g, 0, 1)

	u := s.updater(g, []float64{0, 0})
	c.Assert(u.flow(1, propmap.FromValues([]float64{0.5, 0.5})), gc.Equals, 0.0)
}

func (s *FlowTestSuite) TestUpdateReturnsAbsoluteDifference(c *gc.C) {
	g := memory.NewGraph(true)
	g.AddVertices(2)
	s.addEdge(c, g, 0, 1)

	u := s.updater(g, []float64{1, 0})
	u.damping = 0.5
	cur := propmap.FromValues([]float64{0.5, 0.5})
	next := propmap.NewVertexMap(2)

	// next(0) = 0.5*0.5 + 0.5*0 = 0.25; next(1) = 0.25 + 0.5*0.5 = 0.5
	c.Assert(u.update(0, cur, next), gc.Equals, 0.25)
	c.Assert(u.update(1, cur, next), gc.Equals, 0.0)
	c.Assert(next.Values(), gc.DeepEquals, []float64{0.25, 0.5})
}

func (s *FlowTestSuite) updater(g graph.Graph, deg []float64) *updater {
	return &updater{
		g:       g,
		policy:  flowPolicyFor(g),
		pers:    propmap.Uniform(g.NumVertices()),
		weight:  propmap.UnitWeight{},
		deg:     propmap.FromValues(deg),
		damping: DefaultDampingFactor,
	}
}

func (s *FlowTestSuite) addEdge(c *gc.C, g *memory.Graph, src, dst graph.Vertex) {
	_, err := g.AddEdge(src, dst)
	c.Assert(err, gc.IsNil)
}

package degree

import (
	"testing"

	"github.com/linksrus/rankflow/graph"
	"github.com/linksrus/rankflow/graph/store/memory"
	"github.com/linksrus/rankflow/parallel"
	"github.com/linksrus/rankflow/propmap"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(DegreeTestSuite))

func Test(t *testing.T) {
	// Run all gocheck test-suites
	gc.TestingT(t)
}

type DegreeTestSuite struct {
	pool *parallel.Pool
}

func (s *DegreeTestSuite) SetUpSuite(c *gc.C) {
	var err error
	s.pool, err = parallel.NewPool(parallel.Config{Workers: 4, Threshold: 1})
	c.Assert(err, gc.IsNil)
}

func (s *DegreeTestSuite) TearDownSuite(c *gc.C) {
	c.Assert(s.pool.Close(), gc.IsNil)
}

func (s *DegreeTestSuite) TestDirectedDegrees(c *gc.C) {
	//  (0) --2--> (1) --3--> (2)
	//   ^                     |
	//   +---------5-----------+
	//  (3) isolated
	g := memory.NewGraph(true)
	g.AddVertices(4)
	weights := s.addEdges(c, g, [][3]float64{{0, 1, 2}, {1, 2, 3}, {2, 0, 5}})

	c.Assert(Compute(g, Out, weights, s.pool).Values(), gc.DeepEquals, []float64{2, 3, 5, 0})
	c.Assert(Compute(g, In, weights, s.pool).Values(), gc.DeepEquals, []float64{5, 2, 3, 0})
	c.Assert(Compute(g, Total, weights, s.pool).Values(), gc.DeepEquals, []float64{7, 5, 8, 0})

	// Unweighted degrees count edges.
	c.Assert(Compute(g, Out, nil, s.pool).Values(), gc.DeepEquals, []float64{1, 1, 1, 0})
}

func (s *DegreeTestSuite) TestUndirectedDegrees(c *gc.C) {
	g := memory.NewGraph(false)
	g.AddVertices(3)
	weights := s.addEdges(c, g, [][3]float64{{0, 1, 2}, {1, 2, 3}})

	exp := []float64{2, 5, 3}
	for _, kind := range []Kind{Out, In, Total} {
		c.Assert(Compute(g, kind, weights, s.pool).Values(), gc.DeepEquals, exp, gc.Commentf("kind %s", kind))
	}
}

func (s *DegreeTestSuite) TestUndirectedSelfLoopCountsTwice(c *gc.C) {
	g := memory.NewGraph(false)
	g.AddVertices(2)
	weights := s.addEdges(c, g, [][3]float64{{0, 0, 2}, {0, 1, 1}})

	c.Assert(Compute(g, Out, weights, s.pool).Values(), gc.DeepEquals, []float64{5, 1})
	c.Assert(Compute(g, Out, nil, s.pool).Values(), gc.DeepEquals, []float64{3, 1})
}

func (s *DegreeTestSuite) TestCountZero(c *gc.C) {
	m := propmap.FromValues([]float64{0, 1, 0, 2, 0})
	c.Assert(CountZero(m, s.pool), gc.Equals, 3)
}

func (s *DegreeTestSuite) TestParseKind(c *gc.C) {
	for _, kind := range []Kind{Out, In, Total} {
		parsed, err := ParseKind(kind.String())
		c.Assert(err, gc.IsNil)
		c.Assert(parsed, gc.Equals, kind)
	}

	_, err := ParseKind("sideways")
	c.Assert(xerrors.Is(err, ErrUnknownKind), gc.Equals, true)
}

func (s *DegreeTestSuite) addEdges(c *gc.C, g *memory.Graph, edges [][3]float64) propmap.Float64EdgeMap {
	weights := make(propmap.Float64EdgeMap, 0, len(edges))
	for _, spec := range edges {
		_, err := g.AddEdge(graph.Vertex(spec[0]), graph.Vertex(spec[1]))
		c.Assert(err, gc.IsNil)
		weights = append(weights, spec[2])
	}
	return weights
}

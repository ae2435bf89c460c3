package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/linksrus/rankflow/graph"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(PoolTestSuite))

func Test(t *testing.T) {
	// Run all gocheck test-suites
	gc.TestingT(t)
}

type PoolTestSuite struct {
}

func (s *PoolTestSuite) TestConfigValidation(c *gc.C) {
	cfg := Config{}
	c.Assert(cfg.validate(), gc.IsNil)
	c.Assert(cfg.Workers, gc.Equals, 1)
	c.Assert(cfg.Threshold, gc.Equals, DefaultThreshold)

	cfg = Config{Threshold: -1}
	c.Assert(cfg.validate(), gc.ErrorMatches, "(?ms).*threshold must not be negative.*")

	_, err := NewPool(Config{Threshold: -1})
	c.Assert(err, gc.ErrorMatches, "(?ms).*parallel pool config validation failed.*")
}

func (s *PoolTestSuite) TestSplit(c *gc.C) {
	specs := []struct {
		n, parts int
		exp      []Extent
	}{
		{n: 0, parts: 4, exp: nil},
		{n: 3, parts: 0, exp: nil},
		{n: 2, parts: 5, exp: []Extent{{0, 1}, {1, 2}}},
		{n: 10, parts: 3, exp: []Extent{{0, 4}, {4, 7}, {7, 10}}},
		{n: 8, parts: 4, exp: []Extent{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
	}

	for i, spec := range specs {
		c.Assert(Split(spec.n, spec.parts), gc.DeepEquals, spec.exp, gc.Commentf("spec %d", i))
	}
}

func (s *PoolTestSuite) TestParallelDecision(c *gc.C) {
	p := s.mustPool(c, Config{Workers: 4, Threshold: 10})
	defer func() { _ = p.Close() }()
	c.Assert(p.Parallel(10), gc.Equals, false)
	c.Assert(p.Parallel(11), gc.Equals, true)

	single := s.mustPool(c, Config{Workers: 1, Threshold: 1})
	defer func() { _ = single.Close() }()
	c.Assert(single.Parallel(1000), gc.Equals, false)
}

func (s *PoolTestSuite) TestForEachVisitsEveryVertexOnce(c *gc.C) {
	for _, cfg := range []Config{{Workers: 1}, {Workers: 8, Threshold: 1}} {
		p := s.mustPool(c, cfg)

		numVertices := 1000
		visits := make([]int32, numVertices)
		p.ForEach(numVertices, func(v graph.Vertex) {
			atomic.AddInt32(&visits[v], 1)
		})
		c.Assert(p.Close(), gc.IsNil)

		for v, count := range visits {
			c.Assert(count, gc.Equals, int32(1), gc.Commentf("vertex %d visited %d times (workers=%d)", v, count, cfg.Workers))
		}
	}
}

func (s *PoolTestSuite) TestSum(c *gc.C) {
	seq := s.mustPool(c, Config{Workers: 1})
	defer func() { _ = seq.Close() }()
	par := s.mustPool(c, Config{Workers: 8, Threshold: 1})
	defer func() { _ = par.Close() }()

	fn := func(v graph.Vertex) float64 { return float64(v) }
	numVertices := 10000
	exp := float64(numVertices*(numVertices-1)) / 2

	c.Assert(seq.Sum(numVertices, fn), gc.Equals, exp)
	c.Assert(par.Sum(numVertices, fn), gc.Equals, exp)
	c.Assert(par.Sum(0, fn), gc.Equals, 0.0)
}

func (s *PoolTestSuite) TestPanicIsPropagatedAfterBarrier(c *gc.C) {
	p := s.mustPool(c, Config{Workers: 4, Threshold: 1})
	defer func() { _ = p.Close() }()

	var visited int32
	c.Assert(func() {
		p.ForEach(100, func(v graph.Vertex) {
			atomic.AddInt32(&visited, 1)
			if v == 42 {
				panic("boom")
			}
		})
	}, gc.PanicMatches, ".*boom.*")

	// The pool remains usable after a failed loop.
	c.Assert(p.Sum(10, func(graph.Vertex) float64 { return 1 }), gc.Equals, 10.0)
}

func (s *PoolTestSuite) TestCloseIsIdempotent(c *gc.C) {
	p := s.mustPool(c, Config{Workers: 4})
	c.Assert(p.Close(), gc.IsNil)
	c.Assert(p.Close(), gc.IsNil)
}

func (s *PoolTestSuite) mustPool(c *gc.C, cfg Config) *Pool {
	p, err := NewPool(cfg)
	c.Assert(err, gc.IsNil)
	return p
}

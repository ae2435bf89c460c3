package pagerank

import (
	"github.com/linksrus/rankflow/parallel"
	"github.com/linksrus/rankflow/propmap"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(BufferTestSuite))

type BufferTestSuite struct {
	pool *parallel.Pool
}

func (s *BufferTestSuite) SetUpSuite(c *gc.C) {
	var err error
	s.pool, err = parallel.NewPool(parallel.Config{Workers: 2, Threshold: 1})
	c.Assert(err, gc.IsNil)
}

func (s *BufferTestSuite) TearDownSuite(c *gc.C) {
	c.Assert(s.pool.Close(), gc.IsNil)
}

func (s *BufferTestSuite) TestSwapAlternatesSlots(c *gc.C) {
	rank := propmap.FromValues([]float64{1, 2})
	buf := newRankBuffer(rank)

	c.Assert(buf.current(), gc.Equals, propmap.VertexMap(rank))
	c.Assert(buf.next().Len(), gc.Equals, 2)
	c.Assert(buf.next(), gc.Not(gc.Equals), propmap.VertexMap(rank))

	scratch := buf.next()
	buf.swap()
	c.Assert(buf.current(), gc.Equals, scratch)
	c.Assert(buf.next(), gc.Equals, propmap.VertexMap(rank))

	buf.swap()
	c.Assert(buf.current(), gc.Equals, propmap.VertexMap(rank))
}

func (s *BufferTestSuite) TestFinalizeAfterEvenSwaps(c *gc.C) {
	rank := propmap.FromValues([]float64{1, 2, 3})
	buf := newRankBuffer(rank)
	buf.next().Set(0, 42)
	buf.swap()
	buf.swap()

	c.Assert(buf.finalize(s.pool), gc.Equals, false)
	c.Assert(rank.Values(), gc.DeepEquals, []float64{1, 2, 3})
}

func (s *BufferTestSuite) TestFinalizeAfterOddSwaps(c *gc.C) {
	rank := propmap.FromValues([]float64{1, 2, 3})
	buf := newRankBuffer(rank)
	next := buf.next()
	next.Set(0, 4)
	next.Set(1, 5)
	next.Set(2, 6)
	buf.swap()

	c.Assert(buf.finalize(s.pool), gc.Equals, true)
	c.Assert(rank.Values(), gc.DeepEquals, []float64{4, 5, 6})
	c.Assert(buf.current(), gc.Equals, propmap.VertexMap(rank))

	// A second call is a no-op.
	c.Assert(buf.finalize(s.pool), gc.Equals, false)
}

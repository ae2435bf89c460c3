package pagerank

import (
	"github.com/linksrus/rankflow/graph"
	"github.com/linksrus/rankflow/parallel"
	"github.com/linksrus/rankflow/propmap"
)

// rankBuffer holds the two rank maps that passes alternate between. Slot 0
// is always the caller-provided map; slot 1 is scratch space owned by the
// run.
type rankBuffer struct {
	slots  [2]propmap.VertexMap
	active int
}

func newRankBuffer(rank propmap.VertexMap) *rankBuffer {
	return &rankBuffer{
		slots: [2]propmap.VertexMap{rank, propmap.NewVertexMap(rank.Len())},
	}
}

// current returns the map holding the ranks produced by the last pass.
func (b *rankBuffer) current() propmap.VertexMap { return b.slots[b.active] }

// next returns the map that the upcoming pass writes to.
func (b *rankBuffer) next() propmap.VertexMap { return b.slots[1-b.active] }

func (b *rankBuffer) swap() { b.active = 1 - b.active }

// finalize makes sure that the latest ranks live in the caller-provided map
// and reports whether a copy was required.
func (b *rankBuffer) finalize(pool *parallel.Pool) bool {
	if b.active == 0 {
		return false
	}

	src, dst := b.slots[b.active], b.slots[0]
	pool.ForEach(dst.Len(), func(v graph.Vertex) {
		dst.Set(v, src.Get(v))
	})
	b.active = 0
	return true
}

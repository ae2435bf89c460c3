package edgelist

import (
	"github.com/linksrus/rankflow/graph"
	"github.com/linksrus/rankflow/graph/store/memory"
	"github.com/linksrus/rankflow/propmap"
	"golang.org/x/xerrors"
)

// Index maps vertex names to dense graph vertices and back.
type Index struct {
	byName map[string]graph.Vertex
	names  []string
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{byName: make(map[string]graph.Vertex)}
}

// Len returns the number of indexed vertices.
func (idx *Index) Len() int { return len(idx.names) }

// Vertex looks up the vertex for name.
func (idx *Index) Vertex(name string) (graph.Vertex, bool) {
	v, ok := idx.byName[name]
	return v, ok
}

// Name returns the name of vertex v.
func (idx *Index) Name(v graph.Vertex) string { return idx.names[v] }

// Names returns the indexed names ordered by vertex.
func (idx *Index) Names() []string { return idx.names }

// add returns the vertex for name, assigning the next free vertex if name
// has not been seen before.
func (idx *Index) add(name string) (graph.Vertex, bool) {
	if v, ok := idx.byName[name]; ok {
		return v, false
	}
	v := graph.Vertex(len(idx.names))
	idx.byName[name] = v
	idx.names = append(idx.names, name)
	return v, true
}

// Loaded bundles a graph built from an edge list together with its
// vertex index and edge weights.
type Loaded struct {
	Index   *Index
	Graph   *memory.Graph
	Weights propmap.Float64EdgeMap

	// Weighted is true if at least one record carried an explicit weight.
	Weighted bool
}

// EdgeWeights returns the weight map to use for the loaded graph or nil if
// no record specified a weight.
func (l *Loaded) EdgeWeights() propmap.EdgeMap {
	if !l.Weighted {
		return nil
	}
	return l.Weights
}

// Load drains src and builds an in-memory graph out of its records. Records
// without an explicit weight are assigned a weight of 1. The caller remains
// responsible for closing src.
func Load(src Source, directed bool) (*Loaded, error) {
	l := &Loaded{
		Index: NewIndex(),
		Graph: memory.NewGraph(directed),
	}

	for src.Next() {
		rec := src.Record()
		srcV, err := l.vertexFor(rec.Src)
		if err != nil {
			return nil, err
		}
		dstV, err := l.vertexFor(rec.Dst)
		if err != nil {
			return nil, err
		}
		if _, err = l.Graph.AddEdge(srcV, dstV); err != nil {
			return nil, xerrors.Errorf("load edge list: %w", err)
		}

		weight := 1.0
		if rec.HasWeight {
			weight = rec.Weight
			l.Weighted = true
		}
		l.Weights = append(l.Weights, weight)
	}
	if err := src.Error(); err != nil {
		return nil, xerrors.Errorf("load edge list: %w", err)
	}

	return l, nil
}

func (l *Loaded) vertexFor(name string) (graph.Vertex, error) {
	v, added := l.Index.add(name)
	if added {
		if gv := l.Graph.AddVertex(); gv != v {
			return 0, xerrors.Errorf("load edge list: vertex %q mapped to %d but graph assigned %d", name, v, gv)
		}
	}
	return v, nil
}
